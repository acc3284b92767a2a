package service

import (
	"time"

	"github.com/poshika987/online-auction-system/internal/domain"
	"github.com/poshika987/online-auction-system/internal/engine"
	"github.com/poshika987/online-auction-system/internal/store"
)

// CreateAuctionRequest represents the input for auction creation.
type CreateAuctionRequest struct {
	AuctionID string
	Name      string
	StartTime time.Time
	EndTime   time.Time
}

// AuctionService handles auction creation and lifecycle operations. All of
// its mutating operations are administrator-only.
type AuctionService struct {
	lifecycle *engine.Lifecycle
	auctions  *store.AuctionStore
	items     *store.ItemStore
	customers *store.CustomerStore
}

// NewAuctionService creates a new AuctionService.
func NewAuctionService(
	lifecycle *engine.Lifecycle,
	auctions *store.AuctionStore,
	items *store.ItemStore,
	customers *store.CustomerStore,
) *AuctionService {
	return &AuctionService{
		lifecycle: lifecycle,
		auctions:  auctions,
		items:     items,
		customers: customers,
	}
}

// Create validates the request, creates a Scheduled auction owned by the
// caller, and registers it for activation.
func (s *AuctionService) Create(callerID string, req CreateAuctionRequest) (*domain.Auction, error) {
	if err := requireAdmin(s.customers, callerID); err != nil {
		return nil, err
	}

	if !userIDRegex.MatchString(req.AuctionID) {
		return nil, &domain.ValidationError{
			Message: "auction_id must match ^[a-zA-Z0-9_-]{1,32}$",
		}
	}
	if req.Name == "" {
		return nil, &domain.ValidationError{
			Message: "auction_name is required",
		}
	}
	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return nil, &domain.ValidationError{
			Message: "start_time and end_time are required",
		}
	}
	if !req.EndTime.After(req.StartTime) {
		return nil, &domain.ValidationError{
			Message: "end_time must be after start_time",
		}
	}

	a := &domain.Auction{
		AuctionID: req.AuctionID,
		Name:      req.Name,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Status:    domain.AuctionStatusScheduled,
		OwnerID:   callerID,
		CreatedAt: time.Now(),
	}
	if err := s.auctions.Create(a); err != nil {
		return nil, err
	}
	s.lifecycle.Register(a)
	return a, nil
}

// StartScheduled activates every Scheduled auction whose start instant has
// passed and returns the IDs actually transitioned.
func (s *AuctionService) StartScheduled(callerID string) ([]string, error) {
	if err := requireAdmin(s.customers, callerID); err != nil {
		return nil, err
	}
	return s.lifecycle.ActivateDue(s.lifecycle.Now()), nil
}

// Cancel cancels a Scheduled or Active auction and withdraws its Listed
// items. Blocked when any item under the auction has been sold and paid.
func (s *AuctionService) Cancel(callerID, auctionID string) error {
	if err := requireAdmin(s.customers, callerID); err != nil {
		return err
	}
	return s.lifecycle.CancelAuction(auctionID)
}

// Get retrieves an auction by ID.
func (s *AuctionService) Get(auctionID string) (*domain.Auction, error) {
	return s.auctions.Get(auctionID)
}

// List returns all auctions in creation order.
func (s *AuctionService) List() []*domain.Auction {
	return s.auctions.List()
}

// Items returns all items under an auction. It returns
// domain.ErrAuctionNotFound if the auction does not exist.
func (s *AuctionService) Items(auctionID string) ([]*domain.Item, error) {
	if _, err := s.auctions.Get(auctionID); err != nil {
		return nil, err
	}
	return s.items.ListByAuction(auctionID), nil
}
