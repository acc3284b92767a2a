package service

import (
	"github.com/poshika987/online-auction-system/internal/domain"
	"github.com/poshika987/online-auction-system/internal/engine"
	"github.com/poshika987/online-auction-system/internal/store"
)

// PlaceBidRequest represents the input for placing a bid.
type PlaceBidRequest struct {
	CustID string
	ItemID string
	Amount int64
}

// BidService handles bid placement and bid history queries.
type BidService struct {
	ledger    *engine.Ledger
	bids      *store.BidStore
	customers *store.CustomerStore
}

// NewBidService creates a new BidService.
func NewBidService(
	ledger *engine.Ledger,
	bids *store.BidStore,
	customers *store.CustomerStore,
) *BidService {
	return &BidService{
		ledger:    ledger,
		bids:      bids,
		customers: customers,
	}
}

// PlaceBid validates the request and submits the bid to the ledger. The
// authenticated caller must be the bidder — nobody bids on someone else's
// behalf.
func (s *BidService) PlaceBid(callerID string, req PlaceBidRequest) (*domain.Bid, error) {
	if !userIDRegex.MatchString(req.CustID) {
		return nil, &domain.ValidationError{
			Message: "cust_id must match ^[a-zA-Z0-9_-]{1,32}$",
		}
	}
	if !userIDRegex.MatchString(req.ItemID) {
		return nil, &domain.ValidationError{
			Message: "item_id must match ^[a-zA-Z0-9_-]{1,32}$",
		}
	}
	if callerID != req.CustID {
		return nil, domain.ErrPermissionDenied
	}

	// Hold the customer guard across the existence check and the commit
	// so the bidder cannot be deleted while the bid lands.
	guard := s.customers.Guard(req.CustID)
	guard.RLock()
	defer guard.RUnlock()

	if !s.customers.Exists(req.CustID) {
		return nil, domain.ErrCustomerNotFound
	}

	return s.ledger.PlaceBid(req.ItemID, req.CustID, req.Amount)
}

// ListByCustomer returns all bids placed by a customer in chronological
// order. It returns domain.ErrCustomerNotFound if the customer does not
// exist.
func (s *BidService) ListByCustomer(custID string) ([]*domain.Bid, error) {
	if !s.customers.Exists(custID) {
		return nil, domain.ErrCustomerNotFound
	}
	return s.bids.ListByBidder(custID), nil
}
