package service

import (
	"time"

	"github.com/poshika987/online-auction-system/internal/domain"
	"github.com/poshika987/online-auction-system/internal/engine"
	"github.com/poshika987/online-auction-system/internal/store"
)

// CreateItemRequest represents the input for item creation.
type CreateItemRequest struct {
	ItemID       string
	Title        string
	Description  string
	StartPrice   int64
	ReservePrice int64
	CategoryID   string
	AuctionID    string
}

// ItemListing is an item together with its derived current price.
type ItemListing struct {
	Item         *domain.Item
	CurrentPrice int64
}

// ItemDetail is the full view of a single item: the record, its derived
// current price, and its chronological bid history.
type ItemDetail struct {
	Item         *domain.Item
	CurrentPrice int64
	Bids         []*domain.Bid
}

// ItemService handles item creation, listing queries, and finalization.
type ItemService struct {
	finalizer *engine.Finalizer
	prices    *engine.PriceCalculator
	auctions  *store.AuctionStore
	items     *store.ItemStore
	bids      *store.BidStore
	customers *store.CustomerStore
}

// NewItemService creates a new ItemService.
func NewItemService(
	finalizer *engine.Finalizer,
	prices *engine.PriceCalculator,
	auctions *store.AuctionStore,
	items *store.ItemStore,
	bids *store.BidStore,
	customers *store.CustomerStore,
) *ItemService {
	return &ItemService{
		finalizer: finalizer,
		prices:    prices,
		auctions:  auctions,
		items:     items,
		bids:      bids,
		customers: customers,
	}
}

// Create validates the request and lists an item under an auction.
// Administrator-only. Items can be added while the auction is Scheduled or
// Active, never once it is terminal.
func (s *ItemService) Create(callerID string, req CreateItemRequest) (*domain.Item, error) {
	if err := requireAdmin(s.customers, callerID); err != nil {
		return nil, err
	}

	if !userIDRegex.MatchString(req.ItemID) {
		return nil, &domain.ValidationError{
			Message: "item_id must match ^[a-zA-Z0-9_-]{1,32}$",
		}
	}
	if req.Title == "" {
		return nil, &domain.ValidationError{
			Message: "title is required",
		}
	}
	if req.StartPrice < 0 {
		return nil, &domain.ValidationError{
			Message: "start_price must be >= 0",
		}
	}
	if req.ReservePrice < req.StartPrice {
		return nil, &domain.ValidationError{
			Message: "reserve_price must be >= start_price",
		}
	}

	auction, err := s.auctions.Get(req.AuctionID)
	if err != nil {
		return nil, err
	}

	item := &domain.Item{
		ItemID:       req.ItemID,
		Title:        req.Title,
		Description:  req.Description,
		StartPrice:   req.StartPrice,
		ReservePrice: req.ReservePrice,
		CategoryID:   req.CategoryID,
		AuctionID:    req.AuctionID,
		Status:       domain.ItemStatusListed,
		CreatedAt:    time.Now(),
	}

	// The terminal check and the insert happen under the auction lock: a
	// concurrent cancel either sees the new item in its withdraw cascade
	// or the check here refuses it.
	auction.Mu.Lock()
	defer auction.Mu.Unlock()
	if auction.Terminal() {
		return nil, domain.ErrInvalidState
	}
	if err := s.items.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// ListListed returns all Listed items with their current prices.
func (s *ItemService) ListListed() []ItemListing {
	items := s.items.ListByStatus(domain.ItemStatusListed)
	listings := make([]ItemListing, 0, len(items))
	for _, item := range items {
		price, err := s.prices.CurrentPrice(item.ItemID)
		if err != nil {
			continue
		}
		listings = append(listings, ItemListing{Item: item, CurrentPrice: price})
	}
	return listings
}

// Get returns the full detail view for an item.
func (s *ItemService) Get(itemID string) (*ItemDetail, error) {
	item, err := s.items.Get(itemID)
	if err != nil {
		return nil, err
	}
	price, err := s.prices.CurrentPrice(itemID)
	if err != nil {
		return nil, err
	}
	return &ItemDetail{
		Item:         item,
		CurrentPrice: price,
		Bids:         s.bids.ListByItem(itemID),
	}, nil
}

// Finalize locks in the winner (or Unsold outcome) for an item.
// Administrator-only.
func (s *ItemService) Finalize(callerID, itemID string) (*engine.FinalizeOutcome, error) {
	if err := requireAdmin(s.customers, callerID); err != nil {
		return nil, err
	}
	return s.finalizer.FinalizeItem(itemID)
}
