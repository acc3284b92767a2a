package store

import (
	"sync"

	"github.com/poshika987/online-auction-system/internal/domain"
)

// AuctionStore is a thread-safe in-memory store for auctions,
// keyed by auction_id. Auctions are never deleted.
type AuctionStore struct {
	mu       sync.RWMutex
	auctions map[string]*domain.Auction
	order    []string // auction_ids in creation order, for stable listing
}

// NewAuctionStore creates an empty AuctionStore.
func NewAuctionStore() *AuctionStore {
	return &AuctionStore{
		auctions: make(map[string]*domain.Auction),
	}
}

// Create adds an auction to the store. It returns
// domain.ErrAuctionExists if an auction with the same ID already exists.
func (s *AuctionStore) Create(a *domain.Auction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.auctions[a.AuctionID]; exists {
		return domain.ErrAuctionExists
	}
	s.auctions[a.AuctionID] = a
	s.order = append(s.order, a.AuctionID)
	return nil
}

// Get retrieves an auction by ID. It returns
// domain.ErrAuctionNotFound if the auction does not exist.
func (s *AuctionStore) Get(id string) (*domain.Auction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.auctions[id]
	if !ok {
		return nil, domain.ErrAuctionNotFound
	}
	return a, nil
}

// List returns all auctions in creation order.
func (s *AuctionStore) List() []*domain.Auction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Auction, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.auctions[id])
	}
	return result
}
