package store

import (
	"sync"

	"github.com/poshika987/online-auction-system/internal/domain"
)

// BidStore is a thread-safe, append-only store for bids, keyed by item_id
// with a secondary index by bidder_id. Bids are immutable once appended and
// chronological per item. The engine guarantees that amounts per item are
// strictly increasing, so the last bid of an item is always its maximum.
type BidStore struct {
	mu         sync.RWMutex
	itemBids   map[string][]*domain.Bid // item_id → bids (chronological)
	bidderBids map[string][]*domain.Bid // bidder_id → bids (chronological)
}

// NewBidStore creates an empty BidStore.
func NewBidStore() *BidStore {
	return &BidStore{
		itemBids:   make(map[string][]*domain.Bid),
		bidderBids: make(map[string][]*domain.Bid),
	}
}

// Append adds a bid to both indexes.
func (s *BidStore) Append(b *domain.Bid) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.itemBids[b.ItemID] = append(s.itemBids[b.ItemID], b)
	s.bidderBids[b.BidderID] = append(s.bidderBids[b.BidderID], b)
}

// ListByItem returns all bids for an item in chronological order.
// Returns an empty slice if the item has no bids.
func (s *BidStore) ListByItem(itemID string) []*domain.Bid {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bids := s.itemBids[itemID]
	result := make([]*domain.Bid, len(bids))
	copy(result, bids)
	return result
}

// ListByBidder returns all bids placed by a customer in chronological order.
func (s *BidStore) ListByBidder(bidderID string) []*domain.Bid {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bids := s.bidderBids[bidderID]
	result := make([]*domain.Bid, len(bids))
	copy(result, bids)
	return result
}

// Max returns the highest bid for an item, or (nil, false) if the item has
// no bids. Relies on the strictly-increasing-per-item invariant: the last
// appended bid is the maximum.
func (s *BidStore) Max(itemID string) (*domain.Bid, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bids := s.itemBids[itemID]
	if len(bids) == 0 {
		return nil, false
	}
	return bids[len(bids)-1], true
}

// HasBidder reports whether the customer has placed at least one bid.
func (s *BidStore) HasBidder(bidderID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.bidderBids[bidderID]) > 0
}
