package store

import (
	"sync"

	"github.com/poshika987/online-auction-system/internal/domain"
)

// ItemStore is a thread-safe in-memory store for items, with a primary
// index by item_id and a secondary index by auction_id. The indexes are
// append-only; item field mutations happen under the per-item engine lock,
// not here.
type ItemStore struct {
	mu           sync.RWMutex
	items        map[string]*domain.Item
	auctionItems map[string][]*domain.Item // auction_id → items (creation order)
}

// NewItemStore creates an empty ItemStore.
func NewItemStore() *ItemStore {
	return &ItemStore{
		items:        make(map[string]*domain.Item),
		auctionItems: make(map[string][]*domain.Item),
	}
}

// Create adds an item to the store and appends it to the auction's
// secondary index. It returns domain.ErrItemExists if an item with the
// same ID already exists.
func (s *ItemStore) Create(i *domain.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[i.ItemID]; exists {
		return domain.ErrItemExists
	}
	s.items[i.ItemID] = i
	s.auctionItems[i.AuctionID] = append(s.auctionItems[i.AuctionID], i)
	return nil
}

// Get retrieves an item by ID. It returns
// domain.ErrItemNotFound if the item does not exist.
func (s *ItemStore) Get(id string) (*domain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.items[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	return i, nil
}

// ListByAuction returns all items under an auction in creation order.
// Returns an empty slice if the auction has no items.
func (s *ItemStore) ListByAuction(auctionID string) []*domain.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := s.auctionItems[auctionID]
	result := make([]*domain.Item, len(items))
	copy(result, items)
	return result
}

// ListByStatus returns all items with the given status.
func (s *ItemStore) ListByStatus(status domain.ItemStatus) []*domain.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Item, 0)
	for _, items := range s.auctionItems {
		for _, i := range items {
			if i.Status == status {
				result = append(result, i)
			}
		}
	}
	return result
}

// ListWonBy returns the Sold items whose winner is the given customer.
// If unpaidOnly is true, items that already have a settlement are skipped.
func (s *ItemStore) ListWonBy(userID string, unpaidOnly bool) []*domain.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Item, 0)
	for _, items := range s.auctionItems {
		for _, i := range items {
			if i.Status != domain.ItemStatusSold || i.WinnerID != userID {
				continue
			}
			if unpaidOnly && i.Settled() {
				continue
			}
			result = append(result, i)
		}
	}
	return result
}
