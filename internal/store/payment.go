package store

import (
	"sync"

	"github.com/poshika987/online-auction-system/internal/domain"
)

// PaymentStore is a thread-safe in-memory store for payments, with a
// primary index by payment_id and a one-to-one secondary index by item_id.
// Payments are immutable once created.
type PaymentStore struct {
	mu       sync.RWMutex
	payments map[string]*domain.Payment
	byItem   map[string]*domain.Payment
	byPayer  map[string][]*domain.Payment
}

// NewPaymentStore creates an empty PaymentStore.
func NewPaymentStore() *PaymentStore {
	return &PaymentStore{
		payments: make(map[string]*domain.Payment),
		byItem:   make(map[string]*domain.Payment),
		byPayer:  make(map[string][]*domain.Payment),
	}
}

// Create adds a payment to the store. It returns domain.ErrAlreadyPaid if
// a payment already exists for the item. The engine holds the item lock
// across the settlement check and this insert, so the duplicate check here
// is a backstop, not the primary guard.
func (s *PaymentStore) Create(p *domain.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byItem[p.ItemID]; exists {
		return domain.ErrAlreadyPaid
	}
	s.payments[p.PaymentID] = p
	s.byItem[p.ItemID] = p
	s.byPayer[p.PayerID] = append(s.byPayer[p.PayerID], p)
	return nil
}

// GetByItem retrieves the payment for an item, or (nil, false) if the item
// has not been paid for.
func (s *PaymentStore) GetByItem(itemID string) (*domain.Payment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byItem[itemID]
	return p, ok
}

// HasPayer reports whether the customer has made at least one payment.
func (s *PaymentStore) HasPayer(payerID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.byPayer[payerID]) > 0
}
