package store

import (
	"sync"

	"github.com/poshika987/online-auction-system/internal/domain"
)

// CustomerStore is a thread-safe in-memory store for customers,
// keyed by user_id.
type CustomerStore struct {
	mu        sync.RWMutex
	customers map[string]*domain.Customer
	order     []string // user_ids in registration order, for stable listing

	guardMu sync.Mutex
	guards  map[string]*sync.RWMutex // user_id → activity guard
}

// NewCustomerStore creates an empty CustomerStore.
func NewCustomerStore() *CustomerStore {
	return &CustomerStore{
		customers: make(map[string]*domain.Customer),
		guards:    make(map[string]*sync.RWMutex),
	}
}

// Guard returns the per-customer lock coordinating activity against
// deletion. Deletion holds the write side across its activity check and
// the delete; operations that record new activity for the customer hold
// the read side across their existence check and commit.
func (s *CustomerStore) Guard(id string) *sync.RWMutex {
	s.guardMu.Lock()
	defer s.guardMu.Unlock()

	g, ok := s.guards[id]
	if !ok {
		g = &sync.RWMutex{}
		s.guards[id] = g
	}
	return g
}

// Create adds a customer to the store. It returns
// domain.ErrCustomerExists if a customer with the same ID already exists.
func (s *CustomerStore) Create(c *domain.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.customers[c.UserID]; exists {
		return domain.ErrCustomerExists
	}
	s.customers[c.UserID] = c
	s.order = append(s.order, c.UserID)
	return nil
}

// Get retrieves a customer by ID. It returns
// domain.ErrCustomerNotFound if the customer does not exist.
func (s *CustomerStore) Get(id string) (*domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.customers[id]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	return c, nil
}

// Exists returns true if a customer with the given ID exists.
func (s *CustomerStore) Exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.customers[id]
	return ok
}

// Delete removes a customer by ID. It returns
// domain.ErrCustomerNotFound if the customer does not exist.
func (s *CustomerStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.customers[id]; !ok {
		return domain.ErrCustomerNotFound
	}
	delete(s.customers, id)
	for i, uid := range s.order {
		if uid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns all customers in registration order.
func (s *CustomerStore) List() []*domain.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Customer, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.customers[id])
	}
	return result
}

// CountByRole returns the number of customers per role.
func (s *CustomerStore) CountByRole() map[domain.Role]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[domain.Role]int)
	for _, c := range s.customers {
		counts[c.Role]++
	}
	return counts
}
