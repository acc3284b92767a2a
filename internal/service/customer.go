package service

import (
	"regexp"
	"time"

	"github.com/poshika987/online-auction-system/internal/domain"
	"github.com/poshika987/online-auction-system/internal/store"
)

var (
	userIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,32}$`)
	emailRegex  = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// RegisterCustomerRequest represents the input for customer registration.
type RegisterCustomerRequest struct {
	UserID  string
	Name    string
	Email   string
	Phone   string
	Address string
	Role    domain.Role
}

// UpdateCustomerRequest carries the updatable profile fields. Nil means
// leave the field unchanged.
type UpdateCustomerRequest struct {
	Phone   *string
	Address *string
}

// RoleCount is a single entry of the user-counts report.
type RoleCount struct {
	Role  domain.Role
	Count int
}

// CustomerService handles the customer registry: registration, profile
// updates, guarded deletion, and role counts.
type CustomerService struct {
	customers *store.CustomerStore
	bids      *store.BidStore
	payments  *store.PaymentStore
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(
	customers *store.CustomerStore,
	bids *store.BidStore,
	payments *store.PaymentStore,
) *CustomerService {
	return &CustomerService{
		customers: customers,
		bids:      bids,
		payments:  payments,
	}
}

// Register validates the request and creates a customer. An empty role
// defaults to customer.
func (s *CustomerService) Register(req RegisterCustomerRequest) (*domain.Customer, error) {
	if !userIDRegex.MatchString(req.UserID) {
		return nil, &domain.ValidationError{
			Message: "user_id must match ^[a-zA-Z0-9_-]{1,32}$",
		}
	}
	if req.Name == "" {
		return nil, &domain.ValidationError{
			Message: "name is required",
		}
	}
	if req.Email != "" && !emailRegex.MatchString(req.Email) {
		return nil, &domain.ValidationError{
			Message: "email must be a valid address",
		}
	}

	role := req.Role
	if role == "" {
		role = domain.RoleCustomer
	}
	if role != domain.RoleCustomer && role != domain.RoleAdmin {
		return nil, &domain.ValidationError{
			Message: "role must be 'customer' or 'admin'",
		}
	}

	c := &domain.Customer{
		UserID:    req.UserID,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		Role:      role,
		CreatedAt: time.Now(),
	}
	if err := s.customers.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Get retrieves a customer by ID.
func (s *CustomerService) Get(userID string) (*domain.Customer, error) {
	return s.customers.Get(userID)
}

// Update applies a partial profile update (phone and/or address).
func (s *CustomerService) Update(userID string, req UpdateCustomerRequest) (*domain.Customer, error) {
	if req.Phone == nil && req.Address == nil {
		return nil, &domain.ValidationError{
			Message: "at least one of phone, address is required",
		}
	}

	c, err := s.customers.Get(userID)
	if err != nil {
		return nil, err
	}
	c.Mu.Lock()
	if req.Phone != nil {
		c.Phone = *req.Phone
	}
	if req.Address != nil {
		c.Address = *req.Address
	}
	c.Mu.Unlock()
	return c, nil
}

// Delete removes a customer. A customer with bids or payments on record
// cannot be deleted — the ledger and settlement history reference them.
// The customer guard is held for writing across the activity check and
// the delete, so no bid or payment can land in between.
func (s *CustomerService) Delete(userID string) error {
	guard := s.customers.Guard(userID)
	guard.Lock()
	defer guard.Unlock()

	if !s.customers.Exists(userID) {
		return domain.ErrCustomerNotFound
	}
	if s.bids.HasBidder(userID) || s.payments.HasPayer(userID) {
		return domain.ErrCustomerHasActivity
	}
	return s.customers.Delete(userID)
}

// List returns all customers in registration order.
func (s *CustomerService) List() []*domain.Customer {
	return s.customers.List()
}

// Counts reports the number of administrators and customers.
func (s *CustomerService) Counts() []RoleCount {
	counts := s.customers.CountByRole()
	return []RoleCount{
		{Role: domain.RoleAdmin, Count: counts[domain.RoleAdmin]},
		{Role: domain.RoleCustomer, Count: counts[domain.RoleCustomer]},
	}
}

// requireAdmin resolves the caller and checks the administrator role.
// Unknown callers are denied rather than reported as not found — the
// identity layer already verified them, absence here means no role.
func requireAdmin(customers *store.CustomerStore, callerID string) error {
	c, err := customers.Get(callerID)
	if err != nil {
		return domain.ErrPermissionDenied
	}
	if !c.IsAdmin() {
		return domain.ErrPermissionDenied
	}
	return nil
}
