package service

import (
	"github.com/poshika987/online-auction-system/internal/domain"
	"github.com/poshika987/online-auction-system/internal/engine"
	"github.com/poshika987/online-auction-system/internal/store"
)

// RecordPaymentRequest represents the input for paying for a won item.
type RecordPaymentRequest struct {
	ItemID  string
	PayerID string
	Method  string
}

// PaymentService handles settlement of won items and winnings queries.
type PaymentService struct {
	settler   *engine.Settler
	items     *store.ItemStore
	customers *store.CustomerStore
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(
	settler *engine.Settler,
	items *store.ItemStore,
	customers *store.CustomerStore,
) *PaymentService {
	return &PaymentService{
		settler:   settler,
		items:     items,
		customers: customers,
	}
}

// Record validates the request and settles the item. The authenticated
// caller must be the payer; the engine further requires the payer to be
// the item's recorded winner.
func (s *PaymentService) Record(callerID string, req RecordPaymentRequest) (*domain.Payment, error) {
	method := domain.PaymentMethod(req.Method)
	if !domain.ValidPaymentMethods[method] {
		return nil, &domain.ValidationError{
			Message: "payment_method must be one of: UPI, Credit/Debit Card, Net Banking",
		}
	}
	if callerID != req.PayerID {
		return nil, domain.ErrPermissionDenied
	}

	// Hold the customer guard across the existence check and the commit
	// so the payer cannot be deleted while the payment lands.
	guard := s.customers.Guard(req.PayerID)
	guard.RLock()
	defer guard.RUnlock()

	if !s.customers.Exists(req.PayerID) {
		return nil, domain.ErrCustomerNotFound
	}

	return s.settler.RecordPayment(req.ItemID, req.PayerID, method)
}

// UnpaidWinnings returns the Sold items won by a customer that have no
// settlement recorded yet.
func (s *PaymentService) UnpaidWinnings(custID string) ([]*domain.Item, error) {
	if !s.customers.Exists(custID) {
		return nil, domain.ErrCustomerNotFound
	}
	return s.items.ListWonBy(custID, true), nil
}
