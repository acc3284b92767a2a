package engine

import (
	"time"

	"github.com/google/uuid"

	"github.com/poshika987/online-auction-system/internal/domain"
	"github.com/poshika987/online-auction-system/internal/store"
)

// Settler reconciles exactly one payment to exactly one verified winner per
// item. The payment insert and the item's settlement marker are one atomic
// unit under the item lock: both happen or neither does.
type Settler struct {
	locks    *ItemLocks
	items    *store.ItemStore
	payments *store.PaymentStore
	prices   *PriceCalculator

	// Now supplies the payment timestamp. Overridable in tests.
	Now func() time.Time
}

// NewSettler creates a Settler over the given stores.
func NewSettler(
	locks *ItemLocks,
	items *store.ItemStore,
	payments *store.PaymentStore,
	prices *PriceCalculator,
) *Settler {
	return &Settler{
		locks:    locks,
		items:    items,
		payments: payments,
		prices:   prices,
		Now:      time.Now,
	}
}

// RecordPayment verifies the payer against the item's recorded winner,
// creates the payment, and closes the item's settlement reference.
// Preconditions, first failure wins: the item exists; it is Sold; the payer
// is exactly the winner; no settlement has been recorded yet.
//
// The charged amount is the item's current price at call time, which equals
// the sale price locked at finalization — a Sold item admits no further
// bids, so the maximum bid cannot have moved.
func (s *Settler) RecordPayment(itemID, payerID string, method domain.PaymentMethod) (*domain.Payment, error) {
	item, err := s.items.Get(itemID)
	if err != nil {
		return nil, err
	}

	lock := s.locks.GetOrCreate(itemID)
	lock.Lock()
	defer lock.Unlock()

	if item.Status != domain.ItemStatusSold {
		return nil, domain.ErrNotSold
	}
	if item.WinnerID != payerID {
		return nil, domain.ErrNotWinner
	}
	if item.Settled() {
		return nil, domain.ErrAlreadyPaid
	}

	payment := &domain.Payment{
		PaymentID: uuid.New().String(),
		ItemID:    itemID,
		PayerID:   payerID,
		Amount:    s.prices.currentPriceOf(item),
		Method:    method,
		PaidAt:    s.Now(),
	}
	if err := s.payments.Create(payment); err != nil {
		return nil, err
	}
	item.SettlementRef = payment.PaymentID

	return payment, nil
}
