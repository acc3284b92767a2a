package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/poshika987/online-auction-system/internal/domain"
)

// soldItem finalizes I1 under A1 as Sold to C1 at the given amount.
func soldItem(t *testing.T, c *testCore, amount int64) *domain.Item {
	t.Helper()
	a := c.addAuction(t, "A1", domain.AuctionStatusActive)
	item := c.addItem(t, "I1", "A1", 1000, 1000)
	c.mustBid(t, "I1", "C1", amount)
	c.now = a.EndTime.Add(time.Second)
	if _, err := c.finalizer.FinalizeItem("I1"); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	return item
}

func TestRecordPayment_Success(t *testing.T) {
	c := newTestCore()
	item := soldItem(t, c, 2500)

	payment, err := c.settler.RecordPayment("I1", "C1", domain.PaymentMethodUPI)
	if err != nil {
		t.Fatalf("payment failed: %v", err)
	}
	if payment.Amount != 2500 {
		t.Fatalf("paid amount = %d, want the sale price 2500", payment.Amount)
	}
	if payment.PayerID != "C1" || payment.ItemID != "I1" {
		t.Fatalf("payment = %+v, want payer C1 on I1", payment)
	}
	if payment.Method != domain.PaymentMethodUPI {
		t.Fatalf("method = %s, want UPI", payment.Method)
	}
	if item.SettlementRef != payment.PaymentID {
		t.Fatalf("settlement ref = %q, want %q", item.SettlementRef, payment.PaymentID)
	}
	if !item.Settled() {
		t.Fatal("item not marked settled")
	}
}

func TestRecordPayment_SecondAttemptRejected(t *testing.T) {
	c := newTestCore()
	item := soldItem(t, c, 2500)

	first, err := c.settler.RecordPayment("I1", "C1", domain.PaymentMethodUPI)
	if err != nil {
		t.Fatalf("payment failed: %v", err)
	}

	_, err = c.settler.RecordPayment("I1", "C1", domain.PaymentMethodNetBanking)
	if !errors.Is(err, domain.ErrAlreadyPaid) {
		t.Fatalf("expected ErrAlreadyPaid, got %v", err)
	}
	if item.SettlementRef != first.PaymentID {
		t.Fatalf("settlement ref changed to %q, want %q", item.SettlementRef, first.PaymentID)
	}
}

func TestRecordPayment_NotSold(t *testing.T) {
	c := newTestCore()
	c.addAuction(t, "A1", domain.AuctionStatusActive)
	c.addItem(t, "I1", "A1", 1000, 1000)

	_, err := c.settler.RecordPayment("I1", "C1", domain.PaymentMethodUPI)
	if !errors.Is(err, domain.ErrNotSold) {
		t.Fatalf("expected ErrNotSold for listed item, got %v", err)
	}
}

func TestRecordPayment_UnsoldItem(t *testing.T) {
	c := newTestCore()
	a := c.addAuction(t, "A1", domain.AuctionStatusActive)
	c.addItem(t, "I1", "A1", 1000, 3000)
	c.mustBid(t, "I1", "C1", 1500)
	c.now = a.EndTime.Add(time.Second)
	if _, err := c.finalizer.FinalizeItem("I1"); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	_, err := c.settler.RecordPayment("I1", "C1", domain.PaymentMethodUPI)
	if !errors.Is(err, domain.ErrNotSold) {
		t.Fatalf("expected ErrNotSold for unsold item, got %v", err)
	}
}

func TestRecordPayment_NotWinner(t *testing.T) {
	c := newTestCore()
	soldItem(t, c, 2500)

	_, err := c.settler.RecordPayment("I1", "C2", domain.PaymentMethodCard)
	if !errors.Is(err, domain.ErrNotWinner) {
		t.Fatalf("expected ErrNotWinner, got %v", err)
	}
}

func TestRecordPayment_NotFound(t *testing.T) {
	c := newTestCore()
	_, err := c.settler.RecordPayment("missing", "C1", domain.PaymentMethodUPI)
	if !errors.Is(err, domain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestRecordPayment_ConcurrentAttemptsSettleOnce(t *testing.T) {
	c := newTestCore()
	soldItem(t, c, 2500)

	const attempts = 20
	results := make(chan error, attempts)
	for range attempts {
		go func() {
			_, err := c.settler.RecordPayment("I1", "C1", domain.PaymentMethodUPI)
			results <- err
		}()
	}

	succeeded := 0
	for range attempts {
		if err := <-results; err == nil {
			succeeded++
		} else if !errors.Is(err, domain.ErrAlreadyPaid) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("%d payments succeeded, want exactly 1", succeeded)
	}
}
