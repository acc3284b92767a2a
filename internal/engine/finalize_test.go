package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/poshika987/online-auction-system/internal/domain"
)

func TestFinalizeItem_SoldToHighestBidder(t *testing.T) {
	c := newTestCore()
	a := c.addAuction(t, "A1", domain.AuctionStatusActive)
	item := c.addItem(t, "I1", "A1", 5000, 7500)
	c.mustBid(t, "I1", "C1", 6000)
	c.mustBid(t, "I1", "C2", 7600)
	c.mustBid(t, "I1", "C1", 7900)

	c.now = a.EndTime.Add(time.Second)
	outcome, err := c.finalizer.FinalizeItem("I1")
	if err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	if outcome.Status != domain.ItemStatusSold {
		t.Fatalf("status = %s, want Sold", outcome.Status)
	}
	if outcome.WinnerID != "C1" {
		t.Fatalf("winner = %q, want C1", outcome.WinnerID)
	}
	if outcome.Amount != 7900 {
		t.Fatalf("sale price = %d, want 7900", outcome.Amount)
	}
	if item.Status != domain.ItemStatusSold || item.WinnerID != "C1" || item.SalePrice != 7900 {
		t.Fatalf("item not recorded: status=%s winner=%q salePrice=%d", item.Status, item.WinnerID, item.SalePrice)
	}
}

func TestFinalizeItem_UnsoldBelowReserve(t *testing.T) {
	c := newTestCore()
	a := c.addAuction(t, "A1", domain.AuctionStatusActive)
	item := c.addItem(t, "I1", "A1", 1000, 3000)
	c.mustBid(t, "I1", "C1", 1500)

	c.now = a.EndTime.Add(time.Second)
	outcome, err := c.finalizer.FinalizeItem("I1")
	if err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	if outcome.Status != domain.ItemStatusUnsold {
		t.Fatalf("status = %s, want Unsold", outcome.Status)
	}
	if outcome.WinnerID != "" || outcome.Amount != 0 {
		t.Fatalf("unsold outcome carries winner %q amount %d", outcome.WinnerID, outcome.Amount)
	}
	if item.WinnerID != "" || item.SalePrice != 0 {
		t.Fatalf("unsold item carries winner %q salePrice %d", item.WinnerID, item.SalePrice)
	}
}

func TestFinalizeItem_UnsoldNoBids(t *testing.T) {
	c := newTestCore()
	a := c.addAuction(t, "A1", domain.AuctionStatusActive)
	c.addItem(t, "I1", "A1", 1000, 1000)

	c.now = a.EndTime.Add(time.Second)
	outcome, err := c.finalizer.FinalizeItem("I1")
	if err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	if outcome.Status != domain.ItemStatusUnsold {
		t.Fatalf("status = %s, want Unsold", outcome.Status)
	}
}

func TestFinalizeItem_SoldAtExactReserve(t *testing.T) {
	c := newTestCore()
	a := c.addAuction(t, "A1", domain.AuctionStatusActive)
	c.addItem(t, "I1", "A1", 1000, 2000)
	c.mustBid(t, "I1", "C1", 2000)

	c.now = a.EndTime.Add(time.Second)
	outcome, err := c.finalizer.FinalizeItem("I1")
	if err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	if outcome.Status != domain.ItemStatusSold || outcome.Amount != 2000 {
		t.Fatalf("outcome = %s/%d, want Sold at exactly the reserve", outcome.Status, outcome.Amount)
	}
}

func TestFinalizeItem_AuctionStillOpen(t *testing.T) {
	c := newTestCore()
	c.addAuction(t, "A1", domain.AuctionStatusActive)
	c.addItem(t, "I1", "A1", 1000, 1000)

	_, err := c.finalizer.FinalizeItem("I1")
	if !errors.Is(err, domain.ErrAuctionStillOpen) {
		t.Fatalf("expected ErrAuctionStillOpen, got %v", err)
	}
}

func TestFinalizeItem_AlreadyFinalized(t *testing.T) {
	c := newTestCore()
	a := c.addAuction(t, "A1", domain.AuctionStatusActive)
	item := c.addItem(t, "I1", "A1", 1000, 1000)
	c.mustBid(t, "I1", "C1", 1500)

	c.now = a.EndTime.Add(time.Second)
	if _, err := c.finalizer.FinalizeItem("I1"); err != nil {
		t.Fatalf("first finalize failed: %v", err)
	}

	_, err := c.finalizer.FinalizeItem("I1")
	if !errors.Is(err, domain.ErrAlreadyFinalized) {
		t.Fatalf("expected ErrAlreadyFinalized, got %v", err)
	}
	// The recorded winner is never re-evaluated.
	if item.WinnerID != "C1" || item.SalePrice != 1500 {
		t.Fatalf("outcome changed on repeat: winner=%q salePrice=%d", item.WinnerID, item.SalePrice)
	}
}

func TestFinalizeItem_WithdrawnItem(t *testing.T) {
	c := newTestCore()
	a := c.addAuction(t, "A1", domain.AuctionStatusActive)
	item := c.addItem(t, "I1", "A1", 1000, 1000)
	item.Status = domain.ItemStatusWithdrawn

	c.now = a.EndTime.Add(time.Second)
	_, err := c.finalizer.FinalizeItem("I1")
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestFinalizeItem_CancelledAuction(t *testing.T) {
	c := newTestCore()
	a := c.addAuction(t, "A1", domain.AuctionStatusActive)
	c.addItem(t, "I1", "A1", 1000, 1000)
	if err := c.lifecycle.CancelAuction("A1"); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	c.now = a.EndTime.Add(time.Second)
	_, err := c.finalizer.FinalizeItem("I1")
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestFinalizeItem_EndsActiveAuction(t *testing.T) {
	c := newTestCore()
	a := c.addAuction(t, "A1", domain.AuctionStatusActive)
	c.addItem(t, "I1", "A1", 1000, 1000)
	c.addItem(t, "I2", "A1", 1000, 1000)

	c.now = a.EndTime.Add(time.Second)
	if _, err := c.finalizer.FinalizeItem("I1"); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	if got := a.StatusSnapshot(); got != domain.AuctionStatusEnded {
		t.Fatalf("auction status = %s, want Ended after first finalize", got)
	}

	// Remaining items finalize normally under the Ended auction.
	if _, err := c.finalizer.FinalizeItem("I2"); err != nil {
		t.Fatalf("finalize of second item failed: %v", err)
	}
}

func TestFinalizeItem_EndedAuctionStaysEnded(t *testing.T) {
	c := newTestCore()
	a := c.addAuction(t, "A1", domain.AuctionStatusEnded)
	c.addItem(t, "I1", "A1", 1000, 1000)

	// An Ended auction is eligible even before the end instant tick-over.
	if _, err := c.finalizer.FinalizeItem("I1"); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	if got := a.StatusSnapshot(); got != domain.AuctionStatusEnded {
		t.Fatalf("auction status = %s, want Ended", got)
	}
}

func TestFinalizeItem_AtExactEndInstant(t *testing.T) {
	c := newTestCore()
	a := c.addAuction(t, "A1", domain.AuctionStatusActive)
	c.addItem(t, "I1", "A1", 1000, 1000)
	c.mustBid(t, "I1", "C1", 1500)

	// The end instant itself closes bidding, so finalize is allowed.
	c.now = a.EndTime
	outcome, err := c.finalizer.FinalizeItem("I1")
	if err != nil {
		t.Fatalf("finalize at end instant failed: %v", err)
	}
	if outcome.Status != domain.ItemStatusSold {
		t.Fatalf("status = %s, want Sold", outcome.Status)
	}
}

func TestFinalizeItem_NotFound(t *testing.T) {
	c := newTestCore()
	_, err := c.finalizer.FinalizeItem("missing")
	if !errors.Is(err, domain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestFinalizeItem_SalePriceImmuneToLaterBidAttempts(t *testing.T) {
	c := newTestCore()
	a := c.addAuction(t, "A1", domain.AuctionStatusActive)
	item := c.addItem(t, "I1", "A1", 1000, 1000)
	c.mustBid(t, "I1", "C1", 1500)

	c.now = a.EndTime.Add(time.Second)
	if _, err := c.finalizer.FinalizeItem("I1"); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if _, err := c.ledger.PlaceBid("I1", "C2", 9000); err == nil {
		t.Fatal("expected bid on finalized item to be rejected")
	}
	if item.SalePrice != 1500 {
		t.Fatalf("sale price = %d, want 1500 locked at finalization", item.SalePrice)
	}
}
