package engine

import (
	"testing"
	"time"

	"github.com/poshika987/online-auction-system/internal/domain"
	"github.com/poshika987/online-auction-system/internal/store"
)

// testCore bundles the stores and engine components for engine tests, with
// a controllable clock shared across all components.
type testCore struct {
	auctions *store.AuctionStore
	items    *store.ItemStore
	bids     *store.BidStore
	payments *store.PaymentStore
	locks    *ItemLocks
	schedule *Schedule
	prices   *PriceCalculator

	ledger    *Ledger
	lifecycle *Lifecycle
	finalizer *Finalizer
	settler   *Settler

	now time.Time
}

func newTestCore() *testCore {
	c := &testCore{
		auctions: store.NewAuctionStore(),
		items:    store.NewItemStore(),
		bids:     store.NewBidStore(),
		payments: store.NewPaymentStore(),
		locks:    NewItemLocks(),
		schedule: NewSchedule(),
		now:      time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	c.prices = NewPriceCalculator(c.items, c.bids)
	c.ledger = NewLedger(c.locks, c.auctions, c.items, c.bids, c.prices)
	c.lifecycle = NewLifecycle(c.locks, c.schedule, c.auctions, c.items)
	c.finalizer = NewFinalizer(c.locks, c.auctions, c.items, c.bids, c.prices)
	c.settler = NewSettler(c.locks, c.items, c.payments, c.prices)

	clock := func() time.Time { return c.now }
	c.ledger.Now = clock
	c.lifecycle.Now = clock
	c.finalizer.Now = clock
	c.settler.Now = clock
	return c
}

// advance moves the shared clock forward.
func (c *testCore) advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// addAuction creates an auction with the given status, running from one
// hour before the current clock to one hour after it.
func (c *testCore) addAuction(t *testing.T, id string, status domain.AuctionStatus) *domain.Auction {
	t.Helper()
	a := &domain.Auction{
		AuctionID: id,
		Name:      "Test Auction " + id,
		StartTime: c.now.Add(-time.Hour),
		EndTime:   c.now.Add(time.Hour),
		Status:    status,
		OwnerID:   "admin1",
		CreatedAt: c.now,
	}
	if err := c.auctions.Create(a); err != nil {
		t.Fatalf("failed to create auction %s: %v", id, err)
	}
	if status == domain.AuctionStatusScheduled {
		c.schedule.Add(a)
	}
	return a
}

// addItem lists an item under an auction.
func (c *testCore) addItem(t *testing.T, id, auctionID string, startPrice, reservePrice int64) *domain.Item {
	t.Helper()
	i := &domain.Item{
		ItemID:       id,
		Title:        "Test Item " + id,
		StartPrice:   startPrice,
		ReservePrice: reservePrice,
		CategoryID:   "CAT01",
		AuctionID:    auctionID,
		Status:       domain.ItemStatusListed,
		CreatedAt:    c.now,
	}
	if err := c.items.Create(i); err != nil {
		t.Fatalf("failed to create item %s: %v", id, err)
	}
	return i
}

// mustBid places a bid and fails the test on rejection.
func (c *testCore) mustBid(t *testing.T, itemID, bidderID string, amount int64) *domain.Bid {
	t.Helper()
	b, err := c.ledger.PlaceBid(itemID, bidderID, amount)
	if err != nil {
		t.Fatalf("expected bid of %d on %s to succeed, got %v", amount, itemID, err)
	}
	return b
}
