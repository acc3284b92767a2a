package service

import (
	"testing"
	"time"

	"github.com/poshika987/online-auction-system/internal/domain"
	"github.com/poshika987/online-auction-system/internal/engine"
	"github.com/poshika987/online-auction-system/internal/store"
)

// testEnv wires the stores, engines and services the way main does, with a
// controllable clock shared across all engine components.
type testEnv struct {
	auctions  *store.AuctionStore
	items     *store.ItemStore
	bids      *store.BidStore
	payments  *store.PaymentStore
	customers *store.CustomerStore

	customerSvc *CustomerService
	auctionSvc  *AuctionService
	itemSvc     *ItemService
	bidSvc      *BidService
	paymentSvc  *PaymentService

	now time.Time
}

func newTestEnv() *testEnv {
	e := &testEnv{
		auctions:  store.NewAuctionStore(),
		items:     store.NewItemStore(),
		bids:      store.NewBidStore(),
		payments:  store.NewPaymentStore(),
		customers: store.NewCustomerStore(),
		now:       time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	locks := engine.NewItemLocks()
	schedule := engine.NewSchedule()
	prices := engine.NewPriceCalculator(e.items, e.bids)
	ledger := engine.NewLedger(locks, e.auctions, e.items, e.bids, prices)
	lifecycle := engine.NewLifecycle(locks, schedule, e.auctions, e.items)
	finalizer := engine.NewFinalizer(locks, e.auctions, e.items, e.bids, prices)
	settler := engine.NewSettler(locks, e.items, e.payments, prices)

	clock := func() time.Time { return e.now }
	ledger.Now = clock
	lifecycle.Now = clock
	finalizer.Now = clock
	settler.Now = clock

	e.customerSvc = NewCustomerService(e.customers, e.bids, e.payments)
	e.auctionSvc = NewAuctionService(lifecycle, e.auctions, e.items, e.customers)
	e.itemSvc = NewItemService(finalizer, prices, e.auctions, e.items, e.bids, e.customers)
	e.bidSvc = NewBidService(ledger, e.bids, e.customers)
	e.paymentSvc = NewPaymentService(settler, e.items, e.customers)
	return e
}

// register creates a customer with the given role.
func (e *testEnv) register(t *testing.T, userID string, role domain.Role) {
	t.Helper()
	_, err := e.customerSvc.Register(RegisterCustomerRequest{
		UserID: userID,
		Name:   "User " + userID,
		Role:   role,
	})
	if err != nil {
		t.Fatalf("failed to register %s: %v", userID, err)
	}
}

// setup registers admin1 plus the given customers.
func (e *testEnv) setup(t *testing.T, customerIDs ...string) {
	t.Helper()
	e.register(t, "admin1", domain.RoleAdmin)
	for _, id := range customerIDs {
		e.register(t, id, domain.RoleCustomer)
	}
}

// createActiveAuction creates an auction starting now and activates it.
func (e *testEnv) createActiveAuction(t *testing.T, id string) *domain.Auction {
	t.Helper()
	a, err := e.auctionSvc.Create("admin1", CreateAuctionRequest{
		AuctionID: id,
		Name:      "Auction " + id,
		StartTime: e.now,
		EndTime:   e.now.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("failed to create auction %s: %v", id, err)
	}
	if _, err := e.auctionSvc.StartScheduled("admin1"); err != nil {
		t.Fatalf("failed to start auctions: %v", err)
	}
	if got := a.StatusSnapshot(); got != domain.AuctionStatusActive {
		t.Fatalf("auction %s status = %s, want Active", id, got)
	}
	return a
}

// createItem lists an item under an auction as admin1.
func (e *testEnv) createItem(t *testing.T, id, auctionID string, startPrice, reservePrice int64) *domain.Item {
	t.Helper()
	item, err := e.itemSvc.Create("admin1", CreateItemRequest{
		ItemID:       id,
		Title:        "Item " + id,
		StartPrice:   startPrice,
		ReservePrice: reservePrice,
		AuctionID:    auctionID,
	})
	if err != nil {
		t.Fatalf("failed to create item %s: %v", id, err)
	}
	return item
}
