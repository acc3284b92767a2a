package engine

import (
	"time"

	"github.com/poshika987/online-auction-system/internal/domain"
	"github.com/poshika987/online-auction-system/internal/store"
)

// Lifecycle owns auction state transitions: scheduling, activation and
// cancellation. Ending is not a standalone operation — an auction becomes
// Ended as a side effect of the first finalize past its end instant (see
// Finalizer). Lock order is auction before item, never the reverse.
type Lifecycle struct {
	locks    *ItemLocks
	schedule *Schedule
	auctions *store.AuctionStore
	items    *store.ItemStore

	// Now supplies the wall clock. Overridable in tests.
	Now func() time.Time
}

// NewLifecycle creates a Lifecycle over the given stores and schedule.
func NewLifecycle(
	locks *ItemLocks,
	schedule *Schedule,
	auctions *store.AuctionStore,
	items *store.ItemStore,
) *Lifecycle {
	return &Lifecycle{
		locks:    locks,
		schedule: schedule,
		auctions: auctions,
		items:    items,
		Now:      time.Now,
	}
}

// Register adds a newly created auction to the activation schedule.
func (l *Lifecycle) Register(a *domain.Auction) {
	l.schedule.Add(a)
}

// ActivateDue transitions every Scheduled auction whose start instant is
// <= now to Active and returns the IDs actually transitioned, in start
// order. Idempotent: activated auctions leave the schedule, and the status
// double-check below guards against an auction cancelled between the
// schedule pop and the transition.
func (l *Lifecycle) ActivateDue(now time.Time) []string {
	due := l.schedule.PopDue(now)

	activated := make([]string, 0, len(due))
	for _, a := range due {
		a.Mu.Lock()
		if a.DueToStart(now) {
			a.Status = domain.AuctionStatusActive
			activated = append(activated, a.AuctionID)
		}
		a.Mu.Unlock()
	}
	return activated
}

// CancelAuction transitions a Scheduled or Active auction to Cancelled and
// cascades every Listed item under it to Withdrawn. It fails with
// domain.ErrInvalidState if the auction is already terminal, and with
// domain.ErrCancelBlocked — before any mutation — if any item under the
// auction is Sold with a recorded settlement.
func (l *Lifecycle) CancelAuction(auctionID string) error {
	auction, err := l.auctions.Get(auctionID)
	if err != nil {
		return err
	}

	auction.Mu.Lock()
	defer auction.Mu.Unlock()

	if auction.Status != domain.AuctionStatusScheduled && auction.Status != domain.AuctionStatusActive {
		return domain.ErrInvalidState
	}

	items := l.items.ListByAuction(auctionID)

	// A fully paid sale pins the auction: check every item before touching
	// anything so a Blocked cancellation leaves no partial state.
	for _, item := range items {
		lock := l.locks.GetOrCreate(item.ItemID)
		lock.Lock()
		settled := item.Status == domain.ItemStatusSold && item.Settled()
		lock.Unlock()
		if settled {
			return domain.ErrCancelBlocked
		}
	}

	auction.Status = domain.AuctionStatusCancelled
	l.schedule.Remove(auctionID)

	for _, item := range items {
		lock := l.locks.GetOrCreate(item.ItemID)
		lock.Lock()
		if item.Status == domain.ItemStatusListed {
			item.Status = domain.ItemStatusWithdrawn
		}
		lock.Unlock()
	}

	return nil
}
