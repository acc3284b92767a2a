package engine

import (
	"time"

	"github.com/poshika987/online-auction-system/internal/domain"
	"github.com/poshika987/online-auction-system/internal/store"
)

// FinalizeOutcome is the result of finalizing an item: its terminal status
// and, when Sold, the unique winner and the locked sale price.
type FinalizeOutcome struct {
	ItemID   string
	Status   domain.ItemStatus
	WinnerID string // empty when Unsold
	Amount   int64  // sale price when Sold, 0 when Unsold
}

// Finalizer selects a winner per item once bidding has closed. The sale
// price it locks in is the item's current price at finalization, which no
// later operation can change: bids are excluded for the duration by the
// item lock, and a terminal item admits no new bids at all.
type Finalizer struct {
	locks    *ItemLocks
	auctions *store.AuctionStore
	items    *store.ItemStore
	bids     *store.BidStore
	prices   *PriceCalculator

	// Now supplies the wall clock for the end-instant check. Overridable
	// in tests.
	Now func() time.Time
}

// NewFinalizer creates a Finalizer over the given stores.
func NewFinalizer(
	locks *ItemLocks,
	auctions *store.AuctionStore,
	items *store.ItemStore,
	bids *store.BidStore,
	prices *PriceCalculator,
) *Finalizer {
	return &Finalizer{
		locks:    locks,
		auctions: auctions,
		items:    items,
		bids:     bids,
		prices:   prices,
		Now:      time.Now,
	}
}

// FinalizeItem locks in the outcome for a Listed item whose auction has
// closed. If the item has no bids, or its current price is below the
// reserve price, the item goes Unsold with no winner. Otherwise it goes
// Sold to the bidder who placed the maximum bid — unique, since committed
// amounts are strictly increasing — at that maximum as the sale price.
//
// Finalizing an already-terminal item fails with domain.ErrAlreadyFinalized
// (Withdrawn items fail domain.ErrInvalidState); a recorded winner is never
// re-evaluated or overwritten. If the auction is neither Ended nor past its
// end instant the call fails with domain.ErrAuctionStillOpen.
//
// Side effect: the first finalize past the end instant of an Active
// auction transitions that auction to Ended.
func (f *Finalizer) FinalizeItem(itemID string) (*FinalizeOutcome, error) {
	item, err := f.items.Get(itemID)
	if err != nil {
		return nil, err
	}
	auction, err := f.auctions.Get(item.AuctionID)
	if err != nil {
		return nil, err
	}

	auctionStatus := auction.StatusSnapshot()
	now := f.Now()

	lock := f.locks.GetOrCreate(itemID)
	lock.Lock()

	switch item.Status {
	case domain.ItemStatusListed:
		// Eligible.
	case domain.ItemStatusWithdrawn:
		lock.Unlock()
		return nil, domain.ErrInvalidState
	default: // Sold, Unsold
		lock.Unlock()
		return nil, domain.ErrAlreadyFinalized
	}

	if auctionStatus == domain.AuctionStatusCancelled {
		lock.Unlock()
		return nil, domain.ErrInvalidState
	}
	if auctionStatus != domain.AuctionStatusEnded && !auction.PastEnd(now) {
		lock.Unlock()
		return nil, domain.ErrAuctionStillOpen
	}

	amount := f.prices.currentPriceOf(item)
	maxBid, hasBids := f.bids.Max(itemID)

	outcome := &FinalizeOutcome{ItemID: itemID}
	if !hasBids || amount < item.ReservePrice {
		item.Status = domain.ItemStatusUnsold
		outcome.Status = domain.ItemStatusUnsold
	} else {
		item.Status = domain.ItemStatusSold
		item.WinnerID = maxBid.BidderID
		item.SalePrice = amount
		outcome.Status = domain.ItemStatusSold
		outcome.WinnerID = maxBid.BidderID
		outcome.Amount = amount
	}

	// Release the item lock before touching the auction: lock order is
	// auction before item.
	lock.Unlock()

	if auctionStatus == domain.AuctionStatusActive && auction.PastEnd(now) {
		auction.Mu.Lock()
		if auction.Status == domain.AuctionStatusActive {
			auction.Status = domain.AuctionStatusEnded
		}
		auction.Mu.Unlock()
	}

	return outcome, nil
}
