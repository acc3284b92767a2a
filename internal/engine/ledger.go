package engine

import (
	"time"

	"github.com/google/uuid"

	"github.com/poshika987/online-auction-system/internal/domain"
	"github.com/poshika987/online-auction-system/internal/store"
)

// Ledger is the append-only record of bids. It owns bid admission: every
// bid is validated and committed under the item's lock, so that for a given
// item the committed amounts are strictly increasing in commit order. Two
// bids racing on the same item are serialized; whichever commits second is
// re-validated against the first's newly committed amount.
type Ledger struct {
	locks    *ItemLocks
	auctions *store.AuctionStore
	items    *store.ItemStore
	bids     *store.BidStore
	prices   *PriceCalculator

	// Now supplies the wall clock for the end-instant check. Overridable
	// in tests.
	Now func() time.Time
}

// NewLedger creates a Ledger over the given stores.
func NewLedger(
	locks *ItemLocks,
	auctions *store.AuctionStore,
	items *store.ItemStore,
	bids *store.BidStore,
	prices *PriceCalculator,
) *Ledger {
	return &Ledger{
		locks:    locks,
		auctions: auctions,
		items:    items,
		bids:     bids,
		prices:   prices,
		Now:      time.Now,
	}
}

// PlaceBid validates and commits a bid on an item. Preconditions are
// checked atomically under the item lock, first failure wins:
//
//  1. the item exists
//  2. the item is Listed
//  3. the owning auction is Active and its end instant has not passed
//     (the wall-clock check also covers an Active auction whose stored
//     status hasn't been flipped to Ended yet)
//  4. the amount is a positive integer
//  5. the amount strictly exceeds the current price — ties are rejected
//  6. the bidder is not the auction's listing administrator
//
// On success the bid becomes the item's new maximum and thus its new
// current price.
func (l *Ledger) PlaceBid(itemID, bidderID string, amount int64) (*domain.Bid, error) {
	item, err := l.items.Get(itemID)
	if err != nil {
		return nil, err
	}
	auction, err := l.auctions.Get(item.AuctionID)
	if err != nil {
		return nil, err
	}

	// Snapshot the auction status before taking the item lock (lock order
	// is auction before item). A cancellation that lands after this read
	// withdraws the item under its lock, so the item status check below
	// still catches it.
	auctionStatus := auction.StatusSnapshot()

	lock := l.locks.GetOrCreate(itemID)
	lock.Lock()
	defer lock.Unlock()

	if item.Status != domain.ItemStatusListed {
		return nil, &domain.BidRejectedError{Reason: "item is no longer open for bidding"}
	}
	if auctionStatus != domain.AuctionStatusActive {
		return nil, &domain.BidRejectedError{Reason: "auction is not active"}
	}
	if auction.PastEnd(l.Now()) {
		// Stored status may still read Active; no bid is admitted past
		// the end instant regardless.
		return nil, &domain.BidRejectedError{Reason: "auction has ended"}
	}

	if amount <= 0 {
		return nil, &domain.BidRejectedError{Reason: "amount must be a positive integer"}
	}

	current := l.prices.currentPriceOf(item)
	if amount <= current {
		return nil, &domain.BidRejectedError{Reason: "amount does not exceed current price"}
	}

	if bidderID == auction.OwnerID {
		return nil, &domain.BidRejectedError{Reason: "auction owner cannot bid on own items"}
	}

	bid := &domain.Bid{
		BidID:    uuid.New().String(),
		ItemID:   itemID,
		BidderID: bidderID,
		Amount:   amount,
		PlacedAt: l.Now(),
	}
	l.bids.Append(bid)

	return bid, nil
}
