package domain

import "time"

// ItemStatus represents the lifecycle state of an auction item.
type ItemStatus string

const (
	ItemStatusListed    ItemStatus = "Listed"
	ItemStatusSold      ItemStatus = "Sold"
	ItemStatusUnsold    ItemStatus = "Unsold"
	ItemStatusWithdrawn ItemStatus = "Withdrawn"
)

// Item represents a single good being sold within an auction. The auction
// reference is immutable after creation and status transitions are monotonic:
// Listed → Sold, Listed → Unsold, Listed → Withdrawn, all terminal.
//
// WinnerID and SalePrice are set exactly once, by finalization, when the item
// transitions to Sold. SettlementRef is set exactly once, by payment
// reconciliation, and only while the item is Sold with a non-empty winner.
// Empty string means unset for both.
//
// All field mutations happen under the per-item engine lock.
type Item struct {
	ItemID        string
	Title         string
	Description   string
	StartPrice    int64 // integer monetary units, >= 0
	ReservePrice  int64 // integer monetary units, >= StartPrice
	CategoryID    string
	AuctionID     string
	Status        ItemStatus
	WinnerID      string
	SalePrice     int64 // locked at finalization, 0 until then
	SettlementRef string
	CreatedAt     time.Time
}

// Terminal reports whether the item has left the Listed state.
func (i *Item) Terminal() bool {
	return i.Status != ItemStatusListed
}

// Settled reports whether a payment has been recorded for the item.
func (i *Item) Settled() bool {
	return i.SettlementRef != ""
}
