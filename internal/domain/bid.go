package domain

import "time"

// Bid is an immutable, timestamped monetary offer by a customer on an item.
// Bids are never edited or deleted. For a given item, committed bid amounts
// are strictly increasing in commit order, so the last bid is always the
// current maximum.
type Bid struct {
	BidID    string
	ItemID   string
	BidderID string
	Amount   int64 // integer monetary units, > 0
	PlacedAt time.Time
}
