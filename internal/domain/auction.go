package domain

import (
	"sync"
	"time"
)

// AuctionStatus represents the lifecycle state of an auction.
type AuctionStatus string

const (
	AuctionStatusScheduled AuctionStatus = "Scheduled"
	AuctionStatusActive    AuctionStatus = "Active"
	AuctionStatusEnded     AuctionStatus = "Ended"
	AuctionStatusCancelled AuctionStatus = "Cancelled"
)

// Auction represents a scheduled event bundling items for time-boxed bidding.
// Status advances Scheduled → Active → Ended, with Cancelled reachable from
// Scheduled and Active. Ended and Cancelled are terminal. Auctions are never
// deleted, only state-transitioned.
type Auction struct {
	AuctionID string
	Name      string
	StartTime time.Time
	EndTime   time.Time
	Status    AuctionStatus
	OwnerID   string // administrator who created the auction
	CreatedAt time.Time
	Mu        sync.Mutex // per-auction lock for lifecycle transitions
}

// StatusSnapshot reads the auction's status under its lock. Callers that
// hold an item lock must use this snapshot taken beforehand rather than
// acquiring Mu themselves: the lock order is auction before item, never
// the reverse.
func (a *Auction) StatusSnapshot() AuctionStatus {
	a.Mu.Lock()
	defer a.Mu.Unlock()
	return a.Status
}

// DueToStart reports whether a Scheduled auction's start instant has passed.
func (a *Auction) DueToStart(now time.Time) bool {
	return a.Status == AuctionStatusScheduled && !a.StartTime.After(now)
}

// PastEnd reports whether the auction's end instant has passed.
func (a *Auction) PastEnd(now time.Time) bool {
	return !a.EndTime.After(now)
}

// Terminal reports whether the auction is in a terminal state.
func (a *Auction) Terminal() bool {
	return a.Status == AuctionStatusEnded || a.Status == AuctionStatusCancelled
}
