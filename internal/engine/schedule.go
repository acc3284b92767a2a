package engine

import (
	"sync"
	"time"

	"github.com/google/btree"

	"github.com/poshika987/online-auction-system/internal/domain"
)

// scheduleEntry is a single scheduled auction in the activation index.
type scheduleEntry struct {
	StartTime time.Time
	AuctionID string
	Auction   *domain.Auction
}

// scheduleLess orders entries by start instant ascending, then auction_id
// ascending. Min() returns the next auction due to start.
func scheduleLess(a, b scheduleEntry) bool {
	if !a.StartTime.Equal(b.StartTime) {
		return a.StartTime.Before(b.StartTime)
	}
	return a.AuctionID < b.AuctionID
}

// Schedule maintains the set of Scheduled auctions ordered by start instant
// using a B-tree, with a secondary index for O(log n) removal by auction ID.
// Auctions leave the schedule when they are activated or cancelled, which
// is what makes activation idempotent across repeated sweeps.
type Schedule struct {
	mu    sync.Mutex
	tree  *btree.BTreeG[scheduleEntry]
	index map[string]scheduleEntry // auction_id → entry
}

// NewSchedule creates an empty Schedule.
func NewSchedule() *Schedule {
	const degree = 32
	return &Schedule{
		tree:  btree.NewG[scheduleEntry](degree, scheduleLess),
		index: make(map[string]scheduleEntry),
	}
}

// Add inserts a Scheduled auction into the index.
func (s *Schedule) Add(a *domain.Auction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := scheduleEntry{
		StartTime: a.StartTime,
		AuctionID: a.AuctionID,
		Auction:   a,
	}
	s.tree.ReplaceOrInsert(entry)
	s.index[a.AuctionID] = entry
}

// Remove deletes an auction from the index by ID. No-op if absent.
func (s *Schedule) Remove(auctionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.index[auctionID]
	if !ok {
		return
	}
	delete(s.index, auctionID)
	s.tree.Delete(entry)
}

// PopDue removes and returns every auction whose start instant is <= now,
// in start order. Popped auctions are gone from the index, so a second
// sweep with the same clock value returns nothing.
func (s *Schedule) PopDue(now time.Time) []*domain.Auction {
	s.mu.Lock()
	defer s.mu.Unlock()

	var due []*domain.Auction
	for {
		entry, ok := s.tree.Min()
		if !ok || entry.StartTime.After(now) {
			break
		}
		s.tree.Delete(entry)
		delete(s.index, entry.AuctionID)
		due = append(due, entry.Auction)
	}
	return due
}

// Len returns the number of auctions currently scheduled. Useful for testing.
func (s *Schedule) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Len()
}
