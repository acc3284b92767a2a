package store

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/poshika987/online-auction-system/internal/domain"
)

func testBid(id, itemID, bidderID string, amount int64) *domain.Bid {
	return &domain.Bid{
		BidID:    id,
		ItemID:   itemID,
		BidderID: bidderID,
		Amount:   amount,
		PlacedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestBidStore_AppendAndListByItem(t *testing.T) {
	s := NewBidStore()
	s.Append(testBid("B1", "I1", "C1", 1000))
	s.Append(testBid("B2", "I1", "C2", 1200))
	s.Append(testBid("B3", "I2", "C1", 500))

	bids := s.ListByItem("I1")
	if len(bids) != 2 || bids[0].BidID != "B1" || bids[1].BidID != "B2" {
		t.Fatalf("ListByItem(I1) = %d bids, want [B1 B2] in order", len(bids))
	}
	if got := s.ListByItem("empty"); len(got) != 0 {
		t.Fatalf("ListByItem(empty) = %d bids, want 0", len(got))
	}
}

func TestBidStore_ListByBidder(t *testing.T) {
	s := NewBidStore()
	s.Append(testBid("B1", "I1", "C1", 1000))
	s.Append(testBid("B2", "I2", "C1", 500))
	s.Append(testBid("B3", "I1", "C2", 1200))

	bids := s.ListByBidder("C1")
	if len(bids) != 2 || bids[0].BidID != "B1" || bids[1].BidID != "B2" {
		t.Fatalf("ListByBidder(C1) = %d bids, want [B1 B2] in order", len(bids))
	}
}

func TestBidStore_Max(t *testing.T) {
	s := NewBidStore()
	if _, ok := s.Max("I1"); ok {
		t.Fatal("Max on empty item reported a bid")
	}

	s.Append(testBid("B1", "I1", "C1", 1000))
	s.Append(testBid("B2", "I1", "C2", 1500))

	max, ok := s.Max("I1")
	if !ok || max.Amount != 1500 {
		t.Fatalf("Max = %v/%v, want the last appended bid at 1500", max, ok)
	}
}

func TestBidStore_HasBidder(t *testing.T) {
	s := NewBidStore()
	if s.HasBidder("C1") {
		t.Fatal("HasBidder true for customer with no bids")
	}
	s.Append(testBid("B1", "I1", "C1", 1000))
	if !s.HasBidder("C1") {
		t.Fatal("HasBidder false after append")
	}
}

func TestBidStore_ConcurrentAppend(t *testing.T) {
	s := NewBidStore()

	const goroutines = 20
	const perGoroutine = 50
	var wg sync.WaitGroup
	for g := range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range perGoroutine {
				s.Append(testBid(
					fmt.Sprintf("B-%d-%d", g, i),
					fmt.Sprintf("I%d", g%4),
					fmt.Sprintf("C%d", g),
					int64(i+1),
				))
			}
		}()
	}
	wg.Wait()

	total := 0
	for i := range 4 {
		total += len(s.ListByItem(fmt.Sprintf("I%d", i)))
	}
	if total != goroutines*perGoroutine {
		t.Fatalf("total bids = %d, want %d", total, goroutines*perGoroutine)
	}
	for g := range goroutines {
		if got := len(s.ListByBidder(fmt.Sprintf("C%d", g))); got != perGoroutine {
			t.Fatalf("bidder C%d has %d bids, want %d", g, got, perGoroutine)
		}
	}
}
