package engine

import (
	"github.com/poshika987/online-auction-system/internal/domain"
	"github.com/poshika987/online-auction-system/internal/store"
)

// PriceCalculator derives an item's current price from its committed bid
// history and starting price. It is a pure read over store state: the
// current price equals the maximum bid amount if any bids exist, else the
// item's starting price.
type PriceCalculator struct {
	items *store.ItemStore
	bids  *store.BidStore
}

// NewPriceCalculator creates a PriceCalculator over the given stores.
func NewPriceCalculator(items *store.ItemStore, bids *store.BidStore) *PriceCalculator {
	return &PriceCalculator{
		items: items,
		bids:  bids,
	}
}

// CurrentPrice returns the current price for the item. It returns
// domain.ErrItemNotFound if the item does not exist.
func (p *PriceCalculator) CurrentPrice(itemID string) (int64, error) {
	item, err := p.items.Get(itemID)
	if err != nil {
		return 0, err
	}
	return p.currentPriceOf(item), nil
}

// currentPriceOf computes the current price of an already-fetched item.
// Used inside engine critical sections to avoid a second store lookup.
func (p *PriceCalculator) currentPriceOf(item *domain.Item) int64 {
	if max, ok := p.bids.Max(item.ItemID); ok {
		return max.Amount
	}
	return item.StartPrice
}
