package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain-level error handling.
// The handler layer maps these to HTTP status codes.
var (
	ErrAuctionNotFound     = errors.New("auction_not_found")
	ErrItemNotFound        = errors.New("item_not_found")
	ErrCustomerNotFound    = errors.New("customer_not_found")
	ErrAuctionExists       = errors.New("auction_already_exists")
	ErrItemExists          = errors.New("item_already_exists")
	ErrCustomerExists      = errors.New("customer_already_exists")
	ErrInvalidState        = errors.New("invalid_state")
	ErrAlreadyFinalized    = errors.New("already_finalized")
	ErrAuctionStillOpen    = errors.New("auction_still_open")
	ErrNotSold             = errors.New("not_sold")
	ErrNotWinner           = errors.New("not_winner")
	ErrAlreadyPaid         = errors.New("already_paid")
	ErrCancelBlocked       = errors.New("cancel_blocked")
	ErrPermissionDenied    = errors.New("permission_denied")
	ErrCustomerHasActivity = errors.New("customer_has_activity")
)

// ValidationError represents a request validation failure.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// BidRejectedError reports a bid that failed admission: amount too low, tie
// with the current price, self-bid, or auction not open for bidding. Losing
// a race against a concurrently committed bid is an ordinary rejection, not
// an exceptional condition.
type BidRejectedError struct {
	Reason string
}

func (e *BidRejectedError) Error() string {
	return fmt.Sprintf("bid_rejected: %s", e.Reason)
}
