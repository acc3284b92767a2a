package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/poshika987/online-auction-system/internal/domain"
	"github.com/poshika987/online-auction-system/internal/service"
)

// BidHandler handles HTTP requests for the bid endpoint.
type BidHandler struct {
	bidSvc *service.BidService
}

// NewBidHandler creates a new BidHandler.
func NewBidHandler(bidSvc *service.BidService) *BidHandler {
	return &BidHandler{bidSvc: bidSvc}
}

// placeBidRequest is the JSON request body for POST /bid.
type placeBidRequest struct {
	CustID string `json:"custID"`
	ItemID string `json:"itemID"`
	Amount int64  `json:"amount"`
}

// bidResponse is the JSON representation of a committed bid.
type bidResponse struct {
	BidID    string `json:"bidID"`
	ItemID   string `json:"itemID"`
	BidderID string `json:"custID"`
	Amount   int64  `json:"amount"`
	PlacedAt string `json:"placed_at"`
}

func buildBidResponse(b *domain.Bid) bidResponse {
	return bidResponse{
		BidID:    b.BidID,
		ItemID:   b.ItemID,
		BidderID: b.BidderID,
		Amount:   b.Amount,
		PlacedAt: b.PlacedAt.UTC().Format(time.RFC3339Nano),
	}
}

// PlaceBid handles POST /bid.
func (h *BidHandler) PlaceBid(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	var req placeBidRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	bid, err := h.bidSvc.PlaceBid(caller, service.PlaceBidRequest{
		CustID: req.CustID,
		ItemID: req.ItemID,
		Amount: req.Amount,
	})
	if err != nil {
		mapBidError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, buildBidResponse(bid))
}

// mapBidError maps bid-related errors to HTTP responses. A rejected bid is
// an ordinary 400-level outcome carrying the rejection reason; callers may
// retry with an updated amount.
func mapBidError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		WriteError(w, http.StatusBadRequest, "validation_error", validationErr.Message)
		return
	}

	var rejected *domain.BidRejectedError
	if errors.As(err, &rejected) {
		WriteError(w, http.StatusBadRequest, "bid_rejected", rejected.Reason)
		return
	}

	switch {
	case errors.Is(err, domain.ErrItemNotFound):
		WriteError(w, http.StatusNotFound, "item_not_found", err.Error())
	case errors.Is(err, domain.ErrAuctionNotFound):
		WriteError(w, http.StatusNotFound, "auction_not_found", err.Error())
	case errors.Is(err, domain.ErrCustomerNotFound):
		WriteError(w, http.StatusNotFound, "customer_not_found", err.Error())
	case errors.Is(err, domain.ErrPermissionDenied):
		WriteError(w, http.StatusForbidden, "permission_denied",
			"bids can only be placed under the caller's own identity")
	default:
		WriteError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
