package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/poshika987/online-auction-system/internal/domain"
	"github.com/poshika987/online-auction-system/internal/service"
)

// AuctionHandler handles HTTP requests for auction endpoints.
type AuctionHandler struct {
	auctionSvc *service.AuctionService
}

// NewAuctionHandler creates a new AuctionHandler.
func NewAuctionHandler(auctionSvc *service.AuctionService) *AuctionHandler {
	return &AuctionHandler{auctionSvc: auctionSvc}
}

// createAuctionRequest is the JSON request body for POST /auctions.
type createAuctionRequest struct {
	AuctionID string `json:"auctionID"`
	Name      string `json:"auction_name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// auctionResponse is the JSON representation of an auction.
type auctionResponse struct {
	AuctionID string `json:"auctionID"`
	Name      string `json:"auction_name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Status    string `json:"status"`
	OwnerID   string `json:"userID"`
}

func buildAuctionResponse(a *domain.Auction) auctionResponse {
	return auctionResponse{
		AuctionID: a.AuctionID,
		Name:      a.Name,
		StartTime: a.StartTime.UTC().Format(time.RFC3339),
		EndTime:   a.EndTime.UTC().Format(time.RFC3339),
		Status:    string(a.StatusSnapshot()),
		OwnerID:   a.OwnerID,
	}
}

// Create handles POST /auctions.
func (h *AuctionHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	var req createAuctionRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "validation_error", "start_time must be a valid RFC 3339 timestamp")
		return
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "validation_error", "end_time must be a valid RFC 3339 timestamp")
		return
	}

	a, err := h.auctionSvc.Create(caller, service.CreateAuctionRequest{
		AuctionID: req.AuctionID,
		Name:      req.Name,
		StartTime: start,
		EndTime:   end,
	})
	if err != nil {
		mapAuctionError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, buildAuctionResponse(a))
}

// List handles GET /auctions.
func (h *AuctionHandler) List(w http.ResponseWriter, r *http.Request) {
	auctions := h.auctionSvc.List()
	resp := make([]auctionResponse, 0, len(auctions))
	for _, a := range auctions {
		resp = append(resp, buildAuctionResponse(a))
	}
	WriteJSON(w, http.StatusOK, resp)
}

// ListItems handles GET /auctions/{auction_id}/items.
func (h *AuctionHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.auctionSvc.Items(chi.URLParam(r, "auction_id"))
	if err != nil {
		mapAuctionError(w, err)
		return
	}

	resp := make([]itemResponse, 0, len(items))
	for _, i := range items {
		resp = append(resp, buildItemResponse(i))
	}
	WriteJSON(w, http.StatusOK, resp)
}

// StartScheduled handles POST /auctions/start-scheduled.
func (h *AuctionHandler) StartScheduled(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	activated, err := h.auctionSvc.StartScheduled(caller)
	if err != nil {
		mapAuctionError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"activated": activated,
	})
}

// Cancel handles PUT /auctions/{auction_id}/cancel.
func (h *AuctionHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	if err := h.auctionSvc.Cancel(caller, chi.URLParam(r, "auction_id")); err != nil {
		mapAuctionError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"message": "auction cancelled"})
}

// mapAuctionError maps auction-related errors to HTTP responses.
func mapAuctionError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		WriteError(w, http.StatusBadRequest, "validation_error", validationErr.Message)
		return
	}

	switch {
	case errors.Is(err, domain.ErrAuctionNotFound):
		WriteError(w, http.StatusNotFound, "auction_not_found", err.Error())
	case errors.Is(err, domain.ErrAuctionExists):
		WriteError(w, http.StatusConflict, "auction_already_exists", err.Error())
	case errors.Is(err, domain.ErrInvalidState):
		WriteError(w, http.StatusConflict, "invalid_state",
			"auction is not in a cancellable state")
	case errors.Is(err, domain.ErrCancelBlocked):
		WriteError(w, http.StatusConflict, "cancel_blocked",
			"auction has a sold and paid item and cannot be cancelled")
	case errors.Is(err, domain.ErrPermissionDenied):
		WriteError(w, http.StatusForbidden, "permission_denied",
			"administrator role required")
	default:
		WriteError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
