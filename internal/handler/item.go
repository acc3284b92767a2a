package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/poshika987/online-auction-system/internal/domain"
	"github.com/poshika987/online-auction-system/internal/service"
)

// ItemHandler handles HTTP requests for item endpoints.
type ItemHandler struct {
	itemSvc *service.ItemService
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(itemSvc *service.ItemService) *ItemHandler {
	return &ItemHandler{itemSvc: itemSvc}
}

// createItemRequest is the JSON request body for POST /items.
type createItemRequest struct {
	ItemID       string `json:"itemID"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	StartPrice   int64  `json:"start_price"`
	ReservePrice int64  `json:"reserve_price"`
	CategoryID   string `json:"categoryID"`
	AuctionID    string `json:"auctionID"`
}

// itemResponse is the JSON representation of an item. WinnerID and
// SettlementRef are omitted while unset.
type itemResponse struct {
	ItemID        string `json:"itemID"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	StartPrice    int64  `json:"start_price"`
	ReservePrice  int64  `json:"reserve_price"`
	CategoryID    string `json:"categoryID"`
	AuctionID     string `json:"auctionID"`
	Status        string `json:"status"`
	WinnerID      string `json:"winnerID,omitempty"`
	SalePrice     int64  `json:"sale_price,omitempty"`
	SettlementRef string `json:"settlement_ref,omitempty"`
}

func buildItemResponse(i *domain.Item) itemResponse {
	return itemResponse{
		ItemID:        i.ItemID,
		Title:         i.Title,
		Description:   i.Description,
		StartPrice:    i.StartPrice,
		ReservePrice:  i.ReservePrice,
		CategoryID:    i.CategoryID,
		AuctionID:     i.AuctionID,
		Status:        string(i.Status),
		WinnerID:      i.WinnerID,
		SalePrice:     i.SalePrice,
		SettlementRef: i.SettlementRef,
	}
}

// listedItemResponse is an item listing with its derived current price.
type listedItemResponse struct {
	itemResponse
	CurrentPrice int64 `json:"current_price"`
}

// Create handles POST /items.
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	var req createItemRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	item, err := h.itemSvc.Create(caller, service.CreateItemRequest{
		ItemID:       req.ItemID,
		Title:        req.Title,
		Description:  req.Description,
		StartPrice:   req.StartPrice,
		ReservePrice: req.ReservePrice,
		CategoryID:   req.CategoryID,
		AuctionID:    req.AuctionID,
	})
	if err != nil {
		mapItemError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, buildItemResponse(item))
}

// List handles GET /items: all Listed items with current prices.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	listings := h.itemSvc.ListListed()
	resp := make([]listedItemResponse, 0, len(listings))
	for _, l := range listings {
		resp = append(resp, listedItemResponse{
			itemResponse: buildItemResponse(l.Item),
			CurrentPrice: l.CurrentPrice,
		})
	}
	WriteJSON(w, http.StatusOK, resp)
}

// itemDetailResponse is the full item view with bid history.
type itemDetailResponse struct {
	itemResponse
	CurrentPrice int64         `json:"current_price"`
	Bids         []bidResponse `json:"bids"`
}

// Get handles GET /items/{item_id}.
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	detail, err := h.itemSvc.Get(chi.URLParam(r, "item_id"))
	if err != nil {
		mapItemError(w, err)
		return
	}

	bids := make([]bidResponse, 0, len(detail.Bids))
	for _, b := range detail.Bids {
		bids = append(bids, buildBidResponse(b))
	}
	WriteJSON(w, http.StatusOK, itemDetailResponse{
		itemResponse: buildItemResponse(detail.Item),
		CurrentPrice: detail.CurrentPrice,
		Bids:         bids,
	})
}

// finalizeResponse is the JSON response for POST /items/{item_id}/finalize.
type finalizeResponse struct {
	ItemID   string `json:"itemID"`
	Status   string `json:"status"`
	WinnerID string `json:"winnerID,omitempty"`
	Amount   int64  `json:"amount,omitempty"`
}

// Finalize handles POST /items/{item_id}/finalize.
func (h *ItemHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	outcome, err := h.itemSvc.Finalize(caller, chi.URLParam(r, "item_id"))
	if err != nil {
		mapItemError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, finalizeResponse{
		ItemID:   outcome.ItemID,
		Status:   string(outcome.Status),
		WinnerID: outcome.WinnerID,
		Amount:   outcome.Amount,
	})
}

// mapItemError maps item-related errors to HTTP responses.
func mapItemError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		WriteError(w, http.StatusBadRequest, "validation_error", validationErr.Message)
		return
	}

	switch {
	case errors.Is(err, domain.ErrItemNotFound):
		WriteError(w, http.StatusNotFound, "item_not_found", err.Error())
	case errors.Is(err, domain.ErrAuctionNotFound):
		WriteError(w, http.StatusNotFound, "auction_not_found", err.Error())
	case errors.Is(err, domain.ErrItemExists):
		WriteError(w, http.StatusConflict, "item_already_exists", err.Error())
	case errors.Is(err, domain.ErrInvalidState):
		WriteError(w, http.StatusConflict, "invalid_state", err.Error())
	case errors.Is(err, domain.ErrAlreadyFinalized):
		WriteError(w, http.StatusConflict, "already_finalized",
			"item has already been finalized")
	case errors.Is(err, domain.ErrAuctionStillOpen):
		WriteError(w, http.StatusConflict, "auction_still_open",
			"auction has not ended yet")
	case errors.Is(err, domain.ErrPermissionDenied):
		WriteError(w, http.StatusForbidden, "permission_denied",
			"administrator role required")
	default:
		WriteError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
