package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/poshika987/online-auction-system/internal/domain"
	"github.com/poshika987/online-auction-system/internal/service"
)

// CustomerHandler handles HTTP requests for customer endpoints.
type CustomerHandler struct {
	customerSvc *service.CustomerService
	bidSvc      *service.BidService
	paymentSvc  *service.PaymentService
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(
	customerSvc *service.CustomerService,
	bidSvc *service.BidService,
	paymentSvc *service.PaymentService,
) *CustomerHandler {
	return &CustomerHandler{
		customerSvc: customerSvc,
		bidSvc:      bidSvc,
		paymentSvc:  paymentSvc,
	}
}

// registerCustomerRequest is the JSON request body for POST /customers.
type registerCustomerRequest struct {
	UserID  string `json:"userID"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Role    string `json:"role"`
}

// updateCustomerRequest is the JSON request body for PUT /customers/{id}.
type updateCustomerRequest struct {
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// customerResponse is the JSON representation of a customer.
type customerResponse struct {
	UserID    string `json:"userID"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

func buildCustomerResponse(c *domain.Customer) customerResponse {
	phone, address := c.ProfileSnapshot()
	return customerResponse{
		UserID:    c.UserID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     phone,
		Address:   address,
		Role:      string(c.Role),
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// Register handles POST /customers.
func (h *CustomerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerCustomerRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	c, err := h.customerSvc.Register(service.RegisterCustomerRequest{
		UserID:  req.UserID,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Role:    domain.Role(req.Role),
	})
	if err != nil {
		mapCustomerError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, buildCustomerResponse(c))
}

// Get handles GET /customers/{user_id}.
func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.customerSvc.Get(chi.URLParam(r, "user_id"))
	if err != nil {
		mapCustomerError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, buildCustomerResponse(c))
}

// Update handles PUT /customers/{user_id}.
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateCustomerRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	c, err := h.customerSvc.Update(chi.URLParam(r, "user_id"), service.UpdateCustomerRequest{
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		mapCustomerError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, buildCustomerResponse(c))
}

// Delete handles DELETE /customers/{user_id}.
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.customerSvc.Delete(chi.URLParam(r, "user_id")); err != nil {
		mapCustomerError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"message": "customer deleted"})
}

// List handles GET /customers.
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	customers := h.customerSvc.List()
	resp := make([]customerResponse, 0, len(customers))
	for _, c := range customers {
		resp = append(resp, buildCustomerResponse(c))
	}
	WriteJSON(w, http.StatusOK, resp)
}

// ListBids handles GET /customers/{user_id}/bids.
func (h *CustomerHandler) ListBids(w http.ResponseWriter, r *http.Request) {
	bids, err := h.bidSvc.ListByCustomer(chi.URLParam(r, "user_id"))
	if err != nil {
		mapCustomerError(w, err)
		return
	}

	resp := make([]bidResponse, 0, len(bids))
	for _, b := range bids {
		resp = append(resp, buildBidResponse(b))
	}
	WriteJSON(w, http.StatusOK, resp)
}

// ListWinnings handles GET /customers/{user_id}/winnings.
func (h *CustomerHandler) ListWinnings(w http.ResponseWriter, r *http.Request) {
	items, err := h.paymentSvc.UnpaidWinnings(chi.URLParam(r, "user_id"))
	if err != nil {
		mapCustomerError(w, err)
		return
	}

	resp := make([]winningResponse, 0, len(items))
	for _, i := range items {
		resp = append(resp, winningResponse{
			ItemID:    i.ItemID,
			Title:     i.Title,
			AuctionID: i.AuctionID,
			SalePrice: i.SalePrice,
		})
	}
	WriteJSON(w, http.StatusOK, resp)
}

// winningResponse is a single unpaid won item.
type winningResponse struct {
	ItemID    string `json:"itemID"`
	Title     string `json:"title"`
	AuctionID string `json:"auctionID"`
	SalePrice int64  `json:"sale_price"`
}

// Counts handles GET /stats/user_counts.
func (h *CustomerHandler) Counts(w http.ResponseWriter, r *http.Request) {
	counts := h.customerSvc.Counts()
	type roleCount struct {
		Role  string `json:"role"`
		Count int    `json:"count"`
	}
	resp := make([]roleCount, 0, len(counts))
	for _, rc := range counts {
		resp = append(resp, roleCount{Role: string(rc.Role), Count: rc.Count})
	}
	WriteJSON(w, http.StatusOK, resp)
}

// mapCustomerError maps customer-related errors to HTTP responses.
func mapCustomerError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		WriteError(w, http.StatusBadRequest, "validation_error", validationErr.Message)
		return
	}

	switch {
	case errors.Is(err, domain.ErrCustomerNotFound):
		WriteError(w, http.StatusNotFound, "customer_not_found", err.Error())
	case errors.Is(err, domain.ErrCustomerExists):
		WriteError(w, http.StatusConflict, "customer_already_exists", err.Error())
	case errors.Is(err, domain.ErrCustomerHasActivity):
		WriteError(w, http.StatusConflict, "customer_has_activity",
			"customer has bids or payments on record and cannot be deleted")
	default:
		WriteError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
