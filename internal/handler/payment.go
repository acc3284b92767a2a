package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/poshika987/online-auction-system/internal/domain"
	"github.com/poshika987/online-auction-system/internal/service"
)

// PaymentHandler handles HTTP requests for the payment endpoint.
type PaymentHandler struct {
	paymentSvc *service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentSvc *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentSvc: paymentSvc}
}

// recordPaymentRequest is the JSON request body for POST /payments. The
// amount is intentionally absent — the server computes it from the locked
// sale price.
type recordPaymentRequest struct {
	ItemID  string `json:"itemID"`
	PayerID string `json:"CustomerId"`
	Method  string `json:"paymentMethod"`
}

// paymentResponse is the JSON representation of a settlement.
type paymentResponse struct {
	PaymentID string `json:"paymentID"`
	ItemID    string `json:"itemID"`
	PayerID   string `json:"CustomerId"`
	Amount    int64  `json:"amount"`
	Method    string `json:"paymentMethod"`
	PaidAt    string `json:"payment_date"`
}

// Record handles POST /payments.
func (h *PaymentHandler) Record(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	var req recordPaymentRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	payment, err := h.paymentSvc.Record(caller, service.RecordPaymentRequest{
		ItemID:  req.ItemID,
		PayerID: req.PayerID,
		Method:  req.Method,
	})
	if err != nil {
		mapPaymentError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, paymentResponse{
		PaymentID: payment.PaymentID,
		ItemID:    payment.ItemID,
		PayerID:   payment.PayerID,
		Amount:    payment.Amount,
		Method:    string(payment.Method),
		PaidAt:    payment.PaidAt.UTC().Format(time.RFC3339),
	})
}

// mapPaymentError maps payment-related errors to HTTP responses.
func mapPaymentError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		WriteError(w, http.StatusBadRequest, "validation_error", validationErr.Message)
		return
	}

	switch {
	case errors.Is(err, domain.ErrItemNotFound):
		WriteError(w, http.StatusNotFound, "item_not_found", err.Error())
	case errors.Is(err, domain.ErrCustomerNotFound):
		WriteError(w, http.StatusNotFound, "customer_not_found", err.Error())
	case errors.Is(err, domain.ErrNotSold):
		WriteError(w, http.StatusConflict, "not_sold",
			"item has not been sold")
	case errors.Is(err, domain.ErrNotWinner):
		WriteError(w, http.StatusForbidden, "not_winner",
			"only the recorded winner can pay for the item")
	case errors.Is(err, domain.ErrAlreadyPaid):
		WriteError(w, http.StatusConflict, "already_paid",
			"item has already been paid for")
	case errors.Is(err, domain.ErrPermissionDenied):
		WriteError(w, http.StatusForbidden, "permission_denied",
			"payments can only be made under the caller's own identity")
	default:
		WriteError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
