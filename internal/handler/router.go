package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/poshika987/online-auction-system/internal/service"
)

// NewRouter creates a chi router with all routes registered, request
// logging, and Content-Type validation middleware.
func NewRouter(
	customerSvc *service.CustomerService,
	auctionSvc *service.AuctionService,
	itemSvc *service.ItemService,
	bidSvc *service.BidService,
	paymentSvc *service.PaymentService,
	logger *slog.Logger,
) chi.Router {
	r := chi.NewRouter()

	// Global middleware.
	r.Use(requestLogging(logger))
	r.Use(contentTypeJSON)

	// Create handlers.
	customerH := NewCustomerHandler(customerSvc, bidSvc, paymentSvc)
	auctionH := NewAuctionHandler(auctionSvc)
	itemH := NewItemHandler(itemSvc)
	bidH := NewBidHandler(bidSvc)
	paymentH := NewPaymentHandler(paymentSvc)

	// Health check.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Customer routes.
	r.Post("/customers", customerH.Register)
	r.Get("/customers", customerH.List)
	r.Get("/customers/{user_id}", customerH.Get)
	r.Put("/customers/{user_id}", customerH.Update)
	r.Delete("/customers/{user_id}", customerH.Delete)
	r.Get("/customers/{user_id}/bids", customerH.ListBids)
	r.Get("/customers/{user_id}/winnings", customerH.ListWinnings)

	// Auction routes.
	r.Post("/auctions", auctionH.Create)
	r.Get("/auctions", auctionH.List)
	r.Get("/auctions/{auction_id}/items", auctionH.ListItems)
	r.Post("/auctions/start-scheduled", auctionH.StartScheduled)
	r.Put("/auctions/{auction_id}/cancel", auctionH.Cancel)

	// Item routes.
	r.Post("/items", itemH.Create)
	r.Get("/items", itemH.List)
	r.Get("/items/{item_id}", itemH.Get)
	r.Post("/items/{item_id}/finalize", itemH.Finalize)

	// Bid and payment routes.
	r.Post("/bid", bidH.PlaceBid)
	r.Post("/payments", paymentH.Record)

	// Reporting routes.
	r.Get("/stats/user_counts", customerH.Counts)

	return r
}

// requestLogging returns middleware that logs each request's method, path,
// status code, and duration using slog.
func requestLogging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			logger.Info("request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

// contentTypeJSON is middleware that validates Content-Type for POST, PUT,
// and PATCH requests with a body. If the Content-Type header doesn't start
// with "application/json", it returns 400 Bad Request before the handler
// runs. Bodyless POSTs (finalize, start-scheduled, cancel) are exempt.
func contentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if (r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch) && r.ContentLength > 0 {
			ct := r.Header.Get("Content-Type")
			if ct == "" || !strings.HasPrefix(ct, "application/json") {
				WriteError(w, http.StatusBadRequest, "invalid_request",
					"Content-Type must be application/json")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
