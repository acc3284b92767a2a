package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/poshika987/online-auction-system/internal/config"
	"github.com/poshika987/online-auction-system/internal/engine"
	"github.com/poshika987/online-auction-system/internal/handler"
	"github.com/poshika987/online-auction-system/internal/service"
	"github.com/poshika987/online-auction-system/internal/store"
)

func main() {
	healthcheck := flag.Bool("healthcheck", false, "Run health check against running server")
	flag.Parse()

	// Handle -healthcheck flag: HTTP GET to localhost:PORT/healthz, exit 0/1.
	if *healthcheck {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}
		resp, err := http.Get(fmt.Sprintf("http://localhost:%s/healthz", port))
		if err != nil || resp.StatusCode != http.StatusOK {
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up slog logger with configured level.
	var logLevel slog.Level
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Instantiate stores.
	auctionStore := store.NewAuctionStore()
	itemStore := store.NewItemStore()
	bidStore := store.NewBidStore()
	paymentStore := store.NewPaymentStore()
	customerStore := store.NewCustomerStore()

	// Engine: the transactional core.
	locks := engine.NewItemLocks()
	schedule := engine.NewSchedule()
	prices := engine.NewPriceCalculator(itemStore, bidStore)
	ledger := engine.NewLedger(locks, auctionStore, itemStore, bidStore, prices)
	lifecycle := engine.NewLifecycle(locks, schedule, auctionStore, itemStore)
	finalizer := engine.NewFinalizer(locks, auctionStore, itemStore, bidStore, prices)
	settler := engine.NewSettler(locks, itemStore, paymentStore, prices)

	// Services.
	customerSvc := service.NewCustomerService(customerStore, bidStore, paymentStore)
	auctionSvc := service.NewAuctionService(lifecycle, auctionStore, itemStore, customerStore)
	itemSvc := service.NewItemService(finalizer, prices, auctionStore, itemStore, bidStore, customerStore)
	bidSvc := service.NewBidService(ledger, bidStore, customerStore)
	paymentSvc := service.NewPaymentService(settler, itemStore, customerStore)

	// Router.
	router := handler.NewRouter(customerSvc, auctionSvc, itemSvc, bidSvc, paymentSvc, logger)

	// Start the activation sweep with a cancellable context.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	activation := engine.NewActivationManager(cfg.ActivationInterval, lifecycle, logger)
	activation.Start(ctx)

	// Configure HTTP server.
	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Start HTTP server in a goroutine.
	go func() {
		logger.Info("server starting", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Wait for SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("shutdown signal received", slog.String("signal", sig.String()))

	// Graceful shutdown: stop HTTP server, cancel context (stops activation sweep).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}
	cancel()

	logger.Info("server stopped")
}
