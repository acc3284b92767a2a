package engine

import (
	"context"
	"log/slog"
	"time"
)

// ActivationManager periodically sweeps the schedule and activates due
// auctions. Activation is idempotent, so the tick interval only affects
// how promptly a Scheduled auction flips to Active, never correctness —
// the ledger's wall-clock checks hold regardless.
type ActivationManager struct {
	interval  time.Duration
	lifecycle *Lifecycle
	logger    *slog.Logger
}

// NewActivationManager creates an ActivationManager with the given tick
// interval.
func NewActivationManager(interval time.Duration, lifecycle *Lifecycle, logger *slog.Logger) *ActivationManager {
	return &ActivationManager{
		interval:  interval,
		lifecycle: lifecycle,
		logger:    logger,
	}
}

// Start launches a background goroutine that ticks at the configured
// interval and activates due auctions. It stops when ctx is cancelled.
func (m *ActivationManager) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case t := <-ticker.C:
				activated := m.lifecycle.ActivateDue(t)
				if len(activated) > 0 && m.logger != nil {
					m.logger.Info("auctions activated",
						slog.Int("count", len(activated)),
						slog.Any("auction_ids", activated),
					)
				}
			}
		}
	}()
}
