package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
)

type CartSweeper interface {
	Sweep(ctx context.Context, now time.Time) (*models.SweepReport, error)
}

// Sweeper runs the cart expiry sweep on a fixed interval until its context
// is cancelled. Replicas coordinate through the sweep lock, so running one
// per process is safe.
type Sweeper struct {
	carts    CartSweeper
	interval time.Duration
	now      func() time.Time
}

func NewSweeper(carts CartSweeper, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	return &Sweeper{carts: carts, interval: interval, now: time.Now}
}

func (s *Sweeper) Run(ctx context.Context) error {
	logger := slog.Default().With(slog.String("worker", "cart-sweeper"))
	logger.Info("Cart sweeper started", slog.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Cart sweeper stopped")
			return nil
		case <-ticker.C:
			s.runOnce(ctx, logger)
		}
	}
}

func (s *Sweeper) runOnce(ctx context.Context, logger *slog.Logger) {
	report, err := s.carts.Sweep(ctx, s.now())
	if err != nil {
		logger.Error("Cart sweep failed", slog.Any("error", err))
		return
	}

	if report.LockHeld {
		logger.Debug("Cart sweep skipped, another replica holds the lock")
		return
	}

	logger.Info("Cart sweep finished",
		slog.Int("scanned", report.Scanned),
		slog.Int("warned", report.Warned),
		slog.Int("expired", report.Expired),
		slog.Int("deleted", report.Deleted),
		slog.Int("conflicts", report.Conflicts))
}
