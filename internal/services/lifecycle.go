package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/cache"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/config"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/metrics"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-checkout/internal/repositories"
)

// CartLifecycleManager owns cart expiry: Touch on every mutation, Sweep on a schedule.
type CartLifecycleManager interface {
	Touch(cart *models.Cart, settings *models.SettingsSnapshot, now time.Time)
	Sweep(ctx context.Context, now time.Time) (*models.SweepReport, error)
}

type cartLifecycle struct {
	carts        repository.CartRepository
	transactions repository.TransactionRepository
	settings     SettingsService
	dispatcher   NotificationDispatcher
	locker       cache.Locker
	cfg          config.CartConfig
	pendingTTL   time.Duration
}

func NewCartLifecycleManager(
	carts repository.CartRepository,
	transactions repository.TransactionRepository,
	settings SettingsService,
	dispatcher NotificationDispatcher,
	locker cache.Locker,
	cartCfg config.CartConfig,
	paymentCfg config.PaymentConfig,
) CartLifecycleManager {
	if cartCfg.SweepBatch <= 0 {
		cartCfg.SweepBatch = 200
	}

	return &cartLifecycle{
		carts:        carts,
		transactions: transactions,
		settings:     settings,
		dispatcher:   dispatcher,
		locker:       locker,
		cfg:          cartCfg,
		pendingTTL:   paymentCfg.PendingTTL,
	}
}

// Touch marks the cart as modified at now. A warned cart becomes active again
// and may be warned a second time before its new expiry.
func (m *cartLifecycle) Touch(cart *models.Cart, settings *models.SettingsSnapshot, now time.Time) {
	cart.LastModifiedAt = now
	cart.DeriveExpiry(settings)
	cart.WarningSentAt = nil

	if cart.Status == models.CartStatusWarned {
		cart.Status = models.CartStatusActive
	}
}

func (m *cartLifecycle) Sweep(ctx context.Context, now time.Time) (*models.SweepReport, error) {

	logger := middleware.LoggerFromContext(ctx)
	report := &models.SweepReport{}

	settings, err := m.settings.Current(ctx)
	if err != nil {
		metrics.ObserveSweep("error", 0, 0, 0, 0)
		return nil, err
	}

	if settings.PermanentCart || !settings.AutoExpireEnabled {
		report.Disabled = true
		metrics.ObserveSweep("disabled", 0, 0, 0, 0)

		return report, nil
	}

	release, err := m.locker.Acquire(ctx, cache.Key(cache.SweepLockPrefix, "global"), m.cfg.SweepLockTTL)
	switch {
	case errors.Is(err, cache.ErrLockHeld):
		report.LockHeld = true
		metrics.ObserveSweep("lock_held", 0, 0, 0, 0)
		logger.Info("Cart sweep already running elsewhere")

		return report, nil
	case err != nil:
		logger.Warn("Sweep lock unavailable, sweeping without it", slog.Any("error", err))
	default:
		defer func() {
			if err := release(context.WithoutCancel(ctx)); err != nil {
				logger.Warn("Failed to release sweep lock", slog.Any("error", err))
			}
		}()
	}

	cutoff := now.Add(-settings.CartTTL())
	if settings.ExpiryWarningEnabled {
		cutoff = cutoff.Add(settings.WarningWindow())
	}

	var cursor repository.SweepCursor

	for {
		carts, err := m.carts.ListSweepCandidates(ctx, cutoff, cursor, m.cfg.SweepBatch)
		if err != nil {
			metrics.ObserveSweep("error", report.Warned, report.Expired, report.Deleted, report.Conflicts)
			return report, fmt.Errorf("sweep page after %s: %w", cursor.ID, err)
		}

		for _, cart := range carts {
			report.Scanned++
			m.sweepCart(ctx, cart, settings, now, report)
		}

		if len(carts) < m.cfg.SweepBatch {
			break
		}

		last := carts[len(carts)-1]
		cursor = repository.SweepCursor{LastModifiedAt: last.LastModifiedAt, ID: last.ID}
	}

	metrics.ObserveSweep("ok", report.Warned, report.Expired, report.Deleted, report.Conflicts)

	logger.Info("Cart sweep finished",
		slog.Int("scanned", report.Scanned),
		slog.Int("warned", report.Warned),
		slog.Int("expired", report.Expired),
		slog.Int("deleted", report.Deleted),
		slog.Int("conflicts", report.Conflicts),
		slog.Int("skipped", report.Skipped),
		slog.Int("failed", report.Failed))

	return report, nil
}

func (m *cartLifecycle) sweepCart(ctx context.Context, cart *models.Cart, settings *models.SettingsSnapshot, now time.Time, report *models.SweepReport) {

	logger := middleware.LoggerFromContext(ctx).With(slog.String("cart_id", cart.ID.String()))

	// recomputed from the stored modification time
	expiresAt := cart.DeriveExpiry(settings)
	if expiresAt == nil {
		return
	}

	if !now.Before(*expiresAt) {
		m.expireCart(ctx, logger, cart, settings, now, report)
		return
	}

	warnFrom := expiresAt.Add(-settings.WarningWindow())

	if !settings.ExpiryWarningEnabled || cart.Status != models.CartStatusActive || cart.WarningSentAt != nil || now.Before(warnFrom) {
		return
	}

	// claim the warning before sending so a second sweep never resends it
	sentAt := now
	cart.Status = models.CartStatusWarned
	cart.WarningSentAt = &sentAt

	if err := m.carts.UpdateCart(ctx, cart); err != nil {
		m.recordWriteFailure(logger, "warn", err, report)
		return
	}

	report.Warned++

	err := m.dispatcher.SendExpiryWarning(ctx, &models.ExpiryWarning{
		CartID:    cart.ID,
		OwnerID:   cart.OwnerID,
		Recipient: cart.ContactEmail,
		ItemCount: len(cart.Items),
		ExpiresAt: *expiresAt,
	})

	switch {
	case errors.Is(err, errNoRecipient):
		logger.Debug("Cart has no contact email, warning recorded without sending")
	case err != nil:
		report.Failed++
		logger.Error("Failed to send cart expiry warning", slog.Any("error", err))
	}
}

func (m *cartLifecycle) expireCart(ctx context.Context, logger *slog.Logger, cart *models.Cart, settings *models.SettingsSnapshot, now time.Time, report *models.SweepReport) {

	inFlight, err := m.transactions.HasInFlightForCart(ctx, cart.ID, now.Add(-m.pendingTTL))
	if err != nil {
		report.Failed++
		logger.Error("Failed to check pending payments", slog.Any("error", err))

		return
	}

	if inFlight {
		report.Skipped++
		logger.Info("Cart is due to expire but a payment is in flight")

		return
	}

	if settings.AutoDeleteExpired {
		if err := m.carts.DeleteCart(ctx, cart.ID, cart.Version); err != nil {
			m.recordWriteFailure(logger, "delete", err, report)
			return
		}

		report.Expired++
		report.Deleted++

		return
	}

	cart.Status = models.CartStatusExpired

	if err := m.carts.UpdateCart(ctx, cart); err != nil {
		m.recordWriteFailure(logger, "expire", err, report)
		return
	}

	report.Expired++
}

// recordWriteFailure counts a lost version race as a conflict; the cart is
// reconsidered by the next sweep.
func (m *cartLifecycle) recordWriteFailure(logger *slog.Logger, op string, err error, report *models.SweepReport) {
	if errors.Is(err, repository.ErrVersionConflict) {
		report.Conflicts++
		logger.Debug("Cart changed during sweep", slog.String("operation", op))

		return
	}

	report.Failed++
	logger.Error("Failed to write cart during sweep", slog.String("operation", op), slog.Any("error", err))
}
