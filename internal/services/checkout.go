package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/config"
	appErrors "github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/gateway"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-checkout/internal/repositories"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils"
	"github.com/google/uuid"
)

const callbackPath = "/api/v1/payments/callback/"

// PaymentRouter is the part of gateway.Router the checkout flow depends on.
type PaymentRouter interface {
	Resolve(settings *models.SettingsSnapshot, explicit gateway.Name) (*gateway.Selection, error)
	ForRecorded(settings *models.SettingsSnapshot, name gateway.Name) (*gateway.Selection, error)
	RequestPayment(ctx context.Context, sel *gateway.Selection, params gateway.RequestParams) (*gateway.RequestResult, error)
	VerifyPayment(ctx context.Context, sel *gateway.Selection, params gateway.VerifyParams) (*gateway.VerifyResult, error)
}

type CheckoutService interface {
	InitiatePayment(ctx context.Context, ownerID uuid.UUID, email string, req *models.InitiatePaymentRequest) (*models.InitiatePaymentResponse, error)
}

type checkoutService struct {
	carts        repository.CartRepository
	transactions repository.TransactionRepository
	rateLimiter  repository.RateLimitRepository
	settings     SettingsService
	router       PaymentRouter
	pricer       *CartPricer
	cfg          config.GatewayConfig
	pendingTTL   time.Duration
	now          func() time.Time
}

func NewCheckoutService(
	carts repository.CartRepository,
	transactions repository.TransactionRepository,
	rateLimiter repository.RateLimitRepository,
	settings SettingsService,
	router PaymentRouter,
	pricer *CartPricer,
	gatewayCfg config.GatewayConfig,
	paymentCfg config.PaymentConfig,
) CheckoutService {
	return &checkoutService{
		carts:        carts,
		transactions: transactions,
		rateLimiter:  rateLimiter,
		settings:     settings,
		router:       router,
		pricer:       pricer,
		cfg:          gatewayCfg,
		pendingTTL:   paymentCfg.PendingTTL,
		now:          time.Now,
	}
}

// InitiatePayment prices the owner's cart, opens a payment with the selected
// gateway and records the transaction as initiated. Nothing is persisted when
// the gateway refuses or cannot be reached.
func (s *checkoutService) InitiatePayment(ctx context.Context, ownerID uuid.UUID, email string, req *models.InitiatePaymentRequest) (*models.InitiatePaymentResponse, error) {

	logger := middleware.LoggerFromContext(ctx).With(slog.String("owner_id", ownerID.String()))

	allowed, _, retryAfter, err := s.rateLimiter.CheckCheckoutRateLimit(ctx, ownerID)
	if err != nil {
		logger.Warn("Checkout rate limit unavailable, allowing attempt", slog.Any("error", err))
	} else if !allowed {
		logger.Info("Checkout rate limit exceeded", slog.Int("retry_after", retryAfter))
		return nil, appErrors.RateLimitedError(time.Duration(retryAfter) * time.Second)
	}

	settings, err := s.settings.Current(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()

	cart, err := s.carts.GetOpenCartByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Localized(appErrors.MsgCartEmpty)
		}
		return nil, appErrors.DatabaseError("Failed to load cart").WithError(err)
	}

	if len(cart.Items) == 0 {
		return nil, appErrors.Localized(appErrors.MsgCartEmpty)
	}

	if expiresAt := cart.DeriveExpiry(settings); expiresAt != nil && settings.AutoExpireEnabled && !now.Before(*expiresAt) {
		return nil, appErrors.Localized(appErrors.MsgCartExpired)
	}

	inFlight, err := s.transactions.HasInFlightForCart(ctx, cart.ID, now.Add(-s.pendingTTL))
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to check pending payments").WithError(err)
	}

	if inFlight {
		return nil, appErrors.CartLockedError()
	}

	sel, err := s.router.Resolve(settings, req.Gateway)
	if err != nil {
		logger.Warn("Gateway selection failed", slog.String("gateway", string(req.Gateway)), slog.Any("error", err))
		return nil, err
	}

	breakdown, err := s.pricer.price(ctx, cart.Items, req.CouponCode, now)
	if err != nil {
		return nil, err
	}

	if !breakdown.GrandTotal.IsPositive() {
		return nil, appErrors.Localized(appErrors.MsgNothingToPay)
	}

	// claims the cart version so a concurrent checkout of the same cart loses
	if email != "" {
		cart.ContactEmail = email
	}

	if err := s.carts.UpdateCart(ctx, cart); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return nil, appErrors.ConcurrencyConflictError("Cart was changed concurrently, please try again").WithError(err)
		}
		return nil, appErrors.DatabaseError("Failed to update cart").WithError(err)
	}

	txnID := uuid.New()

	result, err := s.router.RequestPayment(ctx, sel, gateway.RequestParams{
		Amount:      breakdown.GrandTotal,
		CallbackURL: strings.TrimRight(s.cfg.CallbackBaseURL, "/") + callbackPath + string(sel.Name),
		FailureURL:  s.cfg.FailurePageURL,
		Description: utils.SanitizeText(fmt.Sprintf("Order %s (%d items)", txnID.String()[:8], len(breakdown.Lines))),
		PayerEmail:  cart.ContactEmail,
		OrderRef:    txnID.String(),
	})
	if err != nil {
		return nil, err
	}

	txn := &models.PaymentTransaction{
		ID:         txnID,
		CartID:     cart.ID,
		OwnerID:    ownerID,
		Gateway:    sel.Name,
		Handle:     result.Handle,
		Amount:     breakdown.GrandTotal,
		CouponCode: breakdown.CouponCode,
		Breakdown:  &breakdown,
		Status:     models.TransactionStatusInitiated,
	}

	if err := s.transactions.CreateTransaction(ctx, txn); err != nil {
		return nil, appErrors.DatabaseError("Failed to record payment").WithError(err)
	}

	logger.Info("Payment initiated",
		slog.String("transaction_id", txn.ID.String()),
		slog.String("gateway", string(sel.Name)),
		slog.String("amount", txn.Amount.StringFixed(2)))

	return &models.InitiatePaymentResponse{
		TransactionID: txn.ID,
		Handle:        txn.Handle,
		Gateway:       txn.Gateway,
		Amount:        txn.Amount,
		RedirectURL:   result.RedirectURL,
	}, nil
}
