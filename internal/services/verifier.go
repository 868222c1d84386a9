package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/config"
	appErrors "github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/gateway"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/metrics"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-checkout/internal/repositories"
	"github.com/cenkalti/backoff/v4"
)

const defaultVerifyWait = 5 * time.Second

var errStillVerifying = errors.New("transaction is still being verified")

// PaymentVerifier confirms a payment with the gateway it was opened with.
// Each transaction is verified at most once; later calls replay the stored result.
type PaymentVerifier interface {
	Verify(ctx context.Context, handle string) (*models.VerificationResult, error)
}

type paymentVerifier struct {
	transactions repository.TransactionRepository
	carts        repository.CartRepository
	coupons      repository.CouponRepository
	orders       OrderCreator
	settings     SettingsService
	router       PaymentRouter
	verifyWait   time.Duration
}

func NewPaymentVerifier(
	transactions repository.TransactionRepository,
	carts repository.CartRepository,
	coupons repository.CouponRepository,
	orders OrderCreator,
	settings SettingsService,
	router PaymentRouter,
	cfg config.PaymentConfig,
) PaymentVerifier {
	wait := cfg.VerifyWait
	if wait <= 0 {
		wait = defaultVerifyWait
	}

	return &paymentVerifier{
		transactions: transactions,
		carts:        carts,
		coupons:      coupons,
		orders:       orders,
		settings:     settings,
		router:       router,
		verifyWait:   wait,
	}
}

func (v *paymentVerifier) Verify(ctx context.Context, handle string) (*models.VerificationResult, error) {

	txn, err := v.transactions.GetTransactionByHandle(ctx, handle)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Payment not found").WithError(err)
		}
		return nil, appErrors.DatabaseError("Failed to load payment").WithError(err)
	}

	logger := middleware.LoggerFromContext(ctx).With(
		slog.String("transaction_id", txn.ID.String()),
		slog.String("gateway", string(txn.Gateway)))

	if txn.Status.IsTerminal() {
		logger.Debug("Replaying stored verification result", slog.String("status", string(txn.Status)))
		return txn.Result(), nil
	}

	if txn.Status == models.TransactionStatusVerifying {
		return v.awaitOrResume(ctx, logger, handle)
	}

	claimed, err := v.transactions.TransitionStatus(ctx, txn.ID, models.TransactionStatusInitiated, models.TransactionStatusVerifying)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to claim payment for verification").WithError(err)
	}

	if !claimed {
		logger.Info("Verification already in flight, waiting for its result")
		return v.awaitOrResume(ctx, logger, handle)
	}

	txn.Status = models.TransactionStatusVerifying

	return v.verifyClaimed(ctx, logger, txn)
}

func (v *paymentVerifier) verifyClaimed(ctx context.Context, logger *slog.Logger, txn *models.PaymentTransaction) (*models.VerificationResult, error) {

	settings, err := v.settings.Current(ctx)
	if err != nil {
		v.release(ctx, logger, txn)
		return nil, err
	}

	// the recorded gateway, not the current store default
	sel, err := v.router.ForRecorded(settings, txn.Gateway)
	if err != nil {
		v.release(ctx, logger, txn)
		return nil, err
	}

	result, err := v.router.VerifyPayment(ctx, sel, gateway.VerifyParams{Amount: txn.Amount, Handle: txn.Handle})
	if err != nil {
		v.release(ctx, logger, txn)
		return nil, err
	}

	if result.Mismatch {
		return v.mismatch(ctx, logger, txn, result.Reason)
	}

	if !result.Success {
		return v.fail(ctx, logger, txn, result.Reason)
	}

	cart, err := v.carts.GetCartByID(ctx, txn.CartID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		v.release(ctx, logger, txn)
		return nil, appErrors.DatabaseError("Failed to load cart").WithError(err)
	}

	if cart == nil || !cart.Status.IsOpen() {
		return v.mismatch(ctx, logger, txn, "cart is no longer open for conversion")
	}

	txn.ReferenceID = result.ReferenceID

	order, err := v.orders.CreateFromTransaction(ctx, txn, cart)
	if err != nil {
		v.release(ctx, logger, txn)
		return nil, err
	}

	return v.finalize(ctx, logger, txn, cart, order)
}

// finalize converts the cart and marks the transaction verified once its order
// exists. From here on the claim is never released: a failure leaves the
// transaction verifying and a later callback resumes from the stored order.
func (v *paymentVerifier) finalize(ctx context.Context, logger *slog.Logger, txn *models.PaymentTransaction, cart *models.Cart, order *models.Order) (*models.VerificationResult, error) {
	logger = logger.With(slog.String("order_id", order.ID.String()))

	switch {
	case cart != nil && cart.Status.IsOpen():
		if err := v.convertCart(ctx, cart); err != nil {
			logger.Error("Order created but cart could not be converted", slog.Any("error", err))
			return nil, err
		}
	case cart == nil || cart.Status != models.CartStatusConverted:
		logger.Warn("Paid cart is no longer open", slog.Bool("cart_found", cart != nil))
	}

	orderID := order.ID
	txn.Status = models.TransactionStatusVerified
	txn.OrderID = &orderID
	if txn.ReferenceID == "" {
		txn.ReferenceID = order.PaymentReference
	}

	completed, err := v.transactions.CompleteTransaction(ctx, txn, models.TransactionStatusVerifying)
	if err != nil {
		logger.Error("Order created but payment could not be marked verified", slog.Any("error", err))
		return nil, appErrors.DatabaseError("Failed to record verified payment").WithError(err)
	}

	if !completed {
		logger.Warn("Payment left the verifying state before it was completed here")
		return v.awaitTerminal(ctx, txn.Handle)
	}

	if txn.CouponCode != "" {
		incremented, err := v.coupons.IncrementUsage(ctx, txn.CouponCode)
		switch {
		case err != nil:
			logger.Error("Failed to record coupon usage", slog.String("coupon", txn.CouponCode), slog.Any("error", err))
		case !incremented:
			logger.Warn("Coupon usage limit reached before payment completed", slog.String("coupon", txn.CouponCode))
		}
	}

	metrics.ObserveVerification(string(txn.Gateway), string(txn.Status))

	logger.Info("Payment verified", slog.String("reference_id", txn.ReferenceID))

	return txn.Result(), nil
}

// awaitOrResume waits for the verifier holding the claim. A transaction still
// verifying when the wait runs out but already backed by an order is
// finished here without asking the gateway again.
func (v *paymentVerifier) awaitOrResume(ctx context.Context, logger *slog.Logger, handle string) (*models.VerificationResult, error) {
	result, err := v.awaitTerminal(ctx, handle)
	if err != nil || result.Status != models.TransactionStatusVerifying {
		return result, err
	}

	order, err := v.orders.FindByTransaction(ctx, result.TransactionID)
	if err != nil {
		return nil, err
	}

	if order == nil {
		return result, nil
	}

	txn, err := v.transactions.GetTransactionByHandle(ctx, handle)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to load payment").WithError(err)
	}

	if txn.Status != models.TransactionStatusVerifying {
		return txn.Result(), nil
	}

	cart, err := v.carts.GetCartByID(ctx, txn.CartID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.DatabaseError("Failed to load cart").WithError(err)
	}

	logger.Warn("Resuming verification of a paid transaction", slog.String("order_id", order.ID.String()))

	return v.finalize(ctx, logger, txn, cart, order)
}

// convertCart marks the cart converted, re-reading it once if the version moved.
func (v *paymentVerifier) convertCart(ctx context.Context, cart *models.Cart) error {
	cart.Status = models.CartStatusConverted

	err := v.carts.UpdateCart(ctx, cart)
	if errors.Is(err, repository.ErrVersionConflict) {
		fresh, getErr := v.carts.GetCartByID(ctx, cart.ID)
		if getErr != nil {
			return appErrors.DatabaseError("Failed to reload cart").WithError(getErr)
		}
		if fresh.Status == models.CartStatusConverted {
			return nil
		}
		if !fresh.Status.IsOpen() {
			return appErrors.ConcurrencyConflictError("Cart changed during payment verification")
		}

		fresh.Status = models.CartStatusConverted
		err = v.carts.UpdateCart(ctx, fresh)
	}

	if err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return appErrors.ConcurrencyConflictError("Cart changed during payment verification").WithError(err)
		}
		return appErrors.DatabaseError("Failed to convert cart").WithError(err)
	}

	return nil
}

func (v *paymentVerifier) fail(ctx context.Context, logger *slog.Logger, txn *models.PaymentTransaction, reason string) (*models.VerificationResult, error) {
	txn.Status = models.TransactionStatusFailed
	txn.FailureReason = reason

	completed, err := v.transactions.CompleteTransaction(ctx, txn, models.TransactionStatusVerifying)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to record failed payment").WithError(err)
	}

	if !completed {
		return v.awaitTerminal(ctx, txn.Handle)
	}

	metrics.ObserveVerification(string(txn.Gateway), string(txn.Status))
	logger.Info("Payment not confirmed by gateway", slog.String("reason", reason))

	return txn.Result(), nil
}

// mismatch fails the transaction for manual reconciliation.
func (v *paymentVerifier) mismatch(ctx context.Context, logger *slog.Logger, txn *models.PaymentTransaction, reason string) (*models.VerificationResult, error) {
	logger.Error("Payment verification mismatch", slog.String("reason", reason))

	result, err := v.fail(ctx, logger, txn, "mismatch: "+reason)
	if err != nil {
		return nil, err
	}

	return result, appErrors.VerificationMismatchError(reason)
}

// release hands a claimed transaction back so a later callback can retry it.
func (v *paymentVerifier) release(ctx context.Context, logger *slog.Logger, txn *models.PaymentTransaction) {
	ok, err := v.transactions.TransitionStatus(context.WithoutCancel(ctx), txn.ID, models.TransactionStatusVerifying, models.TransactionStatusInitiated)
	if err != nil || !ok {
		logger.Error("Failed to release payment after verification error", slog.Bool("transitioned", ok), slog.Any("error", err))
		return
	}

	txn.Status = models.TransactionStatusInitiated
}

// awaitTerminal polls the stored transaction until another verifier finishes
// or the wait runs out, then returns whatever is stored.
func (v *paymentVerifier) awaitTerminal(ctx context.Context, handle string) (*models.VerificationResult, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 50 * time.Millisecond
	b.MaxInterval = time.Second
	b.MaxElapsedTime = v.verifyWait

	var latest *models.PaymentTransaction

	err := backoff.Retry(func() error {
		txn, err := v.transactions.GetTransactionByHandle(ctx, handle)
		if err != nil {
			return backoff.Permanent(err)
		}

		latest = txn
		if !txn.Status.IsTerminal() {
			return errStillVerifying
		}

		return nil
	}, backoff.WithContext(b, ctx))

	if latest == nil {
		return nil, appErrors.DatabaseError("Failed to load payment").WithError(err)
	}

	if err != nil && !errors.Is(err, errStillVerifying) && ctx.Err() == nil {
		return nil, appErrors.DatabaseError("Failed to load payment").WithError(err)
	}

	return latest.Result(), nil
}
