package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/url"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/api/middleware"
	appErrors "github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/gateway"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-checkout/internal/repositories"
	"github.com/google/uuid"
)

type PaymentService interface {
	GetTransaction(ctx context.Context, ownerID uuid.UUID, isAdmin bool, handle string) (*models.PaymentTransaction, error)
	ListTransactions(ctx context.Context, statuses []models.TransactionStatus, page, size int) ([]*models.PaymentTransaction, int, error)
	HandleCallback(ctx context.Context, name models.GatewayName, values url.Values) (*models.VerificationResult, error)
}

type paymentService struct {
	repo     repository.TransactionRepository
	verifier PaymentVerifier
}

func NewPaymentService(repo repository.TransactionRepository, verifier PaymentVerifier) PaymentService {
	return &paymentService{repo: repo, verifier: verifier}
}

// GetTransaction returns a transaction by handle. Customers only see their own.
func (s *paymentService) GetTransaction(ctx context.Context, ownerID uuid.UUID, isAdmin bool, handle string) (*models.PaymentTransaction, error) {
	txn, err := s.repo.GetTransactionByHandle(ctx, handle)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Payment not found").WithError(err)
		}
		return nil, appErrors.DatabaseError("Failed to fetch payment").WithError(err)
	}

	if !isAdmin && txn.OwnerID != ownerID {
		return nil, appErrors.NotFoundError("Payment not found")
	}

	return txn, nil
}

// ListTransactions backs the admin reconciliation view.
func (s *paymentService) ListTransactions(ctx context.Context, statuses []models.TransactionStatus, page, size int) ([]*models.PaymentTransaction, int, error) {
	page, size = models.NormalizePage(page, size)

	txns, total, err := s.repo.ListTransactions(ctx, statuses, page, size)
	if err != nil {
		return nil, 0, appErrors.DatabaseError("Failed to fetch payments").WithError(err)
	}

	return txns, total, nil
}

// HandleCallback verifies the payment named by a provider's return request.
// A declined hint still goes through Verify so the transaction reaches a
// terminal state.
func (s *paymentService) HandleCallback(ctx context.Context, name models.GatewayName, values url.Values) (*models.VerificationResult, error) {

	logger := middleware.LoggerFromContext(ctx)

	if !name.Valid() {
		return nil, appErrors.NotFoundError("Unknown payment gateway")
	}

	hint, err := gateway.ParseCallback(name, values)
	if err != nil {
		return nil, appErrors.BadRequestError("Invalid payment callback").WithError(err)
	}

	logger.Info("Payment callback received",
		slog.String("gateway", string(name)),
		slog.String("handle", hint.Handle),
		slog.Bool("declined_hint", hint.Declined))

	txn, err := s.repo.GetTransactionByHandle(ctx, hint.Handle)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Payment not found").WithError(err)
		}
		return nil, appErrors.DatabaseError("Failed to load payment").WithError(err)
	}

	// a handle only verifies through the gateway that issued it
	if txn.Gateway != name {
		logger.Warn("Callback gateway does not match payment",
			slog.String("transaction_id", txn.ID.String()),
			slog.String("payment_gateway", string(txn.Gateway)))

		return nil, appErrors.NotFoundError("Payment not found")
	}

	return s.verifier.Verify(ctx, hint.Handle)
}
