package repository_test

import (
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-checkout/internal/repositories"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTransactionRepoTest(t *testing.T) (repository.TransactionRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "Failed to create sqlmock")

	t.Cleanup(func() {
		db.Close()
	})

	return repository.NewTransactionRepo(db), mock
}

var transactionRowColumns = []string{"id", "cart_id", "owner_id", "order_id", "gateway", "handle", "amount", "coupon_code", "breakdown",
	"status", "reference_id", "failure_reason", "created_at", "updated_at"}

func TestTransactionRepository(t *testing.T) {
	repo, mock := setupTransactionRepoTest(t)
	ctx := t.Context()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Success - Create Transaction", func(t *testing.T) {
		// Arrange
		txn := &models.PaymentTransaction{
			ID:      uuid.New(),
			CartID:  uuid.New(),
			OwnerID: uuid.New(),
			Gateway: models.GatewayZarinpal,
			Handle:  "A0000000000000000000000000000wwOGYpd",
			Amount:  decimal.RequireFromString("350000"),
			Breakdown: &models.PriceBreakdown{
				Subtotal:   decimal.RequireFromString("400000"),
				GrandTotal: decimal.RequireFromString("350000"),
			},
			Status: models.TransactionStatusInitiated,
		}

		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO payment_transactions`)).
			WithArgs(txn.ID, txn.CartID, txn.OwnerID, txn.Gateway, txn.Handle, txn.Amount, "", sqlmock.AnyArg(), txn.Status).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		// Act
		err := repo.CreateTransaction(ctx, txn)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, now, txn.CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Get Transaction By Handle", func(t *testing.T) {
		// Arrange
		id, cartID, ownerID, orderID := uuid.New(), uuid.New(), uuid.New(), uuid.New()

		mock.ExpectQuery(regexp.QuoteMeta(`FROM payment_transactions WHERE handle = $1`)).
			WithArgs("tok-1").
			WillReturnRows(sqlmock.NewRows(transactionRowColumns).AddRow(
				id.String(), cartID.String(), ownerID.String(), orderID.String(), "sadad", "tok-1", "350000.00", "SAVE50",
				[]byte(`{"subtotal":"400000","coupon_code":"SAVE50","grand_total":"350000"}`), "verified", "ref-9", "", now, now))

		// Act
		txn, err := repo.GetTransactionByHandle(ctx, "tok-1")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, id, txn.ID)
		assert.Equal(t, models.GatewaySadad, txn.Gateway)
		assert.Equal(t, models.TransactionStatusVerified, txn.Status)
		require.NotNil(t, txn.OrderID)
		assert.Equal(t, orderID, *txn.OrderID)
		assert.True(t, decimal.RequireFromString("350000").Equal(txn.Amount))
		require.NotNil(t, txn.Breakdown)
		assert.Equal(t, "SAVE50", txn.Breakdown.CouponCode)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Unknown Handle", func(t *testing.T) {
		// Arrange
		mock.ExpectQuery(regexp.QuoteMeta(`WHERE handle = $1`)).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		// Act
		txn, err := repo.GetTransactionByHandle(ctx, "missing")

		// Assert
		assert.Nil(t, txn)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	t.Run("Success - Transition Claimed", func(t *testing.T) {
		// Arrange
		id := uuid.New()

		mock.ExpectExec(regexp.QuoteMeta(`UPDATE payment_transactions SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3`)).
			WithArgs(models.TransactionStatusVerifying, id, models.TransactionStatusInitiated).
			WillReturnResult(sqlmock.NewResult(0, 1))

		// Act
		ok, err := repo.TransitionStatus(ctx, id, models.TransactionStatusInitiated, models.TransactionStatusVerifying)

		// Assert
		require.NoError(t, err)
		assert.True(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Transition Lost To Concurrent Caller", func(t *testing.T) {
		// Arrange
		id := uuid.New()

		mock.ExpectExec(regexp.QuoteMeta(`UPDATE payment_transactions SET status = $1`)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		// Act
		ok, err := repo.TransitionStatus(ctx, id, models.TransactionStatusInitiated, models.TransactionStatusVerifying)

		// Assert
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Success - Complete Transaction", func(t *testing.T) {
		// Arrange
		orderID := uuid.New()
		txn := &models.PaymentTransaction{ID: uuid.New(), Status: models.TransactionStatusVerified, ReferenceID: "ref-1", OrderID: &orderID}

		mock.ExpectQuery(regexp.QuoteMeta(`SET status = $1, reference_id = $2, failure_reason = $3, order_id = $4`)).
			WithArgs(txn.Status, "ref-1", "", orderID, txn.ID, models.TransactionStatusVerifying).
			WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))

		// Act
		ok, err := repo.CompleteTransaction(ctx, txn, models.TransactionStatusVerifying)

		// Assert
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, now, txn.UpdatedAt)
	})

	t.Run("Success - Complete Transaction Already Terminal", func(t *testing.T) {
		// Arrange
		txn := &models.PaymentTransaction{ID: uuid.New(), Status: models.TransactionStatusFailed}

		mock.ExpectQuery(regexp.QuoteMeta(`SET status = $1, reference_id = $2`)).
			WillReturnError(sql.ErrNoRows)

		// Act
		ok, err := repo.CompleteTransaction(ctx, txn, models.TransactionStatusVerifying)

		// Assert
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Success - Has In Flight For Cart", func(t *testing.T) {
		// Arrange
		cartID := uuid.New()
		since := now.Add(-30 * time.Minute)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS`)).
			WithArgs(cartID, since).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		// Act
		inFlight, err := repo.HasInFlightForCart(ctx, cartID, since)

		// Assert
		require.NoError(t, err)
		assert.True(t, inFlight)
	})

	t.Run("Success - List Failed Transactions", func(t *testing.T) {
		// Arrange
		statuses := []models.TransactionStatus{models.TransactionStatusFailed}
		filter := pq.Array([]string{"failed"})

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM payment_transactions WHERE status = ANY($1)`)).
			WithArgs(filter).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY updated_at DESC`)).
			WithArgs(filter, 20, 0).
			WillReturnRows(sqlmock.NewRows(transactionRowColumns).AddRow(
				uuid.NewString(), uuid.NewString(), uuid.NewString(), nil, "stripe", "cs_test_1", "12.50", "",
				nil, "failed", "", "amount mismatch", now, now))

		// Act
		transactions, total, err := repo.ListTransactions(ctx, statuses, 1, 20)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, transactions, 1)
		assert.Nil(t, transactions[0].OrderID)
		assert.Nil(t, transactions[0].Breakdown)
		assert.Equal(t, "amount mismatch", transactions[0].FailureReason)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
