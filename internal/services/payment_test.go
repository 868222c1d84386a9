package service_test

import (
	"database/sql"
	"errors"
	"net/url"
	"testing"

	appErrors "github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	repoMocks "github.com/aaravmahajanofficial/storefront-checkout/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/storefront-checkout/internal/services"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/services/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupPaymentTest(t *testing.T) (service.PaymentService, *repoMocks.MockTransactionRepository, *mocks.PaymentVerifier) {
	mockRepo := repoMocks.NewMockTransactionRepository(t)
	mockVerifier := mocks.NewPaymentVerifier(t)

	return service.NewPaymentService(mockRepo, mockVerifier), mockRepo, mockVerifier
}

func requireAppCode(t *testing.T, err error, code string) {
	t.Helper()

	appErr, ok := appErrors.IsAppError(err)
	require.True(t, ok, "expected AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)
}

func TestGetTransaction(t *testing.T) {
	ownerID := uuid.New()
	txn := &models.PaymentTransaction{ID: uuid.New(), OwnerID: ownerID, Handle: "A0001", Status: models.TransactionStatusVerified}

	t.Run("Success - Owner Sees Own Payment", func(t *testing.T) {
		// Arrange
		svc, mockRepo, _ := setupPaymentTest(t)
		mockRepo.On("GetTransactionByHandle", mock.Anything, "A0001").Return(txn, nil).Once()

		// Act
		got, err := svc.GetTransaction(t.Context(), ownerID, false, "A0001")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, txn, got)
	})

	t.Run("Success - Admin Sees Any Payment", func(t *testing.T) {
		svc, mockRepo, _ := setupPaymentTest(t)
		mockRepo.On("GetTransactionByHandle", mock.Anything, "A0001").Return(txn, nil).Once()

		got, err := svc.GetTransaction(t.Context(), uuid.New(), true, "A0001")

		require.NoError(t, err)
		assert.Equal(t, txn.ID, got.ID)
	})

	t.Run("Failure - Other Customer Gets Not Found", func(t *testing.T) {
		svc, mockRepo, _ := setupPaymentTest(t)
		mockRepo.On("GetTransactionByHandle", mock.Anything, "A0001").Return(txn, nil).Once()

		_, err := svc.GetTransaction(t.Context(), uuid.New(), false, "A0001")

		requireAppCode(t, err, appErrors.ErrCodeNotFound)
	})

	t.Run("Failure - Unknown Handle", func(t *testing.T) {
		svc, mockRepo, _ := setupPaymentTest(t)
		mockRepo.On("GetTransactionByHandle", mock.Anything, "nope").Return(nil, sql.ErrNoRows).Once()

		_, err := svc.GetTransaction(t.Context(), ownerID, false, "nope")

		requireAppCode(t, err, appErrors.ErrCodeNotFound)
	})
}

func TestListTransactions(t *testing.T) {
	t.Run("Success - Defaults Applied", func(t *testing.T) {
		// Arrange
		svc, mockRepo, _ := setupPaymentTest(t)
		statuses := []models.TransactionStatus{models.TransactionStatusVerifying}
		mockRepo.On("ListTransactions", mock.Anything, statuses, 1, 20).
			Return([]*models.PaymentTransaction{{ID: uuid.New()}}, 1, nil).Once()

		// Act
		txns, total, err := svc.ListTransactions(t.Context(), statuses, 0, 500)

		// Assert
		require.NoError(t, err)
		assert.Len(t, txns, 1)
		assert.Equal(t, 1, total)
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		svc, mockRepo, _ := setupPaymentTest(t)
		mockRepo.On("ListTransactions", mock.Anything, mock.Anything, 2, 10).Return(nil, 0, errors.New("timeout")).Once()

		_, _, err := svc.ListTransactions(t.Context(), nil, 2, 10)

		requireAppCode(t, err, appErrors.ErrCodeDatabaseError)
	})
}

func TestHandleCallback(t *testing.T) {
	t.Run("Success - Zarinpal Authority Verified", func(t *testing.T) {
		// Arrange
		svc, mockRepo, mockVerifier := setupPaymentTest(t)
		txn := &models.PaymentTransaction{ID: uuid.New(), Handle: "A0000000000000000000000000000217885159", Gateway: models.GatewayZarinpal}
		mockRepo.On("GetTransactionByHandle", mock.Anything, "A0000000000000000000000000000217885159").Return(txn, nil).Once()
		result := &models.VerificationResult{Handle: "A0000000000000000000000000000217885159", Status: models.TransactionStatusVerified}
		mockVerifier.On("Verify", mock.Anything, "A0000000000000000000000000000217885159").Return(result, nil).Once()

		values := url.Values{"Authority": {"A0000000000000000000000000000217885159"}, "Status": {"OK"}}

		// Act
		got, err := svc.HandleCallback(t.Context(), models.GatewayZarinpal, values)

		// Assert
		require.NoError(t, err)
		assert.True(t, got.Succeeded())
	})

	t.Run("Success - Declined Hint Still Verified", func(t *testing.T) {
		svc, mockRepo, mockVerifier := setupPaymentTest(t)
		txn := &models.PaymentTransaction{ID: uuid.New(), Handle: "A0002", Gateway: models.GatewayZarinpal}
		mockRepo.On("GetTransactionByHandle", mock.Anything, "A0002").Return(txn, nil).Once()
		result := &models.VerificationResult{Handle: "A0002", Status: models.TransactionStatusFailed}
		mockVerifier.On("Verify", mock.Anything, "A0002").Return(result, nil).Once()

		got, err := svc.HandleCallback(t.Context(), models.GatewayZarinpal, url.Values{"Authority": {"A0002"}, "Status": {"NOK"}})

		require.NoError(t, err)
		assert.Equal(t, models.TransactionStatusFailed, got.Status)
	})

	t.Run("Failure - Unknown Gateway", func(t *testing.T) {
		svc, _, _ := setupPaymentTest(t)

		_, err := svc.HandleCallback(t.Context(), models.GatewayName("paypal"), url.Values{})

		requireAppCode(t, err, appErrors.ErrCodeNotFound)
	})

	t.Run("Failure - Missing Handle", func(t *testing.T) {
		svc, _, _ := setupPaymentTest(t)

		_, err := svc.HandleCallback(t.Context(), models.GatewayZarinpal, url.Values{"Status": {"OK"}})

		requireAppCode(t, err, appErrors.ErrCodeBadRequest)
	})

	t.Run("Failure - Handle Issued By Another Gateway", func(t *testing.T) {
		// Arrange
		svc, mockRepo, mockVerifier := setupPaymentTest(t)
		txn := &models.PaymentTransaction{ID: uuid.New(), Handle: "A0003", Gateway: models.GatewaySadad}
		mockRepo.On("GetTransactionByHandle", mock.Anything, "A0003").Return(txn, nil).Once()

		// Act
		_, err := svc.HandleCallback(t.Context(), models.GatewayZarinpal, url.Values{"Authority": {"A0003"}, "Status": {"OK"}})

		// Assert
		requireAppCode(t, err, appErrors.ErrCodeNotFound)
		mockVerifier.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Unknown Handle", func(t *testing.T) {
		svc, mockRepo, _ := setupPaymentTest(t)
		mockRepo.On("GetTransactionByHandle", mock.Anything, "A0404").Return(nil, sql.ErrNoRows).Once()

		_, err := svc.HandleCallback(t.Context(), models.GatewayZarinpal, url.Values{"Authority": {"A0404"}, "Status": {"OK"}})

		requireAppCode(t, err, appErrors.ErrCodeNotFound)
	})
}
