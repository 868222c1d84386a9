package health_test

import (
	"errors"
	"testing"

	appErrors "github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/gateway"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/health"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/services/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGatewayCheck(t *testing.T) {
	t.Run("Success - Active Gateway Resolves", func(t *testing.T) {
		// Arrange
		settings := mocks.NewSettingsService(t)
		router := mocks.NewPaymentRouter(t)
		snapshot := models.DefaultSettings()

		settings.On("Current", mock.Anything).Return(snapshot, nil).Once()
		router.On("Resolve", snapshot, gateway.Name("")).Return(&gateway.Selection{Name: snapshot.ActiveGateway}, nil).Once()

		// Act
		err := health.GatewayCheck(settings, router)(t.Context())

		// Assert
		assert.NoError(t, err)
	})

	t.Run("Failure - Missing Credentials", func(t *testing.T) {
		settings := mocks.NewSettingsService(t)
		router := mocks.NewPaymentRouter(t)
		snapshot := models.DefaultSettings()

		settings.On("Current", mock.Anything).Return(snapshot, nil).Once()
		router.On("Resolve", snapshot, gateway.Name("")).Return(nil, appErrors.GatewayConfigError("missing merchant_id")).Once()

		err := health.GatewayCheck(settings, router)(t.Context())

		assert.ErrorContains(t, err, "unusable")
	})

	t.Run("Failure - Settings Unavailable", func(t *testing.T) {
		settings := mocks.NewSettingsService(t)
		settings.On("Current", mock.Anything).Return(nil, errors.New("connection refused")).Once()

		err := health.GatewayCheck(settings, mocks.NewPaymentRouter(t))(t.Context())

		assert.ErrorContains(t, err, "connection refused")
	})

	t.Run("Failure - Not Wired", func(t *testing.T) {
		assert.Error(t, health.GatewayCheck(nil, nil)(t.Context()))
	})
}
