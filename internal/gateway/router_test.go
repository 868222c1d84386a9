package gateway_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	appErrors "github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/gateway"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func configuredSettings() *models.SettingsSnapshot {
	settings := models.DefaultSettings()
	settings.ActiveGateway = gateway.Zarinpal
	settings.Gateways = map[models.GatewayName]models.GatewaySettings{
		gateway.Zarinpal: {IsActive: true, Credentials: map[string]string{"merchant_id": "zp-merchant"}},
		gateway.Sadad: {IsActive: true, Credentials: map[string]string{
			"merchant_id": "m", "terminal_id": "t", "terminal_key": "",
		}},
		gateway.Stripe: {IsActive: false, Credentials: map[string]string{"secret_key": "sk_test_1"}},
	}

	return settings
}

func assertConfigError(t *testing.T, err error, detail string) {
	t.Helper()

	appErr, ok := appErrors.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, appErrors.ErrCodeGatewayConfig, appErr.Code)
	assert.Equal(t, "Selected payment method is currently unavailable", appErr.Message)
	assert.Contains(t, appErr.Detail, detail)
}

func TestRouterResolve(t *testing.T) {
	router := gateway.NewRouter(gateway.Options{})

	t.Run("Success - Store Default", func(t *testing.T) {
		sel, err := router.Resolve(configuredSettings(), "")

		require.NoError(t, err)
		assert.Equal(t, gateway.Zarinpal, sel.Name)
		assert.Equal(t, "zp-merchant", sel.Credentials["merchant_id"])
	})

	t.Run("Success - Every Gateway Has A Strategy", func(t *testing.T) {
		settings := configuredSettings()
		settings.Gateways[gateway.Sadad].Credentials["terminal_key"] = "a2V5"
		stripeSettings := settings.Gateways[gateway.Stripe]
		stripeSettings.IsActive = true
		settings.Gateways[gateway.Stripe] = stripeSettings

		for _, name := range gateway.Names() {
			sel, err := router.Resolve(settings, name)

			require.NoError(t, err, name)
			assert.NotNil(t, sel.Strategy, name)
		}
	})

	t.Run("Failure - Unknown Gateway", func(t *testing.T) {
		_, err := router.Resolve(configuredSettings(), "paypal")

		assertConfigError(t, err, "unknown gateway")
	})

	t.Run("Failure - Disabled Gateway", func(t *testing.T) {
		_, err := router.Resolve(configuredSettings(), gateway.Stripe)

		assertConfigError(t, err, "disabled")
	})

	t.Run("Failure - Missing Credential", func(t *testing.T) {
		_, err := router.Resolve(configuredSettings(), gateway.Sadad)

		assertConfigError(t, err, "terminal_key")
	})

	t.Run("Failure - No Default", func(t *testing.T) {
		settings := configuredSettings()
		settings.ActiveGateway = ""

		_, err := router.Resolve(settings, "")

		assertConfigError(t, err, "no gateway selected")
	})
}

func TestRouterForRecorded(t *testing.T) {
	router := gateway.NewRouter(gateway.Options{})

	t.Run("Success - Disabled Gateway Still Verifiable", func(t *testing.T) {
		sel, err := router.ForRecorded(configuredSettings(), gateway.Stripe)

		require.NoError(t, err)
		assert.Equal(t, gateway.Stripe, sel.Name)
	})

	t.Run("Failure - Credentials Removed", func(t *testing.T) {
		settings := configuredSettings()
		delete(settings.Gateways, gateway.Zarinpal)

		_, err := router.ForRecorded(settings, gateway.Zarinpal)

		assertConfigError(t, err, "not configured")
	})
}

func TestRouterTimeoutIsRetryable(t *testing.T) {
	// Arrange
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	router := gateway.NewRouter(gateway.Options{
		HTTPClient: server.Client(),
		Timeout:    50 * time.Millisecond,
		Endpoints:  map[gateway.Name]gateway.Endpoint{gateway.Zarinpal: {BaseURL: server.URL, SandboxURL: server.URL}},
	})

	sel, err := router.Resolve(configuredSettings(), "")
	require.NoError(t, err)

	// Act
	result, err := router.VerifyPayment(context.Background(), sel, gateway.VerifyParams{Amount: decimal.NewFromInt(1000), Handle: "A1"})

	// Assert
	assert.Nil(t, result)
	require.Error(t, err)
	appErr, ok := appErrors.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, appErrors.ErrCodeGatewayCommunication, appErr.Code)
	assert.True(t, appErrors.IsRetryable(err))
	assert.NotContains(t, appErr.Message, "zp-merchant")
}

func TestRouterRejectionIsConfigError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"data":[],"errors":{"code":-10,"message":"Terminal is not valid","validations":[]}}`))
	}))
	defer server.Close()

	router := gateway.NewRouter(gateway.Options{
		HTTPClient: server.Client(),
		Endpoints:  map[gateway.Name]gateway.Endpoint{gateway.Zarinpal: {BaseURL: server.URL, SandboxURL: server.URL}},
	})

	sel, err := router.Resolve(configuredSettings(), "")
	require.NoError(t, err)

	_, err = router.RequestPayment(context.Background(), sel, gateway.RequestParams{
		Amount:      decimal.NewFromInt(10000),
		CallbackURL: "https://shop.example.com/cb",
		OrderRef:    "ref",
	})

	assertConfigError(t, err, "-10")
	assert.False(t, appErrors.IsRetryable(err))
}
