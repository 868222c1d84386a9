package stripe_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	stripeClient "github.com/aaravmahajanofficial/storefront-checkout/pkg/stripe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCheckoutSession(t *testing.T) {
	t.Run("Success - Single Line Session", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
			assert.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "payment", r.Form.Get("mode"))
			assert.Equal(t, "1999", r.Form.Get("line_items[0][price_data][unit_amount]"))
			assert.Equal(t, "eur", r.Form.Get("line_items[0][price_data][currency]"))
			assert.Equal(t, "txn-1", r.Form.Get("metadata[transaction_id]"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"cs_test_1","object":"checkout.session","url":"https://checkout.stripe.com/c/pay/cs_test_1","amount_total":1999,"payment_status":"unpaid"}`))
		}))
		defer server.Close()

		client := stripeClient.NewStripeClient(stripeClient.WithBaseURL(server.URL), stripeClient.WithHTTPClient(server.Client()))

		// Act
		session, err := client.CreateCheckoutSession(t.Context(), "sk_test_123", &stripeClient.CheckoutSessionRequest{
			AmountMinor: 1999,
			Currency:    "eur",
			ProductName: "Order",
			SuccessURL:  "https://shop.example.com/cb?session_id={CHECKOUT_SESSION_ID}",
			CancelURL:   "https://shop.example.com/failure",
			Metadata:    map[string]string{"transaction_id": "txn-1"},
		})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "cs_test_1", session.ID)
		assert.Equal(t, int64(1999), session.AmountTotal)
		assert.Contains(t, session.URL, "cs_test_1")
	})

	t.Run("Failure - Invalid Key", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"Invalid API Key provided"}}`))
		}))
		defer server.Close()

		client := stripeClient.NewStripeClient(stripeClient.WithBaseURL(server.URL))

		session, err := client.CreateCheckoutSession(t.Context(), "sk_bad", &stripeClient.CheckoutSessionRequest{AmountMinor: 100, Currency: "usd"})

		require.Error(t, err)
		assert.Nil(t, session)
	})
}

func TestGetCheckoutSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/checkout/sessions/cs_test_1", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cs_test_1","object":"checkout.session","amount_total":1999,"payment_status":"paid","payment_intent":"pi_123"}`))
	}))
	defer server.Close()

	client := stripeClient.NewStripeClient(stripeClient.WithBaseURL(server.URL))

	session, err := client.GetCheckoutSession(t.Context(), "sk_test_123", "cs_test_1")

	require.NoError(t, err)
	assert.Equal(t, "paid", string(session.PaymentStatus))
	require.NotNil(t, session.PaymentIntent)
	assert.Equal(t, "pi_123", session.PaymentIntent.ID)
}

func TestGetCheckoutSessionNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"type":"invalid_request_error","code":"resource_missing","message":"No such checkout.session"}}`))
	}))
	defer server.Close()

	client := stripeClient.NewStripeClient(stripeClient.WithBaseURL(server.URL))

	session, err := client.GetCheckoutSession(t.Context(), "sk_test_123", "cs_missing")

	require.Error(t, err)
	assert.Nil(t, session)
}
