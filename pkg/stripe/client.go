package stripe

import (
	"context"
	"net/http"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
)

type CheckoutSession = stripe.CheckoutSession

type CheckoutSessionRequest struct {
	AmountMinor       int64
	Currency          string
	ProductName       string
	SuccessURL        string
	CancelURL         string
	CustomerEmail     string
	ClientReferenceID string
	Metadata          map[string]string
}

// Client talks to Stripe Checkout. The secret key is passed per call because
// merchant credentials come from the store settings, not the process config.
type Client interface {
	CreateCheckoutSession(ctx context.Context, secretKey string, req *CheckoutSessionRequest) (*CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, secretKey string, sessionID string) (*CheckoutSession, error)
}

type stripeClient struct {
	backends *stripe.Backends
}

type Option func(*stripe.BackendConfig)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *stripe.BackendConfig) {
		c.HTTPClient = httpClient
	}
}

// WithBaseURL points the API backend at another host, e.g. stripe-mock.
func WithBaseURL(url string) Option {
	return func(c *stripe.BackendConfig) {
		c.URL = stripe.String(url)
	}
}

func NewStripeClient(opts ...Option) Client {
	cfg := &stripe.BackendConfig{
		// retries belong to the caller; a verify must not be replayed behind its back
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelError},
	}

	for _, opt := range opts {
		opt(cfg)
	}

	api := stripe.GetBackendWithConfig(stripe.APIBackend, cfg)

	return &stripeClient{backends: &stripe.Backends{API: api, Connect: api, Uploads: api}}
}

func (s *stripeClient) api(secretKey string) *client.API {
	return client.New(secretKey, s.backends)
}

// CreateCheckoutSession implements Client.
func (s *stripeClient) CreateCheckoutSession(ctx context.Context, secretKey string, req *CheckoutSessionRequest) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Params:     stripe.Params{Context: ctx},
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(req.Currency),
					UnitAmount: stripe.Int64(req.AmountMinor),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.ProductName),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}

	if req.ClientReferenceID != "" {
		params.ClientReferenceID = stripe.String(req.ClientReferenceID)
	}

	if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}

	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	session, err := s.api(secretKey).CheckoutSessions.New(params)
	if err != nil {
		return nil, err
	}

	return session, nil
}

// GetCheckoutSession implements Client.
func (s *stripeClient) GetCheckoutSession(ctx context.Context, secretKey string, sessionID string) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{Params: stripe.Params{Context: ctx}}

	session, err := s.api(secretKey).CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return nil, err
	}

	return session, nil
}
