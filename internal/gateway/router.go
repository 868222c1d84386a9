package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/api/middleware"
	appErrors "github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/metrics"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	stripeClient "github.com/aaravmahajanofficial/storefront-checkout/pkg/stripe"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const DefaultTimeout = 15 * time.Second

// Endpoint overrides a provider's production and sandbox hosts.
type Endpoint struct {
	BaseURL    string
	SandboxURL string
}

type Options struct {
	HTTPClient *http.Client
	Stripe     stripeClient.Client
	Timeout    time.Duration
	Endpoints  map[Name]Endpoint
}

type Router struct {
	strategies map[Name]Strategy
	timeout    time.Duration
}

// Selection is a resolved gateway with the credentials it will be called with.
type Selection struct {
	Name        Name
	Strategy    Strategy
	Credentials Credentials
	Sandbox     bool
}

func NewRouter(opts Options) *Router {
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}

	if opts.Stripe == nil {
		opts.Stripe = stripeClient.NewStripeClient(stripeClient.WithHTTPClient(opts.HTTPClient))
	}

	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	r := &Router{strategies: make(map[Name]Strategy, len(Names())), timeout: opts.Timeout}

	for _, name := range Names() {
		r.strategies[name] = build(name, opts)
	}

	return r
}

// build must handle every name returned by Names.
func build(name Name, opts Options) Strategy {
	endpoint := func(base, sandbox string) (string, string) {
		if e, ok := opts.Endpoints[name]; ok {
			return e.BaseURL, e.SandboxURL
		}

		return base, sandbox
	}

	switch name {
	case Zarinpal:
		base, sandbox := endpoint(zarinpalBaseURL, zarinpalSandboxURL)
		return newZarinpal(opts.HTTPClient, base, sandbox)
	case Sadad:
		base, sandbox := endpoint(sadadBaseURL, sadadSandboxURL)
		return newSadad(opts.HTTPClient, base, sandbox)
	case Stripe:
		return newStripe(opts.Stripe)
	}

	panic(fmt.Sprintf("gateway: no strategy for %q", name))
}

// Resolve picks the explicit gateway if given, else the store default, and
// checks it is known, enabled and fully configured. No network call is made.
func (r *Router) Resolve(settings *models.SettingsSnapshot, explicit Name) (*Selection, error) {
	name := explicit
	if name == "" {
		name = settings.ActiveGateway
	}

	sel, err := r.selection(settings, name)
	if err != nil {
		return nil, err
	}

	if gs, _ := settings.Gateway(name); !gs.IsActive {
		return nil, appErrors.GatewayConfigError(fmt.Sprintf("%s: gateway is disabled", name))
	}

	return sel, nil
}

// ForRecorded resolves the gateway a transaction was opened with. Disabling a
// gateway must not strand payments already in flight, so IsActive is not checked.
func (r *Router) ForRecorded(settings *models.SettingsSnapshot, name Name) (*Selection, error) {
	return r.selection(settings, name)
}

func (r *Router) selection(settings *models.SettingsSnapshot, name Name) (*Selection, error) {
	if name == "" {
		return nil, appErrors.GatewayConfigError("no gateway selected and no default configured")
	}

	strategy, ok := r.strategies[name]
	if !ok {
		return nil, appErrors.GatewayConfigError(fmt.Sprintf("%s: unknown gateway", name))
	}

	gs, ok := settings.Gateway(name)
	if !ok {
		return nil, appErrors.GatewayConfigError(fmt.Sprintf("%s: gateway is not configured", name))
	}

	for _, key := range requiredCredentials(name) {
		if strings.TrimSpace(gs.Credentials[key]) == "" {
			return nil, appErrors.GatewayConfigError(fmt.Sprintf("%s: missing credential %s", name, key))
		}
	}

	creds := make(Credentials, len(gs.Credentials))
	for k, v := range gs.Credentials {
		creds[k] = v
	}

	return &Selection{Name: name, Strategy: strategy, Credentials: creds, Sandbox: gs.IsSandbox}, nil
}

func (r *Router) RequestPayment(ctx context.Context, sel *Selection, params RequestParams) (*RequestResult, error) {
	params.Credentials = sel.Credentials
	params.Sandbox = sel.Sandbox

	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	result, err := sel.Strategy.RequestPayment(callCtx, params)

	if err != nil {
		err = r.classify(ctx, sel.Name, "request", err)
		metrics.ObserveGatewayCall(string(sel.Name), "request", outcomeOf(err), time.Since(start))

		return nil, err
	}

	metrics.ObserveGatewayCall(string(sel.Name), "request", "ok", time.Since(start))

	return result, nil
}

func (r *Router) VerifyPayment(ctx context.Context, sel *Selection, params VerifyParams) (*VerifyResult, error) {
	params.Credentials = sel.Credentials
	params.Sandbox = sel.Sandbox

	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	result, err := sel.Strategy.VerifyPayment(callCtx, params)

	if err != nil {
		err = r.classify(ctx, sel.Name, "verify", err)
		metrics.ObserveGatewayCall(string(sel.Name), "verify", outcomeOf(err), time.Since(start))

		return nil, err
	}

	outcome := "ok"
	if !result.Success {
		outcome = "declined"
	}

	metrics.ObserveGatewayCall(string(sel.Name), "verify", outcome, time.Since(start))

	return result, nil
}

// classify maps strategy errors onto the user-facing taxonomy. Provider
// payloads stay in the wrapped error and the log, never in the message.
func (r *Router) classify(ctx context.Context, name Name, op string, err error) error {
	logger := middleware.LoggerFromContext(ctx)

	if appErr, ok := appErrors.IsAppError(err); ok {
		return appErr
	}

	var rejected *RejectedError
	if errors.As(err, &rejected) {
		logger.Warn("Gateway rejected call",
			slog.String("gateway", string(name)),
			slog.String("operation", op),
			slog.String("code", rejected.Code),
			slog.String("error", err.Error()))

		return appErrors.GatewayConfigError(rejected.Error()).WithError(err)
	}

	logger.Error("Gateway communication failed",
		slog.String("gateway", string(name)),
		slog.String("operation", op),
		slog.Bool("timeout", errors.Is(err, context.DeadlineExceeded)),
		slog.String("error", err.Error()))

	return appErrors.GatewayCommunicationError(string(name)).WithError(err)
}

func outcomeOf(err error) string {
	if appErr, ok := appErrors.IsAppError(err); ok && appErr.Code == appErrors.ErrCodeGatewayCommunication {
		return "unreachable"
	}

	return "rejected"
}
