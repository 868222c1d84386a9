// Package gateway routes checkout payments to a closed set of providers.
package gateway

import (
	"context"
	"fmt"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/shopspring/decimal"
)

type Name = models.GatewayName

const (
	Zarinpal = models.GatewayZarinpal
	Sadad    = models.GatewaySadad
	Stripe   = models.GatewayStripe
)

// Names lists the supported gateways in registry order.
func Names() []Name {
	return models.Gateways()
}

type Credentials map[string]string

type RequestParams struct {
	Amount      decimal.Decimal
	CallbackURL string
	// FailureURL is where a provider-hosted page sends an abandoning payer.
	FailureURL  string
	Description string
	PayerEmail  string
	PayerMobile string
	OrderRef    string
	Credentials Credentials
	Sandbox     bool
}

type RequestResult struct {
	RedirectURL string
	Handle      string
}

type VerifyParams struct {
	Amount      decimal.Decimal
	Handle      string
	Credentials Credentials
	Sandbox     bool
}

type VerifyResult struct {
	Success     bool
	ReferenceID string
	// ReportedAmount is set when the provider echoes the paid amount. It is in
	// the provider's own unit and precision.
	ReportedAmount *decimal.Decimal
	// Mismatch flags an amount or state disagreement. Strategies compare the
	// reported amount with what they charged, in their own unit.
	Mismatch bool
	Reason   string
}

// Strategy is the whole capability set of a payment provider.
type Strategy interface {
	RequestPayment(ctx context.Context, params RequestParams) (*RequestResult, error)
	VerifyPayment(ctx context.Context, params VerifyParams) (*VerifyResult, error)
}

// RejectedError is a well-formed refusal from a provider. Anything else a
// strategy returns is treated as a communication failure.
type RejectedError struct {
	Gateway Name
	Code    string
	Message string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%s rejected request: code %s: %s", e.Gateway, e.Code, e.Message)
}

func requiredCredentials(name Name) []string {
	switch name {
	case Zarinpal:
		return []string{"merchant_id"}
	case Sadad:
		return []string{"merchant_id", "terminal_id", "terminal_key"}
	case Stripe:
		return []string{"secret_key"}
	}

	return nil
}
