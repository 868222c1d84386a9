package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	stripeClient "github.com/aaravmahajanofficial/storefront-checkout/pkg/stripe"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v81"
)

const stripeDefaultCurrency = "usd"

type stripeCheckout struct {
	client stripeClient.Client
}

func newStripe(client stripeClient.Client) *stripeCheckout {
	return &stripeCheckout{client: client}
}

func currencyOf(creds Credentials) string {
	if c := strings.ToLower(strings.TrimSpace(creds["currency"])); c != "" {
		return c
	}

	return stripeDefaultCurrency
}

// minorUnits converts a two-decimal amount to cents.
func minorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}

// RequestPayment implements Strategy.
func (s *stripeCheckout) RequestPayment(ctx context.Context, params RequestParams) (*RequestResult, error) {
	successURL := params.CallbackURL
	if strings.Contains(successURL, "?") {
		successURL += "&session_id={CHECKOUT_SESSION_ID}"
	} else {
		successURL += "?session_id={CHECKOUT_SESSION_ID}"
	}

	cancelURL := params.FailureURL
	if cancelURL == "" {
		cancelURL = params.CallbackURL
	}

	session, err := s.client.CreateCheckoutSession(ctx, params.Credentials["secret_key"], &stripeClient.CheckoutSessionRequest{
		AmountMinor:       minorUnits(params.Amount),
		Currency:          currencyOf(params.Credentials),
		ProductName:       params.Description,
		SuccessURL:        successURL,
		CancelURL:         cancelURL,
		CustomerEmail:     params.PayerEmail,
		ClientReferenceID: params.OrderRef,
		Metadata:          map[string]string{"transaction_id": params.OrderRef},
	})
	if err != nil {
		return nil, classifyStripeError(err)
	}

	return &RequestResult{Handle: session.ID, RedirectURL: session.URL}, nil
}

// VerifyPayment implements Strategy.
func (s *stripeCheckout) VerifyPayment(ctx context.Context, params VerifyParams) (*VerifyResult, error) {
	session, err := s.client.GetCheckoutSession(ctx, params.Credentials["secret_key"], params.Handle)
	if err != nil {
		err = classifyStripeError(err)

		var rejected *RejectedError
		if errors.As(err, &rejected) {
			return &VerifyResult{Reason: "stripe: " + rejected.Code}, nil
		}

		return nil, err
	}

	reported := decimal.New(session.AmountTotal, -2)
	result := &VerifyResult{ReportedAmount: &reported}

	if session.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		result.Reason = fmt.Sprintf("stripe payment_status %s", session.PaymentStatus)

		return result, nil
	}

	if session.AmountTotal != minorUnits(params.Amount) {
		result.Mismatch = true
		result.Reason = "stripe amount_total differs from transaction amount"

		return result, nil
	}

	result.Success = true
	result.ReferenceID = session.ID

	if session.PaymentIntent != nil && session.PaymentIntent.ID != "" {
		result.ReferenceID = session.PaymentIntent.ID
	}

	return result, nil
}

// classifyStripeError separates API refusals from transport trouble.
// Rate limiting and 5xx replies count as transport trouble.
func classifyStripeError(err error) error {
	var stripeErr *stripe.Error
	if !errors.As(err, &stripeErr) {
		return err
	}

	if stripeErr.HTTPStatusCode >= http.StatusInternalServerError || stripeErr.HTTPStatusCode == http.StatusTooManyRequests {
		return err
	}

	code := string(stripeErr.Code)
	if code == "" {
		code = string(stripeErr.Type)
	}

	return &RejectedError{Gateway: Stripe, Code: code, Message: stripeErr.Msg}
}
