package gateway

import (
	"fmt"
	"net/url"
	"strings"
)

// CallbackHint is what the provider says about the outcome on the return
// redirect. It is advisory only: the verify call decides.
type CallbackHint struct {
	Handle string
	// Declined is true when the provider already signalled a failed payment.
	Declined bool
}

// ParseCallback extracts the handle from a provider's return request.
func ParseCallback(name Name, values url.Values) (*CallbackHint, error) {
	var hint CallbackHint

	switch name {
	case Zarinpal:
		hint.Handle = values.Get("Authority")
		hint.Declined = !strings.EqualFold(values.Get("Status"), "OK")
	case Sadad:
		hint.Handle = values.Get("token")
		if hint.Handle == "" {
			hint.Handle = values.Get("Token")
		}
		code := values.Get("ResCode")
		hint.Declined = code != "" && code != "0"
	case Stripe:
		hint.Handle = values.Get("session_id")
	default:
		return nil, fmt.Errorf("unknown gateway %q", name)
	}

	hint.Handle = strings.TrimSpace(hint.Handle)
	if hint.Handle == "" {
		return nil, fmt.Errorf("%s callback carries no payment handle", name)
	}

	return &hint, nil
}
