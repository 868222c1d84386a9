package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	zarinpalBaseURL    = "https://payment.zarinpal.com"
	zarinpalSandboxURL = "https://sandbox.zarinpal.com"

	zarinpalCodeSuccess         = 100
	zarinpalCodeAlreadyVerified = 101
	zarinpalCodeAmountMismatch  = -50
)

type zarinpal struct {
	client     *http.Client
	baseURL    string
	sandboxURL string
}

func newZarinpal(client *http.Client, baseURL, sandboxURL string) *zarinpal {
	return &zarinpal{client: client, baseURL: baseURL, sandboxURL: sandboxURL}
}

func (z *zarinpal) host(sandbox bool) string {
	if sandbox {
		return z.sandboxURL
	}

	return z.baseURL
}

type zarinpalRequestBody struct {
	MerchantID  string            `json:"merchant_id"`
	Amount      int64             `json:"amount"`
	CallbackURL string            `json:"callback_url"`
	Description string            `json:"description"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type zarinpalVerifyBody struct {
	MerchantID string `json:"merchant_id"`
	Amount     int64  `json:"amount"`
	Authority  string `json:"authority"`
}

// The API returns `data` as an object on success and as an empty array on
// failure; `errors` is the mirror image, so both are decoded lazily.
type zarinpalEnvelope struct {
	Data   json.RawMessage `json:"data"`
	Errors json.RawMessage `json:"errors"`
}

type zarinpalData struct {
	Code      int         `json:"code"`
	Message   string      `json:"message"`
	Authority string      `json:"authority"`
	RefID     json.Number `json:"ref_id"`
	CardPan   string      `json:"card_pan"`
}

type zarinpalError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e zarinpalEnvelope) decode() (*zarinpalData, *zarinpalError) {
	var data zarinpalData
	if len(e.Data) > 0 && e.Data[0] == '{' {
		if err := json.Unmarshal(e.Data, &data); err == nil && data.Code != 0 {
			return &data, nil
		}
	}

	var zErr zarinpalError
	if len(e.Errors) > 0 && e.Errors[0] == '{' {
		if err := json.Unmarshal(e.Errors, &zErr); err == nil && zErr.Code != 0 {
			return nil, &zErr
		}
	}

	return nil, &zarinpalError{Code: 0, Message: "empty response"}
}

// RequestPayment implements Strategy.
func (z *zarinpal) RequestPayment(ctx context.Context, params RequestParams) (*RequestResult, error) {
	body := zarinpalRequestBody{
		MerchantID:  params.Credentials["merchant_id"],
		Amount:      rialAmount(params.Amount),
		CallbackURL: params.CallbackURL,
		Description: params.Description,
		Metadata:    map[string]string{"order_id": params.OrderRef},
	}

	if params.PayerEmail != "" {
		body.Metadata["email"] = params.PayerEmail
	}

	if params.PayerMobile != "" {
		body.Metadata["mobile"] = params.PayerMobile
	}

	host := z.host(params.Sandbox)

	var envelope zarinpalEnvelope
	if err := postJSON(ctx, z.client, host+"/pg/v4/payment/request.json", body, &envelope); err != nil {
		return nil, err
	}

	data, zErr := envelope.decode()
	if zErr != nil {
		return nil, &RejectedError{Gateway: Zarinpal, Code: strconv.Itoa(zErr.Code), Message: zErr.Message}
	}

	if data.Code != zarinpalCodeSuccess || strings.TrimSpace(data.Authority) == "" {
		return nil, &RejectedError{Gateway: Zarinpal, Code: strconv.Itoa(data.Code), Message: data.Message}
	}

	return &RequestResult{
		Handle:      data.Authority,
		RedirectURL: host + "/pg/StartPay/" + data.Authority,
	}, nil
}

// VerifyPayment implements Strategy.
func (z *zarinpal) VerifyPayment(ctx context.Context, params VerifyParams) (*VerifyResult, error) {
	body := zarinpalVerifyBody{
		MerchantID: params.Credentials["merchant_id"],
		Amount:     rialAmount(params.Amount),
		Authority:  params.Handle,
	}

	var envelope zarinpalEnvelope
	if err := postJSON(ctx, z.client, z.host(params.Sandbox)+"/pg/v4/payment/verify.json", body, &envelope); err != nil {
		return nil, err
	}

	data, zErr := envelope.decode()
	if zErr != nil {
		return &VerifyResult{
			Mismatch: zErr.Code == zarinpalCodeAmountMismatch,
			Reason:   fmt.Sprintf("zarinpal code %d", zErr.Code),
		}, nil
	}

	switch data.Code {
	case zarinpalCodeSuccess, zarinpalCodeAlreadyVerified:
		return &VerifyResult{Success: true, ReferenceID: data.RefID.String()}, nil
	case zarinpalCodeAmountMismatch:
		return &VerifyResult{Mismatch: true, Reason: "zarinpal reported amount mismatch"}, nil
	}

	return &VerifyResult{Reason: fmt.Sprintf("zarinpal code %d", data.Code)}, nil
}

// rialAmount converts to the integer amount Iranian gateways expect.
func rialAmount(amount decimal.Decimal) int64 {
	return amount.Round(0).IntPart()
}
