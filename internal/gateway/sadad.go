package gateway

import (
	"bytes"
	"context"
	"crypto/cipher"
	"crypto/des"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	sadadBaseURL    = "https://sadad.shaparak.ir"
	sadadSandboxURL = "https://sandbox.banktest.ir/melli/sadad.shaparak.ir"
)

type sadad struct {
	client     *http.Client
	baseURL    string
	sandboxURL string
	now        func() time.Time
}

func newSadad(client *http.Client, baseURL, sandboxURL string) *sadad {
	return &sadad{client: client, baseURL: baseURL, sandboxURL: sandboxURL, now: time.Now}
}

func (s *sadad) host(sandbox bool) string {
	if sandbox {
		return s.sandboxURL
	}

	return s.baseURL
}

// sadadCode accepts ResCode both as a number and as a quoted string.
type sadadCode string

func (c *sadadCode) UnmarshalJSON(b []byte) error {
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*c = sadadCode(n.String())

		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	*c = sadadCode(strings.TrimSpace(s))

	return nil
}

func (c sadadCode) ok() bool {
	return c == "0"
}

type sadadRequestBody struct {
	MerchantID     string `json:"MerchantId"`
	TerminalID     string `json:"TerminalId"`
	Amount         int64  `json:"Amount"`
	OrderID        int64  `json:"OrderId"`
	LocalDateTime  string `json:"LocalDateTime"`
	ReturnURL      string `json:"ReturnUrl"`
	SignData       string `json:"SignData"`
	UserID         string `json:"UserId,omitempty"`
	AdditionalData string `json:"AdditionalData,omitempty"`
}

type sadadRequestReply struct {
	ResCode     sadadCode `json:"ResCode"`
	Token       string    `json:"Token"`
	Description string    `json:"Description"`
}

type sadadVerifyBody struct {
	Token    string `json:"Token"`
	SignData string `json:"SignData"`
}

type sadadVerifyReply struct {
	ResCode       sadadCode       `json:"ResCode"`
	Amount        decimal.Decimal `json:"Amount"`
	Description   string          `json:"Description"`
	RetrivalRefNo string          `json:"RetrivalRefNo"`
	SystemTraceNo string          `json:"SystemTraceNo"`
	OrderID       json.Number     `json:"OrderId"`
}

// RequestPayment implements Strategy.
func (s *sadad) RequestPayment(ctx context.Context, params RequestParams) (*RequestResult, error) {
	terminalID := params.Credentials["terminal_id"]
	amount := rialAmount(params.Amount)

	orderID, err := sadadOrderID(params.OrderRef)
	if err != nil {
		return nil, &RejectedError{Gateway: Sadad, Code: "order_ref", Message: err.Error()}
	}

	sign, err := sadadSign(params.Credentials["terminal_key"], fmt.Sprintf("%s;%d;%d", terminalID, orderID, amount))
	if err != nil {
		return nil, &RejectedError{Gateway: Sadad, Code: "sign", Message: err.Error()}
	}

	body := sadadRequestBody{
		MerchantID:     params.Credentials["merchant_id"],
		TerminalID:     terminalID,
		Amount:         amount,
		OrderID:        orderID,
		LocalDateTime:  s.now().Format("01/02/2006 15:04:05"),
		ReturnURL:      params.CallbackURL,
		SignData:       sign,
		UserID:         params.PayerMobile,
		AdditionalData: params.Description,
	}

	host := s.host(params.Sandbox)

	var reply sadadRequestReply
	if err := postJSON(ctx, s.client, host+"/vpg/api/v0/Request/PaymentRequest", body, &reply); err != nil {
		return nil, err
	}

	if !reply.ResCode.ok() || reply.Token == "" {
		return nil, &RejectedError{Gateway: Sadad, Code: string(reply.ResCode), Message: reply.Description}
	}

	return &RequestResult{
		Handle:      reply.Token,
		RedirectURL: host + "/VPG/Purchase?Token=" + url.QueryEscape(reply.Token),
	}, nil
}

// VerifyPayment implements Strategy.
func (s *sadad) VerifyPayment(ctx context.Context, params VerifyParams) (*VerifyResult, error) {
	sign, err := sadadSign(params.Credentials["terminal_key"], params.Handle)
	if err != nil {
		return nil, &RejectedError{Gateway: Sadad, Code: "sign", Message: err.Error()}
	}

	var reply sadadVerifyReply
	if err := postJSON(ctx, s.client, s.host(params.Sandbox)+"/vpg/api/v0/Advice/Verify", sadadVerifyBody{Token: params.Handle, SignData: sign}, &reply); err != nil {
		return nil, err
	}

	if !reply.ResCode.ok() {
		return &VerifyResult{Reason: fmt.Sprintf("sadad code %s: %s", reply.ResCode, reply.Description)}, nil
	}

	result := &VerifyResult{Success: true, ReferenceID: reply.RetrivalRefNo}
	if !reply.Amount.IsZero() {
		reported := reply.Amount
		result.ReportedAmount = &reported

		// compared in rials, the unit RequestPayment charged
		if charged := rialAmount(params.Amount); !reported.Equal(decimal.NewFromInt(charged)) {
			return &VerifyResult{
				ReportedAmount: &reported,
				Mismatch:       true,
				Reason:         fmt.Sprintf("sadad reported %s, charged %d", reported.String(), charged),
			}, nil
		}
	}

	if result.ReferenceID == "" {
		result.ReferenceID = reply.SystemTraceNo
	}

	return result, nil
}

// sadadOrderID derives the positive int64 order number the terminal requires
// from the transaction id.
func sadadOrderID(ref string) (int64, error) {
	id, err := uuid.Parse(ref)
	if err != nil {
		if n, convErr := strconv.ParseInt(ref, 10, 64); convErr == nil && n > 0 {
			return n, nil
		}

		return 0, fmt.Errorf("order reference %q is neither a uuid nor a number", ref)
	}

	n := int64(binary.BigEndian.Uint64(id[:8]) >> 1)
	if n == 0 {
		n = 1
	}

	return n, nil
}

// sadadSign encrypts data with TripleDES-ECB and PKCS#7 padding using the
// base64 terminal key, returning base64 ciphertext.
func sadadSign(terminalKey, data string) (string, error) {
	key, err := base64.StdEncoding.DecodeString(terminalKey)
	if err != nil {
		return "", fmt.Errorf("decode terminal key: %w", err)
	}

	block, err := des.NewTripleDESCipher(key)
	if err != nil {
		return "", fmt.Errorf("terminal key: %w", err)
	}

	plain := pkcs7Pad([]byte(data), block.BlockSize())
	out := make([]byte, len(plain))

	ecbEncrypt(block, out, plain)

	return base64.StdEncoding.EncodeToString(out), nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize

	return append(data, bytes.Repeat([]byte{byte(padding)}, padding)...)
}

func ecbEncrypt(block cipher.Block, dst, src []byte) {
	size := block.BlockSize()
	for i := 0; i < len(src); i += size {
		block.Encrypt(dst[i:i+size], src[i:i+size])
	}
}
