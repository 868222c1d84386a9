package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionStatus string

const (
	TransactionStatusInitiated TransactionStatus = "initiated"
	TransactionStatusVerifying TransactionStatus = "verifying"
	TransactionStatusVerified  TransactionStatus = "verified"
	TransactionStatusFailed    TransactionStatus = "failed"
)

func (s TransactionStatus) IsTerminal() bool {
	return s == TransactionStatusVerified || s == TransactionStatusFailed
}

type PaymentTransaction struct {
	ID      uuid.UUID   `json:"id"`
	CartID  uuid.UUID   `json:"cart_id"`
	OwnerID uuid.UUID   `json:"owner_id"`
	OrderID *uuid.UUID  `json:"order_id,omitempty"`
	Gateway GatewayName `json:"gateway"`
	// Handle is the gateway-issued authority, token or session id.
	Handle        string            `json:"handle"`
	Amount        decimal.Decimal   `json:"amount"`
	CouponCode    string            `json:"coupon_code,omitempty"`
	Breakdown     *PriceBreakdown   `json:"breakdown,omitempty"`
	Status        TransactionStatus `json:"status"`
	ReferenceID   string            `json:"reference_id,omitempty"`
	FailureReason string            `json:"failure_reason,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

func (t *PaymentTransaction) Result() *VerificationResult {
	return &VerificationResult{
		TransactionID: t.ID,
		Handle:        t.Handle,
		Gateway:       t.Gateway,
		Status:        t.Status,
		Amount:        t.Amount,
		ReferenceID:   t.ReferenceID,
		OrderID:       t.OrderID,
		FailureReason: t.FailureReason,
	}
}

type InitiatePaymentRequest struct {
	Gateway    GatewayName `json:"gateway,omitempty" validate:"omitempty,oneof=zarinpal sadad stripe"`
	CouponCode string      `json:"coupon_code,omitempty" validate:"omitempty,max=50"`
}

type InitiatePaymentResponse struct {
	TransactionID uuid.UUID       `json:"transaction_id"`
	Handle        string          `json:"handle"`
	Gateway       GatewayName     `json:"gateway"`
	Amount        decimal.Decimal `json:"amount"`
	RedirectURL   string          `json:"redirect_url"`
}

type VerificationResult struct {
	TransactionID uuid.UUID         `json:"transaction_id"`
	Handle        string            `json:"handle"`
	Gateway       GatewayName       `json:"gateway"`
	Status        TransactionStatus `json:"status"`
	Amount        decimal.Decimal   `json:"amount"`
	ReferenceID   string            `json:"reference_id,omitempty"`
	OrderID       *uuid.UUID        `json:"order_id,omitempty"`
	FailureReason string            `json:"failure_reason,omitempty"`
}

func (r *VerificationResult) Succeeded() bool {
	return r.Status == TransactionStatusVerified
}
