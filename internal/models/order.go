package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type OrderItem struct {
	ID              uuid.UUID       `json:"id"`
	OrderID         uuid.UUID       `json:"order_id"`
	ProductID       uuid.UUID       `json:"product_id"`
	Variants        VariantSet      `json:"variants,omitempty"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent int             `json:"discount_percent"`
	LineTotal       decimal.Decimal `json:"line_total"`
	CreatedAt       time.Time       `json:"created_at"`
}

// Order is created once per verified payment transaction.
type Order struct {
	ID               uuid.UUID       `json:"id"`
	TransactionID    uuid.UUID       `json:"transaction_id"`
	CartID           uuid.UUID       `json:"cart_id"`
	CustomerID       uuid.UUID       `json:"customer_id"`
	Status           OrderStatus     `json:"status"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	CouponCode       string          `json:"coupon_code,omitempty"`
	CouponDiscount   decimal.Decimal `json:"coupon_discount"`
	Shipping         decimal.Decimal `json:"shipping"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	// PaymentReference is the gateway reference the order was paid with.
	PaymentReference string          `json:"payment_reference,omitempty"`
	Items            []OrderItem     `json:"items"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}
