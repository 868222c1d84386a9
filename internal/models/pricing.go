package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PricedLine struct {
	ProductID       uuid.UUID       `json:"product_id"`
	Variants        VariantSet      `json:"variants,omitempty"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent int             `json:"discount_percent"`
	// SaleID is set when an active sale supplied the discount.
	SaleID    *uuid.UUID      `json:"sale_id,omitempty"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type PriceBreakdown struct {
	Lines          []PricedLine    `json:"lines"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	CouponCode     string          `json:"coupon_code,omitempty"`
	CouponDiscount decimal.Decimal `json:"coupon_discount"`
	Shipping       decimal.Decimal `json:"shipping"`
	GrandTotal     decimal.Decimal `json:"grand_total"`
}
