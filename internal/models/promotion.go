package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Sale struct {
	ID              uuid.UUID   `json:"id"`
	Name            string      `json:"name"`
	DiscountPercent int         `json:"discount_percent"`
	StartDate       time.Time   `json:"start_date"`
	EndDate         time.Time   `json:"end_date"`
	ProductIDs      []uuid.UUID `json:"product_ids"`
	IsActive        bool        `json:"is_active"`
	CreatedAt       time.Time   `json:"created_at"`
}

// ActiveAt reports whether the sale window [StartDate, EndDate) contains now.
func (s *Sale) ActiveAt(now time.Time) bool {
	return s.IsActive && !now.Before(s.StartDate) && now.Before(s.EndDate)
}

func (s *Sale) Covers(productID uuid.UUID) bool {
	for _, id := range s.ProductIDs {
		if id == productID {
			return true
		}
	}

	return false
}

type CouponType string

const (
	CouponTypePercent CouponType = "percent"
	CouponTypeFixed   CouponType = "fixed"
)

type Coupon struct {
	ID          uuid.UUID        `json:"id"`
	Code        string           `json:"code"`
	Type        CouponType       `json:"type"`
	Value       decimal.Decimal  `json:"value"`
	MinPurchase decimal.Decimal  `json:"min_purchase"`
	MaxDiscount *decimal.Decimal `json:"max_discount,omitempty"`
	// UsageLimit nil means unlimited.
	UsageLimit *int      `json:"usage_limit,omitempty"`
	UsageCount int       `json:"usage_count"`
	ValidFrom  time.Time `json:"valid_from"`
	ValidUntil time.Time `json:"valid_until"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

func (c *Coupon) Exhausted() bool {
	return c.UsageLimit != nil && c.UsageCount >= *c.UsageLimit
}

// NormalizeCouponCode makes coupon lookups case-insensitive.
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

type CreateSaleRequest struct {
	Name            string      `json:"name" validate:"required,min=2,max=120"`
	DiscountPercent int         `json:"discount_percent" validate:"required,min=1,max=99"`
	StartDate       time.Time   `json:"start_date" validate:"required"`
	EndDate         time.Time   `json:"end_date" validate:"required,gtfield=StartDate"`
	ProductIDs      []uuid.UUID `json:"product_ids" validate:"required,min=1"`
	IsActive        *bool       `json:"is_active,omitempty"`
}

// Monetary fields are checked by the promotion service; the validator
// does not understand decimal values.
type CreateCouponRequest struct {
	Code        string           `json:"code" validate:"required,min=3,max=50,alphanum"`
	Type        CouponType       `json:"type" validate:"required,oneof=percent fixed"`
	Value       decimal.Decimal  `json:"value"`
	MinPurchase decimal.Decimal  `json:"min_purchase"`
	MaxDiscount *decimal.Decimal `json:"max_discount,omitempty"`
	UsageLimit  *int             `json:"usage_limit,omitempty" validate:"omitempty,min=1"`
	ValidFrom   time.Time        `json:"valid_from" validate:"required"`
	ValidUntil  time.Time        `json:"valid_until" validate:"required,gtfield=ValidFrom"`
	IsActive    *bool            `json:"is_active,omitempty"`
}
