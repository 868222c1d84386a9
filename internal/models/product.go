package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const ProductStatusActive = "active"

// Product is the read-only catalog view used to snapshot cart prices.
type Product struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	DiscountPercent int             `json:"discount_percent"`
	Status          string          `json:"status"`
}

func (p *Product) IsPurchasable() bool {
	return p.Status == ProductStatusActive
}
