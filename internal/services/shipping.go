package service

import (
	"github.com/aaravmahajanofficial/storefront-checkout/internal/config"
	"github.com/shopspring/decimal"
)

// ShippingCalculator prices delivery for the payable amount of an order.
type ShippingCalculator interface {
	Quote(payable decimal.Decimal) decimal.Decimal
}

type flatRateShipping struct {
	rate     decimal.Decimal
	freeOver decimal.Decimal
}

func NewFlatRateShipping(cfg config.ShippingConfig) ShippingCalculator {
	return &flatRateShipping{
		rate:     decimal.NewFromFloat(cfg.FlatRate),
		freeOver: decimal.NewFromFloat(cfg.FreeOverAmount),
	}
}

// Quote charges the flat rate unless payable reaches the free-shipping threshold.
func (s *flatRateShipping) Quote(payable decimal.Decimal) decimal.Decimal {
	if s.freeOver.IsPositive() && payable.GreaterThanOrEqual(s.freeOver) {
		return decimal.Zero
	}

	return s.rate
}
