// Package pricing computes the payable amount of a cart. Everything here is a
// pure function of its arguments: the clock, the sales and the coupon are
// passed in by the caller.
package pricing

import (
	"time"

	appErrors "github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const scale = 2

var hundred = decimal.NewFromInt(100)

// ShippingFunc prices shipping for the amount left after the coupon discount.
type ShippingFunc func(payable decimal.Decimal) decimal.Decimal

type Input struct {
	Items  []models.CartItem
	Sales  []models.Sale
	Coupon *models.Coupon
	Now    time.Time
	// Shipping may be nil, in which case shipping is free.
	Shipping ShippingFunc
}

func Resolve(in Input) (models.PriceBreakdown, error) {
	breakdown := models.PriceBreakdown{
		Lines:          make([]models.PricedLine, 0, len(in.Items)),
		Subtotal:       decimal.Zero,
		CouponDiscount: decimal.Zero,
		Shipping:       decimal.Zero,
	}

	for _, item := range in.Items {
		line := priceLine(item, in.Sales, in.Now)
		breakdown.Lines = append(breakdown.Lines, line)
		breakdown.Subtotal = breakdown.Subtotal.Add(line.LineTotal)
	}

	if in.Coupon != nil {
		discount, err := CouponDiscount(in.Coupon, breakdown.Subtotal, in.Now)
		if err != nil {
			return models.PriceBreakdown{}, err
		}

		breakdown.CouponCode = in.Coupon.Code
		breakdown.CouponDiscount = discount
	}

	payable := breakdown.Subtotal.Sub(breakdown.CouponDiscount)
	if payable.IsNegative() {
		payable = decimal.Zero
	}

	if in.Shipping != nil {
		breakdown.Shipping = in.Shipping(payable).Round(scale)
	}

	breakdown.GrandTotal = payable.Add(breakdown.Shipping)

	return breakdown, nil
}

func priceLine(item models.CartItem, sales []models.Sale, now time.Time) models.PricedLine {
	line := models.PricedLine{
		ProductID:       item.ProductID,
		Variants:        item.Variants,
		Quantity:        item.Quantity,
		UnitPrice:       item.UnitPrice,
		DiscountPercent: item.DiscountPercent,
	}

	if sale := BestSale(sales, item.ProductID, now); sale != nil {
		id := sale.ID
		line.DiscountPercent = sale.DiscountPercent
		line.SaleID = &id
	}

	line.LineTotal = DiscountedUnitPrice(item.UnitPrice, line.DiscountPercent).
		Mul(decimal.NewFromInt(int64(item.Quantity))).
		Round(scale)

	return line
}

// BestSale returns the single active sale with the highest percent covering
// the product. Sales never stack; ties keep the first one seen.
func BestSale(sales []models.Sale, productID uuid.UUID, now time.Time) *models.Sale {
	var best *models.Sale

	for i := range sales {
		sale := &sales[i]
		if !sale.ActiveAt(now) || !sale.Covers(productID) {
			continue
		}

		if best == nil || sale.DiscountPercent > best.DiscountPercent {
			best = sale
		}
	}

	return best
}

func DiscountedUnitPrice(unitPrice decimal.Decimal, percent int) decimal.Decimal {
	if percent <= 0 {
		return unitPrice
	}

	if percent >= 100 {
		return decimal.Zero
	}

	return unitPrice.Mul(hundred.Sub(decimal.NewFromInt(int64(percent)))).Div(hundred)
}

// ValidateCoupon rejects a coupon with a localized reason.
func ValidateCoupon(coupon *models.Coupon, subtotal decimal.Decimal, now time.Time) error {
	switch {
	case !coupon.IsActive:
		return appErrors.Localized(appErrors.MsgCouponInactive)
	case now.Before(coupon.ValidFrom):
		return appErrors.Localized(appErrors.MsgCouponNotYetValid)
	case now.After(coupon.ValidUntil):
		return appErrors.Localized(appErrors.MsgCouponExpired)
	case coupon.Exhausted():
		return appErrors.Localized(appErrors.MsgCouponUsageExhausted)
	case subtotal.LessThan(coupon.MinPurchase):
		return appErrors.Localized(appErrors.MsgCouponBelowMinimum).
			WithDetail("minimum purchase " + coupon.MinPurchase.StringFixed(scale))
	}

	return nil
}

// CouponDiscount validates the coupon and returns the amount it takes off subtotal.
func CouponDiscount(coupon *models.Coupon, subtotal decimal.Decimal, now time.Time) (decimal.Decimal, error) {
	if err := ValidateCoupon(coupon, subtotal, now); err != nil {
		return decimal.Zero, err
	}

	var discount decimal.Decimal

	switch coupon.Type {
	case models.CouponTypePercent:
		discount = subtotal.Mul(coupon.Value).Div(hundred)
		if coupon.MaxDiscount != nil && discount.GreaterThan(*coupon.MaxDiscount) {
			discount = *coupon.MaxDiscount
		}
	case models.CouponTypeFixed:
		discount = decimal.Min(coupon.Value, subtotal)
	default:
		return decimal.Zero, appErrors.ValidationError("Unsupported coupon type").WithDetail(string(coupon.Type))
	}

	if discount.IsNegative() {
		discount = decimal.Zero
	}

	return discount.Round(scale), nil
}
