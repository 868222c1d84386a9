package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/api/middleware"
	appErrors "github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-checkout/internal/repositories"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundredPercent = decimal.NewFromInt(100)

type PromotionService interface {
	CreateSale(ctx context.Context, req *models.CreateSaleRequest) (*models.Sale, error)
	CreateCoupon(ctx context.Context, req *models.CreateCouponRequest) (*models.Coupon, error)
}

type promotionService struct {
	sales   repository.SaleRepository
	coupons repository.CouponRepository
}

func NewPromotionService(sales repository.SaleRepository, coupons repository.CouponRepository) PromotionService {
	return &promotionService{sales: sales, coupons: coupons}
}

// CreateSale stores a sale window. Overlapping sales are allowed; checkout
// applies the highest percent per product.
func (s *promotionService) CreateSale(ctx context.Context, req *models.CreateSaleRequest) (*models.Sale, error) {

	logger := middleware.LoggerFromContext(ctx)

	if !req.EndDate.After(req.StartDate) {
		return nil, appErrors.AddValidationError("end_date", "must be after start_date")
	}

	name := utils.SanitizeText(req.Name)
	if name == "" {
		return nil, appErrors.AddValidationError("name", "must not be empty")
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	sale := &models.Sale{
		ID:              uuid.New(),
		Name:            name,
		DiscountPercent: req.DiscountPercent,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		ProductIDs:      uniqueIDs(req.ProductIDs),
		IsActive:        isActive,
	}

	if err := s.sales.CreateSale(ctx, sale); err != nil {
		return nil, appErrors.DatabaseError("Failed to create sale").WithError(err)
	}

	logger.Info("Sale created", slog.String("sale_id", sale.ID.String()), slog.Int("discount_percent", sale.DiscountPercent))

	return sale, nil
}

func (s *promotionService) CreateCoupon(ctx context.Context, req *models.CreateCouponRequest) (*models.Coupon, error) {

	logger := middleware.LoggerFromContext(ctx)

	if err := validateCouponAmounts(req); err != nil {
		return nil, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	coupon := &models.Coupon{
		ID:          uuid.New(),
		Code:        models.NormalizeCouponCode(req.Code),
		Type:        req.Type,
		Value:       req.Value,
		MinPurchase: req.MinPurchase,
		MaxDiscount: req.MaxDiscount,
		UsageLimit:  req.UsageLimit,
		ValidFrom:   req.ValidFrom,
		ValidUntil:  req.ValidUntil,
		IsActive:    isActive,
	}

	if coupon.Type == models.CouponTypeFixed {
		coupon.MaxDiscount = nil
	}

	if err := s.coupons.CreateCoupon(ctx, coupon); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return nil, appErrors.ConflictError("Coupon code already exists").WithError(err)
		}
		return nil, appErrors.DatabaseError("Failed to create coupon").WithError(err)
	}

	logger.Info("Coupon created", slog.String("coupon_id", coupon.ID.String()), slog.String("code", coupon.Code))

	return coupon, nil
}

func validateCouponAmounts(req *models.CreateCouponRequest) error {
	switch {
	case !req.Value.IsPositive():
		return appErrors.AddValidationError("value", "must be positive")
	case req.Type == models.CouponTypePercent && req.Value.GreaterThan(hundredPercent):
		return appErrors.AddValidationError("value", "percent coupons cannot exceed 100")
	case req.MinPurchase.IsNegative():
		return appErrors.AddValidationError("min_purchase", "must not be negative")
	case req.MaxDiscount != nil && !req.MaxDiscount.IsPositive():
		return appErrors.AddValidationError("max_discount", "must be positive")
	case !req.ValidUntil.After(req.ValidFrom):
		return appErrors.AddValidationError("valid_until", "must be after valid_from")
	}

	return nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))

	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}
