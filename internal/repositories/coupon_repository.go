package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils"
)

type CouponRepository interface {
	CreateCoupon(ctx context.Context, coupon *models.Coupon) error
	GetCouponByCode(ctx context.Context, code string) (*models.Coupon, error)
	IncrementUsage(ctx context.Context, code string) (bool, error)
}

type couponRepository struct {
	DB *sql.DB
}

func NewCouponRepo(db *sql.DB) CouponRepository {
	return &couponRepository{DB: db}
}

func (r *couponRepository) CreateCoupon(ctx context.Context, coupon *models.Coupon) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO coupons (id, code, type, value, min_purchase, max_discount, usage_limit, usage_count, valid_from, valid_until, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 0, $8, $9, $10, NOW())
		RETURNING created_at
	`

	err := r.DB.QueryRowContext(dbCtx, query, coupon.ID, coupon.Code, coupon.Type, coupon.Value, coupon.MinPurchase, coupon.MaxDiscount,
		coupon.UsageLimit, coupon.ValidFrom, coupon.ValidUntil, coupon.IsActive).Scan(&coupon.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("coupon code %q already exists: %w", coupon.Code, ErrVersionConflict)
		}
		return fmt.Errorf("failed to create coupon: %w", err)
	}

	return nil
}

func (r *couponRepository) GetCouponByCode(ctx context.Context, code string) (*models.Coupon, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, code, type, value, min_purchase, max_discount, usage_limit, usage_count, valid_from, valid_until, is_active, created_at
		FROM coupons
		WHERE code = $1
	`

	coupon := &models.Coupon{}

	err := r.DB.QueryRowContext(dbCtx, query, models.NormalizeCouponCode(code)).Scan(&coupon.ID, &coupon.Code, &coupon.Type, &coupon.Value,
		&coupon.MinPurchase, &coupon.MaxDiscount, &coupon.UsageLimit, &coupon.UsageCount, &coupon.ValidFrom, &coupon.ValidUntil, &coupon.IsActive, &coupon.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}

	return coupon, nil
}

// IncrementUsage counts one redemption unless the usage limit is already
// reached, in which case it reports false.
func (r *couponRepository) IncrementUsage(ctx context.Context, code string) (bool, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE coupons SET usage_count = usage_count + 1
		WHERE code = $1 AND (usage_limit IS NULL OR usage_count < usage_limit)
	`

	result, err := r.DB.ExecContext(dbCtx, query, models.NormalizeCouponCode(code))
	if err != nil {
		return false, fmt.Errorf("failed to increment coupon usage: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get updated rows: %w", err)
	}

	return updatedRows == 1, nil
}
