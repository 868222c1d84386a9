package service_test

import (
	"errors"
	"testing"
	"time"

	appErrors "github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-checkout/internal/repositories"
	repoMocks "github.com/aaravmahajanofficial/storefront-checkout/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/storefront-checkout/internal/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupPromotionTest(t *testing.T) (service.PromotionService, *repoMocks.MockSaleRepository, *repoMocks.MockCouponRepository) {
	mockSales := repoMocks.NewMockSaleRepository(t)
	mockCoupons := repoMocks.NewMockCouponRepository(t)

	return service.NewPromotionService(mockSales, mockCoupons), mockSales, mockCoupons
}

func TestCreateSale(t *testing.T) {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	productID := uuid.New()

	t.Run("Success - Duplicate Products Collapsed", func(t *testing.T) {
		// Arrange
		svc, mockSales, _ := setupPromotionTest(t)
		req := &models.CreateSaleRequest{
			Name:            "  Summer <b>Sale</b> ",
			DiscountPercent: 30,
			StartDate:       start,
			EndDate:         start.Add(7 * 24 * time.Hour),
			ProductIDs:      []uuid.UUID{productID, productID},
		}
		mockSales.On("CreateSale", mock.Anything, mock.MatchedBy(func(s *models.Sale) bool {
			return len(s.ProductIDs) == 1 && s.IsActive && s.DiscountPercent == 30
		})).Return(nil).Once()

		// Act
		sale, err := svc.CreateSale(t.Context(), req)

		// Assert
		require.NoError(t, err)
		assert.NotContains(t, sale.Name, "<b>")
		assert.NotEqual(t, uuid.Nil, sale.ID)
	})

	t.Run("Failure - Window Ends Before It Starts", func(t *testing.T) {
		svc, _, _ := setupPromotionTest(t)

		_, err := svc.CreateSale(t.Context(), &models.CreateSaleRequest{
			Name: "Broken", DiscountPercent: 10, StartDate: start, EndDate: start, ProductIDs: []uuid.UUID{productID},
		})

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
	})
}

func TestCreateCoupon(t *testing.T) {
	from := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	maxDiscount := decimal.NewFromInt(50000)

	validRequest := func() *models.CreateCouponRequest {
		return &models.CreateCouponRequest{
			Code:        "summer2024",
			Type:        models.CouponTypePercent,
			Value:       decimal.NewFromInt(20),
			MinPurchase: decimal.NewFromInt(100000),
			MaxDiscount: &maxDiscount,
			ValidFrom:   from,
			ValidUntil:  from.Add(30 * 24 * time.Hour),
		}
	}

	t.Run("Success - Code Normalized", func(t *testing.T) {
		// Arrange
		svc, _, mockCoupons := setupPromotionTest(t)
		mockCoupons.On("CreateCoupon", mock.Anything, mock.MatchedBy(func(c *models.Coupon) bool {
			return c.Code == "SUMMER2024" && c.IsActive && c.MaxDiscount != nil
		})).Return(nil).Once()

		// Act
		coupon, err := svc.CreateCoupon(t.Context(), validRequest())

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "SUMMER2024", coupon.Code)
	})

	t.Run("Success - Fixed Coupon Drops Max Discount", func(t *testing.T) {
		svc, _, mockCoupons := setupPromotionTest(t)
		req := validRequest()
		req.Type = models.CouponTypeFixed
		req.Value = decimal.NewFromInt(25000)
		mockCoupons.On("CreateCoupon", mock.Anything, mock.Anything).Return(nil).Once()

		coupon, err := svc.CreateCoupon(t.Context(), req)

		require.NoError(t, err)
		assert.Nil(t, coupon.MaxDiscount)
	})

	t.Run("Failure - Percent Above Hundred", func(t *testing.T) {
		svc, _, _ := setupPromotionTest(t)
		req := validRequest()
		req.Value = decimal.NewFromInt(120)

		_, err := svc.CreateCoupon(t.Context(), req)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
	})

	t.Run("Failure - Duplicate Code", func(t *testing.T) {
		svc, _, mockCoupons := setupPromotionTest(t)
		mockCoupons.On("CreateCoupon", mock.Anything, mock.Anything).Return(repository.ErrVersionConflict).Once()

		_, err := svc.CreateCoupon(t.Context(), validRequest())

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeConflict, appErr.Code)
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		svc, _, mockCoupons := setupPromotionTest(t)
		mockCoupons.On("CreateCoupon", mock.Anything, mock.Anything).Return(errors.New("connection reset")).Once()

		_, err := svc.CreateCoupon(t.Context(), validRequest())

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeDatabaseError, appErr.Code)
	})
}
