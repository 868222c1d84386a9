package repository_test

import (
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-checkout/internal/repositories"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCouponRepository(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewCouponRepo(db)
	ctx := t.Context()
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Success - Get Coupon Is Case Insensitive", func(t *testing.T) {
		// Arrange
		id := uuid.New()
		columns := []string{"id", "code", "type", "value", "min_purchase", "max_discount", "usage_limit", "usage_count", "valid_from", "valid_until", "is_active", "created_at"}

		mock.ExpectQuery(regexp.QuoteMeta(`FROM coupons WHERE code = $1`)).
			WithArgs("SAVE50").
			WillReturnRows(sqlmock.NewRows(columns).AddRow(
				id.String(), "SAVE50", "percent", "20", "100000", "50000", 10, 3, now, now.Add(720*time.Hour), true, now))

		// Act
		coupon, err := repo.GetCouponByCode(ctx, "  save50 ")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, models.CouponTypePercent, coupon.Type)
		require.NotNil(t, coupon.MaxDiscount)
		assert.True(t, decimal.NewFromInt(50000).Equal(*coupon.MaxDiscount))
		require.NotNil(t, coupon.UsageLimit)
		assert.Equal(t, 10, *coupon.UsageLimit)
		assert.False(t, coupon.Exhausted())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Coupon Not Found", func(t *testing.T) {
		// Arrange
		mock.ExpectQuery(regexp.QuoteMeta(`FROM coupons WHERE code = $1`)).
			WithArgs("NOPE").
			WillReturnError(sql.ErrNoRows)

		// Act
		coupon, err := repo.GetCouponByCode(ctx, "nope")

		// Assert
		assert.Nil(t, coupon)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	t.Run("Failure - Duplicate Coupon Code", func(t *testing.T) {
		// Arrange
		coupon := &models.Coupon{ID: uuid.New(), Code: "SAVE50", Type: models.CouponTypeFixed, Value: decimal.NewFromInt(1000), ValidFrom: now, ValidUntil: now.Add(time.Hour)}

		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO coupons`)).
			WillReturnError(&pq.Error{Code: "23505"})

		// Act
		err := repo.CreateCoupon(ctx, coupon)

		// Assert
		assert.ErrorIs(t, err, repository.ErrVersionConflict)
	})

	t.Run("Success - Increment Usage Within Limit", func(t *testing.T) {
		// Arrange
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE coupons SET usage_count = usage_count + 1 WHERE code = $1 AND (usage_limit IS NULL OR usage_count < usage_limit)`)).
			WithArgs("SAVE50").
			WillReturnResult(sqlmock.NewResult(0, 1))

		// Act
		ok, err := repo.IncrementUsage(ctx, "save50")

		// Assert
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Success - Increment Usage Refused At Limit", func(t *testing.T) {
		// Arrange
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE coupons SET usage_count`)).
			WithArgs("SAVE50").
			WillReturnResult(sqlmock.NewResult(0, 0))

		// Act
		ok, err := repo.IncrementUsage(ctx, "SAVE50")

		// Assert
		require.NoError(t, err)
		assert.False(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSaleRepository(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewSaleRepo(db)
	ctx := t.Context()
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Success - Create Sale With Products", func(t *testing.T) {
		// Arrange
		productA, productB := uuid.New(), uuid.New()
		sale := &models.Sale{ID: uuid.New(), Name: "Spring", DiscountPercent: 30, StartDate: start, EndDate: start.Add(72 * time.Hour),
			ProductIDs: []uuid.UUID{productA, productB}, IsActive: true}

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO sales`)).
			WithArgs(sale.ID, "Spring", 30, sale.StartDate, sale.EndDate, true).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(start))
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO sale_products`)).
			WithArgs(sale.ID, pq.Array([]string{productA.String(), productB.String()})).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		// Act
		err := repo.CreateSale(ctx, sale)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Create Sale Rolls Back", func(t *testing.T) {
		// Arrange
		sale := &models.Sale{ID: uuid.New(), Name: "Broken", DiscountPercent: 10, StartDate: start, EndDate: start.Add(time.Hour), ProductIDs: []uuid.UUID{uuid.New()}}

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO sales`)).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(start))
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO sale_products`)).
			WillReturnError(sql.ErrConnDone)
		mock.ExpectRollback()

		// Act
		err := repo.CreateSale(ctx, sale)

		// Assert
		assert.ErrorIs(t, err, sql.ErrConnDone)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - List Active Sales", func(t *testing.T) {
		// Arrange
		productID := uuid.New()
		saleID := uuid.New()
		now := start.Add(time.Hour)

		mock.ExpectQuery(regexp.QuoteMeta(`WHERE s.is_active AND s.start_date <= $1 AND s.end_date > $1`)).
			WithArgs(now, pq.Array([]string{productID.String()})).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "discount_percent", "start_date", "end_date", "is_active", "created_at", "products"}).
				AddRow(saleID.String(), "Spring", 30, start, start.Add(72*time.Hour), true, start, "{"+productID.String()+"}"))

		// Act
		sales, err := repo.ListActiveSales(ctx, []uuid.UUID{productID}, now)

		// Assert
		require.NoError(t, err)
		require.Len(t, sales, 1)
		assert.Equal(t, saleID, sales[0].ID)
		assert.True(t, sales[0].Covers(productID))
		assert.True(t, sales[0].ActiveAt(now))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
