package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type SaleRepository interface {
	CreateSale(ctx context.Context, sale *models.Sale) error
	ListActiveSales(ctx context.Context, productIDs []uuid.UUID, now time.Time) ([]*models.Sale, error)
}

type saleRepository struct {
	DB *sql.DB
}

func NewSaleRepo(db *sql.DB) SaleRepository {
	return &saleRepository{DB: db}
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}

	return out
}

func (r *saleRepository) CreateSale(ctx context.Context, sale *models.Sale) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer tx.Rollback()

	query := `
		INSERT INTO sales (id, name, discount_percent, start_date, end_date, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING created_at
	`

	if err := tx.QueryRowContext(dbCtx, query, sale.ID, sale.Name, sale.DiscountPercent, sale.StartDate, sale.EndDate, sale.IsActive).Scan(&sale.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert sale: %w", err)
	}

	productsQuery := `
		INSERT INTO sale_products (sale_id, product_id)
		SELECT $1, UNNEST($2::uuid[])
		ON CONFLICT DO NOTHING
	`

	if _, err := tx.ExecContext(dbCtx, productsQuery, sale.ID, pq.Array(uuidStrings(sale.ProductIDs))); err != nil {
		return fmt.Errorf("failed to insert sale products: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit sale: %w", err)
	}

	return nil
}

// ListActiveSales returns the sales running at now that cover any of
// productIDs. ProductIDs of each sale are limited to the requested ones.
func (r *saleRepository) ListActiveSales(ctx context.Context, productIDs []uuid.UUID, now time.Time) ([]*models.Sale, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT s.id, s.name, s.discount_percent, s.start_date, s.end_date, s.is_active, s.created_at, ARRAY_AGG(sp.product_id::text)
		FROM sales s
		JOIN sale_products sp ON sp.sale_id = s.id
		WHERE s.is_active AND s.start_date <= $1 AND s.end_date > $1
		  AND sp.product_id = ANY($2::uuid[])
		GROUP BY s.id
		ORDER BY s.created_at
	`

	rows, err := r.DB.QueryContext(dbCtx, query, now, pq.Array(uuidStrings(productIDs)))
	if err != nil {
		return nil, fmt.Errorf("failed to list active sales: %w", err)
	}
	defer rows.Close()

	var sales []*models.Sale

	for rows.Next() {
		sale := &models.Sale{}

		var covered []string

		if err := rows.Scan(&sale.ID, &sale.Name, &sale.DiscountPercent, &sale.StartDate, &sale.EndDate, &sale.IsActive, &sale.CreatedAt, pq.Array(&covered)); err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}

		for _, raw := range covered {
			id, err := uuid.Parse(raw)
			if err != nil {
				return nil, fmt.Errorf("invalid product id in sale %s: %w", sale.ID, err)
			}
			sale.ProductIDs = append(sale.ProductIDs, id)
		}

		sales = append(sales, sale)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sales: %w", err)
	}

	return sales, nil
}
