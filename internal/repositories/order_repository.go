package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils"
	"github.com/google/uuid"
)

type OrderRepository interface {
	CreateOrderForTransaction(ctx context.Context, order *models.Order) (bool, error)
	GetOrderByTransactionID(ctx context.Context, transactionID uuid.UUID) (*models.Order, error)
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

// CreateOrderForTransaction inserts the order and its items in one database
// transaction. When an order already exists for order.TransactionID it
// reports false and loads the existing order id into order.ID.
func (r *orderRepository) CreateOrderForTransaction(ctx context.Context, order *models.Order) (bool, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}

	// no-op once committed
	defer tx.Rollback()

	query := `
		INSERT INTO orders (id, transaction_id, cart_id, customer_id, status, subtotal, coupon_code, coupon_discount, shipping, total_amount, payment_reference, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		ON CONFLICT (transaction_id) DO NOTHING
		RETURNING created_at, updated_at
	`

	err = tx.QueryRowContext(dbCtx, query, order.ID, order.TransactionID, order.CartID, order.CustomerID, order.Status, order.Subtotal,
		order.CouponCode, order.CouponDiscount, order.Shipping, order.TotalAmount, order.PaymentReference).Scan(&order.CreatedAt, &order.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		existing := `SELECT id, payment_reference, created_at, updated_at FROM orders WHERE transaction_id = $1`
		if err = tx.QueryRowContext(dbCtx, existing, order.TransactionID).Scan(&order.ID, &order.PaymentReference, &order.CreatedAt, &order.UpdatedAt); err != nil {
			return false, fmt.Errorf("failed to load existing order: %w", err)
		}

		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("failed to insert order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (id, order_id, product_id, variants, quantity, unit_price, discount_percent, line_total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	`

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID

		variants, err := json.Marshal(item.Variants)
		if err != nil {
			return false, fmt.Errorf("failed to marshal item variants: %w", err)
		}

		if _, err := tx.ExecContext(dbCtx, itemQuery, item.ID, order.ID, item.ProductID, variants, item.Quantity, item.UnitPrice, item.DiscountPercent, item.LineTotal); err != nil {
			return false, fmt.Errorf("failed to insert an order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit order: %w", err)
	}

	return true, nil
}

func (r *orderRepository) GetOrderByTransactionID(ctx context.Context, transactionID uuid.UUID) (*models.Order, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	order := &models.Order{TransactionID: transactionID}

	query := `
		SELECT id, cart_id, customer_id, status, subtotal, coupon_code, coupon_discount, shipping, total_amount, payment_reference, created_at, updated_at
		FROM orders
		WHERE transaction_id = $1
	`

	err := r.DB.QueryRowContext(dbCtx, query, transactionID).Scan(&order.ID, &order.CartID, &order.CustomerID, &order.Status, &order.Subtotal,
		&order.CouponCode, &order.CouponDiscount, &order.Shipping, &order.TotalAmount, &order.PaymentReference, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get the order: %w", err)
	}

	itemsQuery := `
		SELECT id, product_id, variants, quantity, unit_price, discount_percent, line_total, created_at
		FROM order_items
		WHERE order_id = $1
	`

	rows, err := r.DB.QueryContext(dbCtx, itemsQuery, order.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get the order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item     models.OrderItem
			variants []byte
		)

		if err := rows.Scan(&item.ID, &item.ProductID, &variants, &item.Quantity, &item.UnitPrice, &item.DiscountPercent, &item.LineTotal, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}

		if err := json.Unmarshal(variants, &item.Variants); err != nil {
			return nil, fmt.Errorf("failed to unmarshal item variants: %w", err)
		}

		item.OrderID = order.ID
		order.Items = append(order.Items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate order items: %w", err)
	}

	return order, nil
}
