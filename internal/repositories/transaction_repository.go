package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type TransactionRepository interface {
	CreateTransaction(ctx context.Context, txn *models.PaymentTransaction) error
	GetTransactionByID(ctx context.Context, id uuid.UUID) (*models.PaymentTransaction, error)
	GetTransactionByHandle(ctx context.Context, handle string) (*models.PaymentTransaction, error)
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to models.TransactionStatus) (bool, error)
	CompleteTransaction(ctx context.Context, txn *models.PaymentTransaction, from models.TransactionStatus) (bool, error)
	HasInFlightForCart(ctx context.Context, cartID uuid.UUID, initiatedSince time.Time) (bool, error)
	ListTransactions(ctx context.Context, statuses []models.TransactionStatus, page, size int) ([]*models.PaymentTransaction, int, error)
}

type transactionRepository struct {
	DB *sql.DB
}

func NewTransactionRepo(db *sql.DB) TransactionRepository {
	return &transactionRepository{DB: db}
}

const transactionColumns = `id, cart_id, owner_id, order_id, gateway, handle, amount, coupon_code, breakdown, status, reference_id, failure_reason, created_at, updated_at`

func scanTransaction(row rowScanner) (*models.PaymentTransaction, error) {
	txn := &models.PaymentTransaction{}

	var breakdown []byte

	err := row.Scan(&txn.ID, &txn.CartID, &txn.OwnerID, &txn.OrderID, &txn.Gateway, &txn.Handle, &txn.Amount, &txn.CouponCode,
		&breakdown, &txn.Status, &txn.ReferenceID, &txn.FailureReason, &txn.CreatedAt, &txn.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if len(breakdown) > 0 {
		txn.Breakdown = &models.PriceBreakdown{}
		if err := json.Unmarshal(breakdown, txn.Breakdown); err != nil {
			return nil, fmt.Errorf("failed to unmarshal price breakdown: %w", err)
		}
	}

	return txn, nil
}

func (r *transactionRepository) CreateTransaction(ctx context.Context, txn *models.PaymentTransaction) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var breakdown []byte

	if txn.Breakdown != nil {
		var err error

		breakdown, err = json.Marshal(txn.Breakdown)
		if err != nil {
			return fmt.Errorf("failed to marshal price breakdown: %w", err)
		}
	}

	query := `
		INSERT INTO payment_transactions (id, cart_id, owner_id, gateway, handle, amount, coupon_code, breakdown, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := r.DB.QueryRowContext(dbCtx, query, txn.ID, txn.CartID, txn.OwnerID, txn.Gateway, txn.Handle, txn.Amount, txn.CouponCode, breakdown, txn.Status).
		Scan(&txn.CreatedAt, &txn.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert payment transaction: %w", err)
	}

	return nil
}

func (r *transactionRepository) GetTransactionByID(ctx context.Context, id uuid.UUID) (*models.PaymentTransaction, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + transactionColumns + ` FROM payment_transactions WHERE id = $1`

	txn, err := scanTransaction(r.DB.QueryRowContext(dbCtx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get the payment transaction: %w", err)
	}

	return txn, nil
}

func (r *transactionRepository) GetTransactionByHandle(ctx context.Context, handle string) (*models.PaymentTransaction, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + transactionColumns + ` FROM payment_transactions WHERE handle = $1`

	txn, err := scanTransaction(r.DB.QueryRowContext(dbCtx, query, handle))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get the payment transaction: %w", err)
	}

	return txn, nil
}

// TransitionStatus moves the transaction from one status to another and
// reports false when another caller already moved it.
func (r *transactionRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to models.TransactionStatus) (bool, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE payment_transactions SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
	`

	result, err := r.DB.ExecContext(dbCtx, query, to, id, from)
	if err != nil {
		return false, fmt.Errorf("failed to update payment transaction status: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get updated rows: %w", err)
	}

	return updatedRows == 1, nil
}

// CompleteTransaction persists the terminal outcome held in txn, guarded by
// the expected current status.
func (r *transactionRepository) CompleteTransaction(ctx context.Context, txn *models.PaymentTransaction, from models.TransactionStatus) (bool, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE payment_transactions
		SET status = $1, reference_id = $2, failure_reason = $3, order_id = $4, updated_at = NOW()
		WHERE id = $5 AND status = $6
		RETURNING updated_at
	`

	err := r.DB.QueryRowContext(dbCtx, query, txn.Status, txn.ReferenceID, txn.FailureReason, txn.OrderID, txn.ID, from).Scan(&txn.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to complete payment transaction: %w", err)
	}

	return true, nil
}

// HasInFlightForCart reports whether a verification is running for the cart,
// or a payment was initiated for it at or after initiatedSince.
func (r *transactionRepository) HasInFlightForCart(ctx context.Context, cartID uuid.UUID, initiatedSince time.Time) (bool, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT EXISTS (
			SELECT 1 FROM payment_transactions
			WHERE cart_id = $1
			  AND (status = 'verifying' OR (status = 'initiated' AND created_at >= $2))
		)
	`

	var exists bool

	if err := r.DB.QueryRowContext(dbCtx, query, cartID, initiatedSince).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check in-flight transactions: %w", err)
	}

	return exists, nil
}

func (r *transactionRepository) ListTransactions(ctx context.Context, statuses []models.TransactionStatus, page, size int) ([]*models.PaymentTransaction, int, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	filter := make([]string, len(statuses))
	for i, status := range statuses {
		filter[i] = string(status)
	}

	var total int

	countQuery := `SELECT COUNT(*) FROM payment_transactions WHERE status = ANY($1)`
	if err := r.DB.QueryRowContext(dbCtx, countQuery, pq.Array(filter)).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payment transactions: %w", err)
	}

	offset := (page - 1) * size

	query := `SELECT ` + transactionColumns + `
		FROM payment_transactions
		WHERE status = ANY($1)
		ORDER BY updated_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.DB.QueryContext(dbCtx, query, pq.Array(filter), size, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payment transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*models.PaymentTransaction

	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payment transaction: %w", err)
		}

		transactions = append(transactions, txn)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate payment transactions: %w", err)
	}

	return transactions, total, nil
}
