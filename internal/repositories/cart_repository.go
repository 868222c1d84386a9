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
)

type CartRepository interface {
	CreateCart(ctx context.Context, cart *models.Cart) error
	GetCartByID(ctx context.Context, id uuid.UUID) (*models.Cart, error)
	GetOpenCartByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Cart, error)
	UpdateCart(ctx context.Context, cart *models.Cart) error
	DeleteCart(ctx context.Context, id uuid.UUID, version int64) error
	ListSweepCandidates(ctx context.Context, cutoff time.Time, after SweepCursor, limit int) ([]*models.Cart, error)
}

// SweepCursor is the keyset position of the last cart a sweep page returned.
type SweepCursor struct {
	LastModifiedAt time.Time
	ID             uuid.UUID
}

type cartRepository struct {
	DB *sql.DB
}

func NewCartRepo(db *sql.DB) CartRepository {
	return &cartRepository{DB: db}
}

const cartColumns = `id, owner_id, contact_email, items, status, last_modified_at, warning_sent_at, version, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCart(row rowScanner) (*models.Cart, error) {
	cart := &models.Cart{}

	var itemsJSON []byte

	err := row.Scan(&cart.ID, &cart.OwnerID, &cart.ContactEmail, &itemsJSON, &cart.Status, &cart.LastModifiedAt, &cart.WarningSentAt, &cart.Version, &cart.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(itemsJSON, &cart.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart items: %w", err)
	}

	return cart, nil
}

func (r *cartRepository) CreateCart(ctx context.Context, cart *models.Cart) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	itemsJSON, err := json.Marshal(cart.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart items: %w", err)
	}

	query := `
		INSERT INTO carts (id, owner_id, contact_email, items, status, last_modified_at, warning_sent_at, version, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 1, NOW())
		RETURNING version, created_at
	`

	err = r.DB.QueryRowContext(dbCtx, query, cart.ID, cart.OwnerID, cart.ContactEmail, itemsJSON, cart.Status, cart.LastModifiedAt, cart.WarningSentAt).
		Scan(&cart.Version, &cart.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("owner already has an open cart: %w", ErrVersionConflict)
		}
		return fmt.Errorf("failed to create cart: %w", err)
	}

	return nil
}

func (r *cartRepository) GetCartByID(ctx context.Context, id uuid.UUID) (*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + cartColumns + ` FROM carts WHERE id = $1`

	cart, err := scanCart(r.DB.QueryRowContext(dbCtx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("querying database: %w", err)
	}

	return cart, nil
}

func (r *cartRepository) GetOpenCartByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + cartColumns + ` FROM carts WHERE owner_id = $1 AND status IN ('active', 'warned')`

	cart, err := scanCart(r.DB.QueryRowContext(dbCtx, query, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("querying database: %w", err)
	}

	return cart, nil
}

// UpdateCart writes the cart only if the stored version still matches
// cart.Version, then advances cart.Version.
func (r *cartRepository) UpdateCart(ctx context.Context, cart *models.Cart) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	itemsJSON, err := json.Marshal(cart.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart items: %w", err)
	}

	query := `
		UPDATE carts
		SET contact_email = $1, items = $2, status = $3, last_modified_at = $4, warning_sent_at = $5, version = version + 1
		WHERE id = $6 AND version = $7
	`

	result, err := r.DB.ExecContext(dbCtx, query, cart.ContactEmail, itemsJSON, cart.Status, cart.LastModifiedAt, cart.WarningSentAt, cart.ID, cart.Version)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("owner already has an open cart: %w", ErrVersionConflict)
		}
		return fmt.Errorf("failed to update the cart: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return ErrVersionConflict
	}

	cart.Version++

	return nil
}

func (r *cartRepository) DeleteCart(ctx context.Context, id uuid.UUID, version int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM carts WHERE id = $1 AND version = $2`, id, version)
	if err != nil {
		return fmt.Errorf("failed to delete the cart: %w", err)
	}

	deletedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get deleted rows: %w", err)
	}

	if deletedRows == 0 {
		return ErrVersionConflict
	}

	return nil
}

// ListSweepCandidates pages through open carts last modified at or before
// cutoff, ordered by (last_modified_at, id).
func (r *cartRepository) ListSweepCandidates(ctx context.Context, cutoff time.Time, after SweepCursor, limit int) ([]*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + cartColumns + `
		FROM carts
		WHERE status IN ('active', 'warned')
		  AND last_modified_at <= $1
		  AND (last_modified_at, id) > ($2, $3)
		ORDER BY last_modified_at, id
		LIMIT $4
	`

	rows, err := r.DB.QueryContext(dbCtx, query, cutoff, after.LastModifiedAt, after.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sweep candidates: %w", err)
	}
	defer rows.Close()

	var carts []*models.Cart

	for rows.Next() {
		cart, err := scanCart(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart: %w", err)
		}

		carts = append(carts, cart)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate carts: %w", err)
	}

	return carts, nil
}
