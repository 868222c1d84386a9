package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils"
)

type SettingsRepository interface {
	GetSettings(ctx context.Context) (*models.SettingsSnapshot, error)
	SaveSettings(ctx context.Context, settings *models.SettingsSnapshot) error
}

type settingsRepository struct {
	DB *sql.DB
}

func NewSettingsRepo(db *sql.DB) SettingsRepository {
	return &settingsRepository{DB: db}
}

// The store keeps a single settings document.
const settingsRowID = 1

func (r *settingsRepository) GetSettings(ctx context.Context) (*models.SettingsSnapshot, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT document, version, updated_at FROM store_settings WHERE id = $1`

	var (
		document []byte
		version  int64
		settings models.SettingsSnapshot
	)

	row := r.DB.QueryRowContext(dbCtx, query, settingsRowID)
	if err := row.Scan(&document, &version, &settings.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	updatedAt := settings.UpdatedAt

	if err := json.Unmarshal(document, &settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	settings.Version = version
	settings.UpdatedAt = updatedAt

	if settings.Gateways == nil {
		settings.Gateways = map[models.GatewayName]models.GatewaySettings{}
	}

	return &settings, nil
}

// SaveSettings inserts the first document when settings.Version is 0 and
// otherwise replaces the document only if the stored version matches.
func (r *settingsRepository) SaveSettings(ctx context.Context, settings *models.SettingsSnapshot) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	document, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	var query string

	if settings.Version == 0 {
		query = `
			INSERT INTO store_settings (id, document, version, updated_at)
			VALUES ($1, $2, 1, NOW())
			ON CONFLICT (id) DO NOTHING
			RETURNING version, updated_at
		`
		err = r.DB.QueryRowContext(dbCtx, query, settingsRowID, document).Scan(&settings.Version, &settings.UpdatedAt)
	} else {
		query = `
			UPDATE store_settings SET document = $2, version = version + 1, updated_at = NOW()
			WHERE id = $1 AND version = $3
			RETURNING version, updated_at
		`
		err = r.DB.QueryRowContext(dbCtx, query, settingsRowID, document, settings.Version).Scan(&settings.Version, &settings.UpdatedAt)
	}

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrVersionConflict
		}
		return fmt.Errorf("failed to save settings: %w", err)
	}

	return nil
}
