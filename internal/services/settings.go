package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/cache"
	appErrors "github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-checkout/internal/repositories"
)

// SettingsService hands out SettingsSnapshot copies. Callers read settings
// once per operation and pass the snapshot down.
type SettingsService interface {
	Current(ctx context.Context) (*models.SettingsSnapshot, error)
	Masked(ctx context.Context) (*models.SettingsSnapshot, error)
	Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsSnapshot, error)
}

type settingsService struct {
	repo  repository.SettingsRepository
	cache cache.Cache
	ttl   time.Duration
}

func NewSettingsService(repo repository.SettingsRepository, cache cache.Cache, ttl time.Duration) SettingsService {
	return &settingsService{repo: repo, cache: cache, ttl: ttl}
}

func (s *settingsService) load(ctx context.Context) (any, error) {
	settings, err := s.repo.GetSettings(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DefaultSettings(), nil
	}

	return settings, err
}

func (s *settingsService) Current(ctx context.Context) (*models.SettingsSnapshot, error) {
	var snapshot models.SettingsSnapshot

	if err := s.cache.Remember(ctx, cache.SettingsKey, s.ttl, &snapshot, s.load); err != nil {
		return nil, appErrors.DatabaseError("Failed to load store settings").WithError(err)
	}

	if snapshot.Gateways == nil {
		snapshot.Gateways = map[models.GatewayName]models.GatewaySettings{}
	}

	return &snapshot, nil
}

func (s *settingsService) Masked(ctx context.Context) (*models.SettingsSnapshot, error) {
	settings, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}

	return settings.Masked(), nil
}

// Update applies the request on top of the stored document. Credentials are
// write-only: empty or masked values keep the stored secret.
func (s *settingsService) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsSnapshot, error) {

	logger := middleware.LoggerFromContext(ctx)

	current, err := s.repo.GetSettings(ctx)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		current = models.DefaultSettings()
	case err != nil:
		return nil, appErrors.DatabaseError("Failed to load store settings").WithError(err)
	}

	if req.Version != current.Version {
		return nil, appErrors.ConcurrencyConflictError("Settings were changed by someone else, reload and try again")
	}

	for name := range req.Gateways {
		if !name.Valid() {
			return nil, appErrors.AddValidationError("gateways", fmt.Sprintf("unknown gateway %q", name))
		}
	}

	next := current.Clone()
	applySettingsUpdate(next, req)

	if next.ActiveGateway != "" && !next.ActiveGateway.Valid() {
		return nil, appErrors.AddValidationError("active_gateway", "unknown gateway")
	}

	if err := s.repo.SaveSettings(ctx, next); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return nil, appErrors.ConcurrencyConflictError("Settings were changed by someone else, reload and try again").WithError(err)
		}
		return nil, appErrors.DatabaseError("Failed to save store settings").WithError(err)
	}

	if err := s.cache.Delete(ctx, cache.SettingsKey); err != nil {
		logger.Warn("Failed to invalidate settings cache", slog.Any("error", err))
	}

	logger.Info("Store settings updated", slog.Int64("version", next.Version), slog.String("active_gateway", string(next.ActiveGateway)))

	return next.Masked(), nil
}

func applySettingsUpdate(s *models.SettingsSnapshot, req *models.UpdateSettingsRequest) {
	if req.CartTTLHours != nil {
		s.CartTTLHours = *req.CartTTLHours
	}
	if req.AutoExpireEnabled != nil {
		s.AutoExpireEnabled = *req.AutoExpireEnabled
	}
	if req.AutoDeleteExpired != nil {
		s.AutoDeleteExpired = *req.AutoDeleteExpired
	}
	if req.PermanentCart != nil {
		s.PermanentCart = *req.PermanentCart
	}
	if req.ExpiryWarningEnabled != nil {
		s.ExpiryWarningEnabled = *req.ExpiryWarningEnabled
	}
	if req.ExpiryWarningMinutes != nil {
		s.ExpiryWarningMinutes = *req.ExpiryWarningMinutes
	}
	if req.ActiveGateway != nil {
		s.ActiveGateway = *req.ActiveGateway
	}

	for name, update := range req.Gateways {
		gs := s.Gateways[name]

		if update.IsActive != nil {
			gs.IsActive = *update.IsActive
		}
		if update.IsSandbox != nil {
			gs.IsSandbox = *update.IsSandbox
		}

		for key, value := range update.Credentials {
			if value == "" || models.IsMaskedCredential(value) {
				continue
			}
			if gs.Credentials == nil {
				gs.Credentials = map[string]string{}
			}
			gs.Credentials[key] = value
		}

		s.Gateways[name] = gs
	}
}
