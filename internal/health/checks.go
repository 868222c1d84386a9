package health

import (
	"context"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/config"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/gateway"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/hellofresh/health-go/v5"
	"github.com/hellofresh/health-go/v5/checks/postgres"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
)

type SettingsSource interface {
	Current(ctx context.Context) (*models.SettingsSnapshot, error)
}

type GatewayResolver interface {
	Resolve(settings *models.SettingsSnapshot, explicit gateway.Name) (*gateway.Selection, error)
}

type Endpoints struct {
	Settings SettingsSource
	Gateways GatewayResolver
}

func NewHealthHandler(cfg *config.Config, endpoints *Endpoints) (*health.Health, error) {

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    "storefront-checkout",
			Version: "1.0.0",
		}),
		health.WithSystemInfo(),
		health.WithChecks(
			health.Config{
				Name:      "database",
				Timeout:   3 * time.Second,
				SkipOnErr: false,
				Check: postgres.New(postgres.Config{
					DSN: cfg.Database.GetDSN(),
				}),
			},
			health.Config{
				Name:      "redis",
				Timeout:   2 * time.Second,
				SkipOnErr: false,
				Check: healthRedis.New(
					healthRedis.Config{
						DSN: cfg.RedisConnect.GetDSN(),
					},
				),
			},
			health.Config{
				Name:    "payment-gateway",
				Timeout: 2 * time.Second,
				// checkout is degraded, not down, when the gateway is misconfigured
				SkipOnErr: true,
				Check:     GatewayCheck(endpoints.Settings, endpoints.Gateways),
			},
		),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}

// GatewayCheck fails when the store's active gateway cannot take payments.
func GatewayCheck(settings SettingsSource, gateways GatewayResolver) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if settings == nil || gateways == nil {
			return fmt.Errorf("payment gateway check is not configured")
		}

		snapshot, err := settings.Current(ctx)
		if err != nil {
			return fmt.Errorf("failed to load store settings: %w", err)
		}

		if _, err := gateways.Resolve(snapshot, ""); err != nil {
			return fmt.Errorf("active gateway %s unusable: %w", snapshot.ActiveGateway, err)
		}

		return nil
	}
}
