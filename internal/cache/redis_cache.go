package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/config"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

type redisCache struct {
	client redis.Cmdable
	cfg    *config.CacheConfig
	group  singleflight.Group
}

func NewRedisCache(client redis.Cmdable, cfg *config.CacheConfig) Cache {
	return &redisCache{
		client: client,
		cfg:    cfg,
	}
}

func (r *redisCache) Get(ctx context.Context, key string, value any) (bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}

		return false, fmt.Errorf("failed to get key %s from redis: %w", key, err)
	}

	if err := json.Unmarshal(data, value); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache data for key %s: %w", key, err)
	}

	return true, nil
}

func (r *redisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for key %s: %w", key, err)
	}

	if ttl <= 0 {
		ttl = r.cfg.DefaultTTL
	}

	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set key %s in redis: %w", key, err)
	}

	return nil
}

func (r *redisCache) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete key %s from redis: %w", key, err)
	}

	return nil
}

// Remember treats Redis as optional: read and write failures are logged and
// the loader result is still returned.
func (r *redisCache) Remember(ctx context.Context, key string, ttl time.Duration, value any, load Loader) error {
	logger := middleware.LoggerFromContext(ctx)

	found, err := r.Get(ctx, key, value)
	if err != nil {
		logger.Warn("Cache read failed, loading from source", slog.String("key", key), slog.Any("error", err))
	}

	if found {
		return nil
	}

	data, err, shared := r.group.Do(key, func() (any, error) {
		loaded, err := load(ctx)
		if err != nil {
			return nil, err
		}

		encoded, err := json.Marshal(loaded)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal loaded value for key %s: %w", key, err)
		}

		if ttl <= 0 {
			ttl = r.cfg.DefaultTTL
		}

		if err := r.client.Set(ctx, key, encoded, ttl).Err(); err != nil {
			logger.Warn("Cache write failed", slog.String("key", key), slog.Any("error", err))
		}

		return encoded, nil
	})
	if err != nil {
		return err
	}

	if shared {
		logger.Debug("Cache load shared with concurrent caller", slog.String("key", key))
	}

	if err := json.Unmarshal(data.([]byte), value); err != nil {
		return fmt.Errorf("failed to decode loaded value for key %s: %w", key, err)
	}

	return nil
}
