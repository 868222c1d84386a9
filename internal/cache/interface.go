package cache

import (
	"context"
	"time"
)

// Loader produces the value for a cache miss.
type Loader func(ctx context.Context) (any, error)

type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// Remember fills value from the cache, or from load on a miss. Concurrent
	// misses on one key share a single load.
	Remember(ctx context.Context, key string, ttl time.Duration, value any, load Loader) error
}

func Key(prefix string, id string) string {
	return prefix + ":" + id
}

const (
	SettingsKeyPrefix  = "settings"
	SweepLockPrefix    = "lock:cart-sweep"
	CheckoutRatePrefix = "checkout_attempts"
)

// SettingsKey is the single cache slot of the store settings document.
var SettingsKey = Key(SettingsKeyPrefix, "store")
