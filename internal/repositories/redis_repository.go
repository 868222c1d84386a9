package repository

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/cache"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/config"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RateLimitRepository counts checkout attempts per owner in a sliding window.
type RateLimitRepository interface {
	CheckCheckoutRateLimit(ctx context.Context, ownerID uuid.UUID) (allowed bool, remaining int, retryAfter int, err error)
}

type redisRepository struct {
	client redis.Cmdable
	cfg    config.RateConfig
	now    func() time.Time
}

func NewRedisClient(cfg *config.Config) (*redis.Client, error) {

	redisURL := cfg.RedisConnect.GetDSN()
	slog.Info("Connecting to Redis", slog.String("url", fmt.Sprintf("redis://%s:<password>@%s:%s", cfg.RedisConnect.Username, cfg.RedisConnect.Host, cfg.RedisConnect.Port)))

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		slog.Error("Failed to parse Redis URL", slog.Any("error", err))
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	opt.DB = cfg.RedisConnect.DB

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		slog.Error("Failed to connect to Redis", slog.Any("error", err))
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	slog.Info("✅ Successfully connected to Redis")
	return client, nil
}

func NewRateLimitRepo(client redis.Cmdable, cfg config.RateConfig) RateLimitRepository {
	return &redisRepository{client: client, cfg: cfg, now: time.Now}
}

// CheckCheckoutRateLimit records one attempt and returns whether it fits in
// the window, how many attempts are left and the seconds to wait otherwise.
func (r *redisRepository) CheckCheckoutRateLimit(ctx context.Context, ownerID uuid.UUID) (bool, int, int, error) {

	logger := middleware.LoggerFromContext(ctx)

	key := cache.Key(cache.CheckoutRatePrefix, ownerID.String())

	now := r.now()
	windowStart := now.Add(-r.cfg.WindowSize).UnixNano()

	// members are unique per attempt; scores are nanosecond timestamps
	member := strconv.FormatInt(now.UnixNano(), 10) + "-" + uuid.NewString()

	pipe := r.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.UnixNano()), Member: member})
	count := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, r.cfg.WindowSize)

	if _, err := pipe.Exec(ctx); err != nil {
		logger.Error("Redis pipeline execution failed for rate limit", slog.String("key", key), slog.Any("error", err))
		return false, 0, 0, fmt.Errorf("redis pipeline error for rate limit check: %w", err)
	}

	attempts := count.Val()

	if attempts > r.cfg.MaxAttempts {

		scores, err := r.client.ZRangeWithScores(ctx, key, 0, 0).Result()
		if err != nil || len(scores) == 0 {
			logger.Error("Failed to get oldest attempt time for rate limit", slog.String("key", key), slog.Any("error", err))
			return false, 0, int(r.cfg.WindowSize.Seconds()), fmt.Errorf("failed to get oldest attempt time: %w", err)
		}

		oldest := time.Unix(0, int64(scores[0].Score))
		retryAfter := max(int(math.Ceil(oldest.Add(r.cfg.WindowSize).Sub(now).Seconds())), 1)

		logger.Warn("Checkout rate limit exceeded", slog.String("owner_id", ownerID.String()), slog.Int64("attempts", attempts))
		return false, 0, retryAfter, nil
	}

	remaining := int(r.cfg.MaxAttempts - attempts)

	logger.Debug("Checkout rate limit check passed", slog.String("owner_id", ownerID.String()), slog.Int64("attempts", attempts), slog.Int("remaining", remaining))
	return true, remaining, 0, nil
}
