package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/opstracker/backend/internal/domain/shared"
	"github.com/opstracker/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const sweepInterval = 5 * time.Minute

// NewIdempotencyStore returns a Redis-backed store when Redis is enabled
// and reachable. When Redis is disabled, or unreachable and allowFallback is
// set, it returns an in-memory store.
func NewIdempotencyStore(ctx context.Context, cfg config.RedisConfig, allowFallback bool, log *zap.Logger) (shared.IdempotencyStore, error) {
	if !cfg.Enabled {
		log.Info("Redis disabled, using in-memory idempotency store")
		return NewInMemoryIdempotencyStore(sweepInterval), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		if !allowFallback {
			return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Addr(), err)
		}
		log.Warn("Redis unreachable, falling back to in-memory idempotency store",
			zap.String("addr", cfg.Addr()),
			zap.Error(err),
		)
		return NewInMemoryIdempotencyStore(sweepInterval), nil
	}

	log.Info("Using Redis idempotency store", zap.String("addr", cfg.Addr()))
	return NewRedisIdempotencyStore(client, ""), nil
}
