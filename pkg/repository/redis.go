package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/example/littlelemon/pkg/config"
	"github.com/go-redis/redis/v8"
)

type RedisRepository struct {
	client *redis.Client
	config *config.RedisConfig
	now    func() time.Time
}

func NewRedisRepository(cfg *config.RedisConfig) *RedisRepository {
	return &RedisRepository{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
			PoolSize: cfg.PoolSize,
		}),
		config: cfg,
		now:    time.Now,
	}
}

func (r *RedisRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisRepository) Close() error {
	return r.client.Close()
}

// Allow counts a hit against key in the current fixed window and reports
// whether the count is still within limit.
func (r *RedisRepository) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	bucket := r.now().UnixNano() / int64(window)
	windowKey := fmt.Sprintf("throttle:%s:%d", key, bucket)

	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, windowKey)
	pipe.Expire(ctx, windowKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to count request: %w", err)
	}

	return incr.Val() <= int64(limit), nil
}
