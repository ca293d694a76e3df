package repositories

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/iclaudiumihaila/pe-foc-de-lemne-sub004/domain"
)

// RateLimiterImpl implements domain.RateLimiter with a Redis sorted set per
// key: members are issuance events scored by their timestamp. Events older
// than the trailing window are pruned before counting, so the cap always
// applies to the rolling window, not a fixed bucket.
type RateLimiterImpl struct {
	client *redis.Client
	prefix string
	window time.Duration
	limit  int
}

// NewRateLimiter creates a sliding-window rate limiter.
func NewRateLimiter(client *redis.Client, prefix string, window time.Duration, limit int) domain.RateLimiter {
	return &RateLimiterImpl{
		client: client,
		prefix: prefix,
		window: window,
		limit:  limit,
	}
}

// Allow implements domain.RateLimiter. The prune-count-record sequence runs
// under WATCH so two concurrent callers cannot both slip past the cap.
func (r *RateLimiterImpl) Allow(ctx context.Context, key string) error {
	fullKey := r.prefix + key

	for i := 0; i < casMaxRetries; i++ {
		err := r.client.Watch(ctx, func(tx *redis.Tx) error {
			now := time.Now()
			cutoff := strconv.FormatInt(now.Add(-r.window).UnixNano(), 10)

			if err := tx.ZRemRangeByScore(ctx, fullKey, "0", cutoff).Err(); err != nil {
				return err
			}

			count, err := tx.ZCard(ctx, fullKey).Result()
			if err != nil {
				return err
			}
			if count >= int64(r.limit) {
				return domain.ErrRateLimited
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.ZAdd(ctx, fullKey, redis.Z{
					Score:  float64(now.UnixNano()),
					Member: uuid.NewString(),
				})
				pipe.Expire(ctx, fullKey, r.window)
				return nil
			})
			return err
		}, fullKey)

		if err == redis.TxFailedErr {
			continue
		}
		return err
	}

	return domain.ErrConcurrentModification
}
