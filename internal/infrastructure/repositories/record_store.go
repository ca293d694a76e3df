package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iclaudiumihaila/pe-foc-de-lemne-sub004/domain"
)

// RecordStoreImpl implements domain.RecordStore using Redis. Records are
// stored as JSON with a Redis TTL; when the decoded value implements
// domain.Expirable the read path additionally enforces the record's own
// deadline, so a stale value is never returned even if Redis cleanup lags.
type RecordStoreImpl struct {
	client *redis.Client
}

// NewRecordStore creates a new Redis-backed expiring record store.
func NewRecordStore(client *redis.Client) domain.RecordStore {
	return &RecordStoreImpl{client: client}
}

// Put implements domain.RecordStore. It upserts the record and schedules
// expiry after ttl.
func (s *RecordStoreImpl) Put(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	return s.client.Set(ctx, key, data, ttl).Err()
}

// Get implements domain.RecordStore. It reports found=false for a missing or
// expired record; an expired record found in Redis is deleted on the spot.
func (s *RecordStoreImpl) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal record: %w", err)
	}

	if exp, ok := dest.(domain.Expirable); ok && exp.ExpiredAt(time.Now()) {
		s.client.Del(ctx, key)
		return false, nil
	}

	return true, nil
}

// Take implements domain.RecordStore. Consumption rides on Redis GETDEL, so
// of two concurrent takers exactly one observes the record.
func (s *RecordStoreImpl) Take(ctx context.Context, key string, dest any) (bool, error) {
	data, err := s.client.GetDel(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal record: %w", err)
	}

	if exp, ok := dest.(domain.Expirable); ok && exp.ExpiredAt(time.Now()) {
		return false, nil
	}

	return true, nil
}

// Delete implements domain.RecordStore. Deleting an absent key is not an error.
func (s *RecordStoreImpl) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}
