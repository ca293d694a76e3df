package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iclaudiumihaila/pe-foc-de-lemne-sub004/domain"
)

// casMaxRetries bounds the optimistic retry loop on contended keys.
const casMaxRetries = 5

// CartRepositoryImpl implements domain.CartRepository using Redis. Plain
// reads and writes go through the expiring record store; mutations run under
// a WATCH/MULTI compare-and-swap loop so two concurrent writers to the same
// session key never lose an update.
type CartRepositoryImpl struct {
	client *redis.Client
	store  domain.RecordStore
	prefix string
}

// NewCartRepository creates a new cart repository.
func NewCartRepository(client *redis.Client, store domain.RecordStore) domain.CartRepository {
	return &CartRepositoryImpl{
		client: client,
		store:  store,
		prefix: "cart:",
	}
}

// Create implements domain.CartRepository. The Redis TTL is derived from the
// session's own deadline, which stays fixed from creation.
func (r *CartRepositoryImpl) Create(ctx context.Context, cart *domain.CartSession) error {
	ttl := time.Until(cart.ExpiresAt)
	if ttl <= 0 {
		return domain.ErrCartNotFound
	}
	return r.store.Put(ctx, r.prefix+cart.ID, cart, ttl)
}

// Find implements domain.CartRepository. Missing and expired sessions are
// indistinguishable to callers.
func (r *CartRepositoryImpl) Find(ctx context.Context, sessionID string) (*domain.CartSession, error) {
	var cart domain.CartSession
	found, err := r.store.Get(ctx, r.prefix+sessionID, &cart)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.ErrCartNotFound
	}
	return &cart, nil
}

// Update implements domain.CartRepository. The mutate callback may run more
// than once; it must not carry side effects beyond the session itself.
func (r *CartRepositoryImpl) Update(ctx context.Context, sessionID string, mutate func(*domain.CartSession) error) (*domain.CartSession, error) {
	key := r.prefix + sessionID

	for i := 0; i < casMaxRetries; i++ {
		var updated *domain.CartSession

		err := r.client.Watch(ctx, func(tx *redis.Tx) error {
			data, err := tx.Get(ctx, key).Result()
			if err == redis.Nil {
				return domain.ErrCartNotFound
			}
			if err != nil {
				return err
			}

			var cart domain.CartSession
			if err := json.Unmarshal([]byte(data), &cart); err != nil {
				return fmt.Errorf("failed to unmarshal cart session: %w", err)
			}

			// A concurrently expiring session reads as not found.
			now := time.Now()
			if cart.ExpiredAt(now) {
				return domain.ErrCartNotFound
			}

			if err := mutate(&cart); err != nil {
				return err
			}
			cart.UpdatedAt = now

			buf, err := json.Marshal(&cart)
			if err != nil {
				return fmt.Errorf("failed to marshal cart session: %w", err)
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				// Remaining TTL only; the deadline never moves on touch.
				pipe.Set(ctx, key, buf, time.Until(cart.ExpiresAt))
				return nil
			})
			if err == nil {
				updated = &cart
			}
			return err
		}, key)

		if err == redis.TxFailedErr {
			continue
		}
		if err != nil {
			return nil, err
		}
		return updated, nil
	}

	return nil, domain.ErrConcurrentModification
}

// Delete implements domain.CartRepository. Idempotent.
func (r *CartRepositoryImpl) Delete(ctx context.Context, sessionID string) error {
	return r.store.Delete(ctx, r.prefix+sessionID)
}
