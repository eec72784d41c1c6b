package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/inkthread/backend/internal/domain/cart"
	"github.com/inkthread/backend/internal/domain/shared"
)

// mutateRetries bounds the optimistic retry loop when two requests from
// the same user race on the watched cart key
const mutateRetries = 5

// RedisCartStore implements the cart Store on Redis. Each cart is one
// JSON value whose TTL is the idle expiry; any read or mutation resets
// the idle clock. Mutations run under WATCH so concurrent requests from
// the same user never lose each other's writes.
type RedisCartStore struct {
	client     *redis.Client
	keyPrefix  string
	idleExpiry time.Duration
}

// NewRedisCartStore creates a cart store backed by the given Redis client
func NewRedisCartStore(client *redis.Client, idleExpiry time.Duration) *RedisCartStore {
	return &RedisCartStore{
		client:     client,
		keyPrefix:  "cart:",
		idleExpiry: idleExpiry,
	}
}

// Get returns the user's cart, or shared.ErrNotFound if none exists
func (s *RedisCartStore) Get(ctx context.Context, userID string) (*cart.Cart, error) {
	key := s.key(userID)

	payload, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var c cart.Cart
	if err := json.Unmarshal(payload, &c); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}

	// Reading the cart counts as activity, so push the idle expiry out
	s.client.Expire(ctx, key, s.idleExpiry)

	return &c, nil
}

// Mutate applies fn to the user's cart under WATCH and persists the
// result. If the key changes between read and write the transaction is
// retried with a fresh copy.
func (s *RedisCartStore) Mutate(ctx context.Context, userID string, fn func(*cart.Cart) error) (*cart.Cart, error) {
	key := s.key(userID)

	var result *cart.Cart
	txn := func(tx *redis.Tx) error {
		c := cart.NewCart(userID)
		payload, err := tx.Get(ctx, key).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("failed to load cart: %w", err)
		}
		if err == nil {
			if err := json.Unmarshal(payload, c); err != nil {
				return fmt.Errorf("failed to decode cart: %w", err)
			}
		}

		if err := fn(c); err != nil {
			return err
		}

		encoded, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("failed to encode cart: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, encoded, s.idleExpiry)
			return nil
		})
		if err != nil {
			return err
		}

		result = c
		return nil
	}

	for i := 0; i < mutateRetries; i++ {
		err := s.client.Watch(ctx, txn, key)
		if err == nil {
			return result, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, err
	}
	return nil, shared.ErrConcurrencyConflict
}

// Delete removes the user's cart entirely
func (s *RedisCartStore) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, s.key(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

// Close closes the underlying Redis client
func (s *RedisCartStore) Close() error {
	return s.client.Close()
}

func (s *RedisCartStore) key(userID string) string {
	return s.keyPrefix + userID
}

// Ensure RedisCartStore implements the cart Store
var _ cart.Store = (*RedisCartStore)(nil)
