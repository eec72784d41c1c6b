package cache

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/inkthread/backend/internal/domain/cart"
	"github.com/inkthread/backend/internal/infrastructure/config"
)

// CartStoreFactory creates cart stores based on configuration
type CartStoreFactory struct {
	cartConfig  config.CartConfig
	redisConfig config.RedisConfig
	logger      *zap.Logger
}

// CartStoreFactoryOption is a functional option for configuring the factory
type CartStoreFactoryOption func(*CartStoreFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) CartStoreFactoryOption {
	return func(f *CartStoreFactory) {
		f.logger = logger
	}
}

// NewCartStoreFactory creates a new factory
func NewCartStoreFactory(cartCfg config.CartConfig, redisCfg config.RedisConfig, opts ...CartStoreFactoryOption) *CartStoreFactory {
	f := &CartStoreFactory{
		cartConfig:  cartCfg,
		redisConfig: redisCfg,
		logger:      zap.NewNop(),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateStore creates the cart store named by the configuration. The
// returned closer shuts the store down (redis client or purge goroutine).
func (f *CartStoreFactory) CreateStore() (cart.Store, io.Closer, error) {
	switch f.cartConfig.Store {
	case "redis":
		store, err := f.createRedisStore()
		if err != nil {
			return nil, nil, err
		}
		f.logger.Info("using Redis cart store",
			zap.String("addr", f.redisConfig.Addr()),
			zap.Duration("idle_expiry", f.cartConfig.IdleExpiry))
		return store, store, nil

	case "memory":
		store := NewInMemoryCartStore(f.cartConfig.IdleExpiry, f.cartConfig.PurgeInterval)
		f.logger.Info("using in-memory cart store",
			zap.Duration("idle_expiry", f.cartConfig.IdleExpiry),
			zap.Duration("purge_interval", f.cartConfig.PurgeInterval))
		return store, store, nil

	default:
		return nil, nil, fmt.Errorf("unknown cart store %q", f.cartConfig.Store)
	}
}

// createRedisStore connects a Redis client and wraps it in a cart store
func (f *CartStoreFactory) createRedisStore() (*RedisCartStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     f.redisConfig.Addr(),
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisCartStore(client, f.cartConfig.IdleExpiry), nil
}
