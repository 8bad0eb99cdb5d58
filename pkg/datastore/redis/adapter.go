// Package redis provides the key-value adapter variant backed by Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nimburion/unistore/pkg/datastore"
	"github.com/nimburion/unistore/pkg/observability/logger"
)

// Adapter translates the unified contract into GET/SET calls. Values are
// string payloads; a write fully overwrites the previous value, giving the
// same effective idempotence as the object-storage variant.
type Adapter struct {
	client *redis.Client
	logger logger.Logger
	config Config

	mu     sync.RWMutex
	closed bool
}

// Config holds Redis connection configuration.
type Config struct {
	URL              string
	MaxConns         int
	OperationTimeout time.Duration
}

// NewAdapter creates a new Redis adapter with connection pooling.
func NewAdapter(cfg Config, log logger.Logger) (*Adapter, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("redis URL is required")
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	opts.PoolSize = cfg.MaxConns
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = cfg.OperationTimeout
	opts.WriteTimeout = cfg.OperationTimeout

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	log.Info("Redis connection established", "max_conns", cfg.MaxConns)
	return &Adapter{client: client, logger: log, config: cfg}, nil
}

// Client returns the underlying *redis.Client for direct access when needed.
func (a *Adapter) Client() *redis.Client {
	return a.client
}

// ReadData fetches the string value stored at the key.
func (a *Adapter) ReadData(ctx context.Context, identifier string) (any, error) {
	return a.ReadText(ctx, identifier)
}

// ReadText returns the value stored at key. Missing keys fail with ErrNotFound.
func (a *Adapter) ReadText(ctx context.Context, key string) (string, error) {
	if err := a.ensureOpen(); err != nil {
		return "", err
	}
	if err := datastore.ValidateIdentifier(key); err != nil {
		return "", err
	}
	val, err := a.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("%w: key %q", datastore.ErrNotFound, key)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get key %q: %w", key, err)
	}
	return val, nil
}

// WriteData overwrites the value at the key with the string payload data.
// No expiry is set.
func (a *Adapter) WriteData(ctx context.Context, identifier string, data any) error {
	if err := a.ensureOpen(); err != nil {
		return err
	}
	if err := datastore.ValidateIdentifier(identifier); err != nil {
		return err
	}
	text, ok := data.(string)
	if !ok {
		return fmt.Errorf("%w: expected a text payload, got %T", datastore.ErrMalformedData, data)
	}
	if err := a.client.Set(ctx, identifier, text, 0).Err(); err != nil {
		return fmt.Errorf("failed to set key %q: %w", identifier, err)
	}
	return nil
}

// Ping verifies the Redis connection is alive.
func (a *Adapter) Ping(ctx context.Context) error {
	if err := a.ensureOpen(); err != nil {
		return err
	}
	return a.client.Ping(ctx).Err()
}

// HealthCheck verifies the component is operational and can perform its intended function.
func (a *Adapter) HealthCheck(ctx context.Context) error {
	hcCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := a.Ping(hcCtx); err != nil {
		a.logger.Error("Redis health check failed", "error", err)
		return fmt.Errorf("redis health check failed: %w", err)
	}
	return nil
}

// Close releases the client connection pool. Close is idempotent; operations
// after Close fail with ErrClosed.
func (a *Adapter) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	a.mu.Unlock()

	a.logger.Info("closing Redis connection")
	if err := a.client.Close(); err != nil {
		return fmt.Errorf("failed to close redis connection: %w", err)
	}
	return nil
}

func (a *Adapter) ensureOpen() error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		return fmt.Errorf("%w: redis adapter", datastore.ErrClosed)
	}
	return nil
}
