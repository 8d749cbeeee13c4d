package authstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig holds Redis connection and key settings
type RedisConfig struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379/0)
	URL string
	// Key is where the record is stored
	Key string
	// TTL expires the record counted from the last write; reopening the
	// store does not extend it. Zero keeps it forever
	TTL time.Duration

	PoolSize     int
	MinIdleConns int
}

// DefaultRedisConfig returns sensible defaults
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		URL:          "redis://localhost:6379",
		Key:          "cornerkicks:auth",
		PoolSize:     2,
		MinIdleConns: 0,
	}
}

// RedisPersister stores the record as one JSON value, so several
// terminals can share a login
type RedisPersister struct {
	client *redis.Client
	cfg    RedisConfig
}

var _ Persister = (*RedisPersister)(nil)

// NewRedisPersister connects to Redis and verifies the connection
func NewRedisPersister(ctx context.Context, cfg RedisConfig) (*RedisPersister, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return NewRedisPersisterWithClient(client, cfg), nil
}

// NewRedisPersisterWithClient wraps an existing client (for testing)
func NewRedisPersisterWithClient(client *redis.Client, cfg RedisConfig) *RedisPersister {
	if cfg.Key == "" {
		cfg.Key = DefaultRedisConfig().Key
	}
	return &RedisPersister{client: client, cfg: cfg}
}

// Close closes the Redis connection
func (p *RedisPersister) Close() error {
	return p.client.Close()
}

func (p *RedisPersister) Load(ctx context.Context) (*Record, error) {
	data, err := p.client.Get(ctx, p.cfg.Key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}
	return &rec, nil
}

func (p *RedisPersister) Save(ctx context.Context, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return p.client.Set(ctx, p.cfg.Key, data, p.cfg.TTL).Err()
}

func (p *RedisPersister) Clear(ctx context.Context) error {
	return p.client.Del(ctx, p.cfg.Key).Err()
}
