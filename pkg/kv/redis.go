package kv

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/maisonvela/storefront-backend/pkg/config"
	"github.com/redis/go-redis/v9"
)

const keyNamespace = "mv"

// RedisStore adapts a Redis connection to the Store contract. Keys are
// namespaced so the instance can share a database with other services.
type RedisStore struct {
	raw     *redis.Client
	timeout time.Duration
}

// NewRedisStore bootstraps a Redis client with pooling/timeouts and verifies
// connectivity.
func NewRedisStore(ctx context.Context, cfg config.RedisConfig) (*RedisStore, error) {
	opts, err := optionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	timeout := cfg.ReadTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &RedisStore{raw: raw, timeout: timeout}, nil
}

func optionsFromConfig(cfg config.RedisConfig) (*redis.Options, error) {
	if cfg.URL == "" && cfg.Address == "" {
		return nil, errors.New("redis url or address is required")
	}
	var opts *redis.Options
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{
			Addr:     cfg.Address,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}
	if opts.DB == 0 {
		opts.DB = cfg.DB
	}
	if opts.PoolSize == 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if opts.MinIdleConns == 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}
	return opts, nil
}

func (r *RedisStore) Get(key string) (string, error) {
	ctx, cancel := r.opContext()
	defer cancel()

	value, err := r.raw.Get(ctx, r.buildKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (r *RedisStore) Set(key, value string, ttl time.Duration) error {
	ctx, cancel := r.opContext()
	defer cancel()

	return r.raw.Set(ctx, r.buildKey(key), value, ttl).Err()
}

func (r *RedisStore) Delete(key string) error {
	ctx, cancel := r.opContext()
	defer cancel()

	return r.raw.Del(ctx, r.buildKey(key)).Err()
}

func (r *RedisStore) Close() error {
	return r.raw.Close()
}

func (r *RedisStore) opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), r.timeout)
}

func (r *RedisStore) buildKey(parts ...string) string {
	return keyNamespace + ":" + strings.Join(parts, ":")
}
