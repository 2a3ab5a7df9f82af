package rediscache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-auth-api/internal/config"
	"github.com/go-auth-api/internal/domain"
	"github.com/redis/go-redis/v9"
)

// Cache key namespaces owned by the auth core.
func VerificationKey(email string) string {
	return "verification:" + email
}

func PasswordResetKey(email string) string {
	return "passwordReset:" + email
}

// Cache is a key→value store with per-key TTL. Expiry is governed by the
// TTL alone; there is no sweep job.
type Cache interface {
	SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error
	// Get returns the live value, or an error wrapping domain.ErrNotFound
	// when the key is absent or expired.
	Get(ctx context.Context, key string) (string, error)
	// TTL returns the remaining lifetime of key; zero or negative means
	// absent or expired.
	TTL(ctx context.Context, key string) (time.Duration, error)
	Delete(ctx context.Context, key string) error
}

// NewClient creates a Redis client from config.
func NewClient(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

type cache struct {
	rdb redis.UniversalClient
}

// NewCache wraps a Redis client in the Cache contract.
func NewCache(rdb redis.UniversalClient) Cache {
	return &cache{rdb: rdb}
}

func (c *cache) SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := c.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

func (c *cache) Get(ctx context.Context, key string) (string, error) {
	v, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", fmt.Errorf("cache key %s: %w", key, domain.ErrNotFound)
		}
		return "", fmt.Errorf("cache get %s: %w", key, err)
	}
	return v, nil
}

func (c *cache) TTL(ctx context.Context, key string) (time.Duration, error) {
	d, err := c.rdb.TTL(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("cache ttl %s: %w", key, err)
	}
	// go-redis reports -2ns for a missing key and -1ns for a key without
	// expiry; both collapse to "no live entry" here.
	if d < 0 {
		return 0, nil
	}
	return d, nil
}

func (c *cache) Delete(ctx context.Context, key string) error {
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("cache delete %s: %w", key, err)
	}
	return nil
}
