package enhance

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores enhancement results by request key
type Cache interface {
	// Get returns the cached value and whether it was present
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// cacheKey identifies one request. The model is part of the key so switching
// providers does not serve another model's output.
func cacheKey(model, label, text string) string {
	h := sha256.New()
	for _, part := range []string{model, label, text} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return "enhance:" + hex.EncodeToString(h.Sum(nil))
}

// MemoryCache is an in-process Cache holding at most MaxEntries values.
// When full, it drops everything and starts over.
type MemoryCache struct {
	mu         sync.RWMutex
	entries    map[string]string
	maxEntries int
}

// NewMemoryCache creates a MemoryCache. maxEntries <= 0 means 1024.
func NewMemoryCache(maxEntries int) *MemoryCache {
	if maxEntries <= 0 {
		maxEntries = 1024
	}
	return &MemoryCache{entries: make(map[string]string), maxEntries: maxEntries}
}

// Get returns the cached value for key. It never fails.
func (c *MemoryCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok, nil
}

// Set stores value under key, clearing the cache first when it is full
func (c *MemoryCache) Set(_ context.Context, key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; !ok && len(c.entries) >= c.maxEntries {
		c.entries = make(map[string]string)
	}
	c.entries[key] = value
	return nil
}

// Len returns the number of cached values
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// RedisCache is a Cache backed by Redis string keys with a TTL
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisCache wraps an existing client. ttl <= 0 keeps values without expiry.
func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	if ttl < 0 {
		ttl = 0
	}
	return &RedisCache{rdb: rdb, ttl: ttl}
}

// NewRedisClient accepts either a redis:// URL or a bare host:port address
func NewRedisClient(addr string) (*redis.Client, error) {
	if addr == "" {
		return nil, fmt.Errorf("redis address is empty")
	}
	if strings.Contains(addr, "://") {
		opt, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("invalid redis URL: %w", err)
		}
		return redis.NewClient(opt), nil
	}
	return redis.NewClient(&redis.Options{Addr: addr}), nil
}

// Get returns the value stored under key. A missing key is a miss, not an error.
func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	s, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return s, true, nil
}

// Set stores value under key with the cache TTL
func (c *RedisCache) Set(ctx context.Context, key, value string) error {
	return c.rdb.Set(ctx, key, value, c.ttl).Err()
}

// Close closes the underlying client
func (c *RedisCache) Close() error {
	return c.rdb.Close()
}
