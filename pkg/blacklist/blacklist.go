// Package blacklist tracks revoked session tokens. The store lives behind an
// interface so production can share revocation state across instances via
// Redis while tests run against a plain in-memory map.
package blacklist

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Blacklist is the revocation set consulted on every authenticated request.
type Blacklist interface {
	// Add inserts a token with the given TTL. Idempotent.
	Add(ctx context.Context, token string, ttl time.Duration) error
	// Contains reports whether the token has been revoked.
	Contains(ctx context.Context, token string) (bool, error)
}

// RedisBlacklist stores revoked tokens in Redis with a TTL matching the
// token's remaining lifetime, so entries expire on their own.
type RedisBlacklist struct {
	redis *redis.Client
}

func NewRedisBlacklist(redisClient *redis.Client) *RedisBlacklist {
	return &RedisBlacklist{redis: redisClient}
}

func redisKey(token string) string {
	return fmt.Sprintf("blacklist:token:%s", token)
}

func (b *RedisBlacklist) Add(ctx context.Context, token string, ttl time.Duration) error {
	// Already expired tokens fail verification anyway.
	if ttl <= 0 {
		return nil
	}

	if err := b.redis.Set(ctx, redisKey(token), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to add token to blacklist: %w", err)
	}

	return nil
}

func (b *RedisBlacklist) Contains(ctx context.Context, token string) (bool, error) {
	exists, err := b.redis.Exists(ctx, redisKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check blacklist: %w", err)
	}

	return exists > 0, nil
}

// MemoryBlacklist keeps revoked tokens in a process-local map. Suitable for
// tests and single-instance deployments; state is lost on restart.
type MemoryBlacklist struct {
	mu     sync.RWMutex
	tokens map[string]time.Time // token -> expiry of the blacklist entry
}

func NewMemoryBlacklist() *MemoryBlacklist {
	return &MemoryBlacklist{tokens: make(map[string]time.Time)}
}

func (b *MemoryBlacklist) Add(_ context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.tokens[token] = time.Now().Add(ttl)
	return nil
}

func (b *MemoryBlacklist) Contains(_ context.Context, token string) (bool, error) {
	b.mu.RLock()
	expiry, ok := b.tokens[token]
	b.mu.RUnlock()

	if !ok {
		return false, nil
	}

	if time.Now().After(expiry) {
		b.mu.Lock()
		delete(b.tokens, token)
		b.mu.Unlock()
		return false, nil
	}

	return true, nil
}
