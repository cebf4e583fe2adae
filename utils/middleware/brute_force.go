package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sahilchouksey/studyflow/utils/cache"
	"github.com/sahilchouksey/studyflow/utils/response"
)

// AttemptStore is the subset of the Redis cache used for lockouts
type AttemptStore interface {
	Exists(ctx context.Context, key string) (bool, error)
	TTL(ctx context.Context, key string) (time.Duration, error)
	Increment(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, expiration time.Duration) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

var _ AttemptStore = (*cache.RedisCache)(nil)

// BruteForceProtection handles brute force protection using Redis.
// Counters are kept per scope and IP, so one guard can protect several secrets.
type BruteForceProtection struct {
	store AttemptStore
	scope string
}

// NewBruteForceProtection creates a new brute force protection instance.
// A nil store disables the guard.
func NewBruteForceProtection(store AttemptStore, scope string) *BruteForceProtection {
	return &BruteForceProtection{
		store: store,
		scope: scope,
	}
}

func (b *BruteForceProtection) keys(ip string) (attemptKey, lockKey string) {
	return fmt.Sprintf("brute_force:%s:attempts:%s", b.scope, ip),
		fmt.Sprintf("brute_force:%s:lock:%s", b.scope, ip)
}

// CheckLocked answers 429 when ip is locked and reports whether it did
func (b *BruteForceProtection) CheckLocked(c *fiber.Ctx, ip string) (bool, error) {
	if b == nil || b.store == nil {
		return false, nil
	}
	_, lockKey := b.keys(ip)

	// If Redis is down, allow the request
	locked, err := b.store.Exists(c.Context(), lockKey)
	if err != nil || !locked {
		return false, nil
	}

	// Get TTL for retry time
	ttl, _ := b.store.TTL(c.Context(), lockKey)
	retryAfter := int(ttl.Seconds())
	if retryAfter < 0 {
		retryAfter = 60 // Default to 60 seconds
	}

	c.Set("Retry-After", fmt.Sprintf("%d", retryAfter))
	return true, response.TooManyRequests(c, fmt.Sprintf("Too many failed attempts. Try again in %d seconds", retryAfter))
}

// RecordFailedAttempt records a failed attempt and applies progressive lockouts
func (b *BruteForceProtection) RecordFailedAttempt(ctx context.Context, ip string) error {
	if b == nil || b.store == nil {
		return nil
	}
	attemptKey, lockKey := b.keys(ip)

	// Increment attempt counter
	attempts, err := b.store.Increment(ctx, attemptKey)
	if err != nil {
		// If Redis is down, just return without blocking
		return nil
	}

	// Set expiry on attempts counter (15 minute window)
	if attempts == 1 {
		b.store.Expire(ctx, attemptKey, 15*time.Minute)
	}

	// Apply progressive lockouts
	var lockDuration time.Duration
	switch {
	case attempts >= 25:
		lockDuration = 24 * time.Hour
	case attempts >= 10:
		lockDuration = 1 * time.Hour
	case attempts >= 5:
		lockDuration = 2 * time.Minute
	default:
		return nil
	}

	return b.store.Set(ctx, lockKey, "locked", lockDuration)
}

// RecordSuccessfulAttempt clears failed attempts for ip
func (b *BruteForceProtection) RecordSuccessfulAttempt(ctx context.Context, ip string) error {
	if b == nil || b.store == nil {
		return nil
	}
	attemptKey, lockKey := b.keys(ip)
	return b.store.Delete(ctx, attemptKey, lockKey)
}
