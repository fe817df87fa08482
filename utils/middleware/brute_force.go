package middleware

import (
	"fmt"
	"time"

	"github.com/campushub/campus-hub-api/utils/cache"
	"github.com/campushub/campus-hub-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

const (
	maxFailedAttempts = 5
	attemptWindow     = 15 * time.Minute
	lockoutDuration   = 15 * time.Minute
)

// BruteForceProtection throttles repeated failed logins per IP using
// Redis counters. When Redis is unreachable requests pass through;
// cache trouble must not lock out legitimate users.
type BruteForceProtection struct {
	redisCache *cache.RedisCache
}

// NewBruteForceProtection creates a new brute force protection instance
func NewBruteForceProtection(redisCache *cache.RedisCache) *BruteForceProtection {
	return &BruteForceProtection{redisCache: redisCache}
}

func lockKey(ip string) string {
	return fmt.Sprintf("brute_force:lock:%s", ip)
}

func attemptKey(ip string) string {
	return fmt.Sprintf("brute_force:attempts:%s", ip)
}

// CheckLockout middleware rejects requests from locked-out IPs
func (b *BruteForceProtection) CheckLockout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ip := c.IP()

		locked, err := b.redisCache.Exists(c.Context(), lockKey(ip))
		if err != nil {
			return c.Next()
		}

		if locked {
			ttl, _ := b.redisCache.TTL(c.Context(), lockKey(ip))
			retryAfter := int(ttl.Seconds())
			if retryAfter < 0 {
				retryAfter = 60
			}

			c.Set("Retry-After", fmt.Sprintf("%d", retryAfter))
			return response.TooManyRequests(c,
				fmt.Sprintf("Too many failed attempts. Try again in %d seconds", retryAfter))
		}

		return c.Next()
	}
}

// RecordFailedAttempt bumps the failure counter for ip and locks it
// out once the threshold is reached.
func (b *BruteForceProtection) RecordFailedAttempt(c *fiber.Ctx, ip string) {
	count, err := b.redisCache.Incr(c.Context(), attemptKey(ip))
	if err != nil {
		return
	}

	if count == 1 {
		_ = b.redisCache.Expire(c.Context(), attemptKey(ip), attemptWindow)
	}

	if count >= maxFailedAttempts {
		_ = b.redisCache.Set(c.Context(), lockKey(ip), "1", lockoutDuration)
	}
}

// RecordSuccessfulAttempt clears the failure counter for ip
func (b *BruteForceProtection) RecordSuccessfulAttempt(c *fiber.Ctx, ip string) {
	_ = b.redisCache.Delete(c.Context(), attemptKey(ip), lockKey(ip))
}
