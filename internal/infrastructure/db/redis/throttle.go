package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	throttleWindow      = 15 * time.Minute
	throttleMaxFailures = 5
)

// SignInThrottle counts failed sign-in attempts in Redis.
// Key format: signin_fail:<email>|<ip>
type SignInThrottle struct {
	client *redis.Client
}

// NewSignInThrottle creates a SignInThrottle wrapping the given Redis client.
func NewSignInThrottle(client *redis.Client) *SignInThrottle {
	return &SignInThrottle{client: client}
}

// Allow reports whether key is still under the failure limit.
func (t *SignInThrottle) Allow(ctx context.Context, key string) (bool, error) {
	n, err := t.client.Get(ctx, t.key(key)).Int64()
	if err == redis.Nil {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("throttle check: %w", err)
	}
	return n < throttleMaxFailures, nil
}

// RecordFailure counts a failed attempt; the counter expires after the window.
func (t *SignInThrottle) RecordFailure(ctx context.Context, key string) error {
	k := t.key(key)
	n, err := t.client.Incr(ctx, k).Result()
	if err != nil {
		return fmt.Errorf("throttle incr: %w", err)
	}
	if n == 1 {
		if err := t.client.Expire(ctx, k, throttleWindow).Err(); err != nil {
			return fmt.Errorf("throttle expire: %w", err)
		}
	}
	return nil
}

// Reset clears the counter after a successful sign-in.
func (t *SignInThrottle) Reset(ctx context.Context, key string) error {
	return t.client.Del(ctx, t.key(key)).Err()
}

func (t *SignInThrottle) key(key string) string {
	return "signin_fail:" + key
}
