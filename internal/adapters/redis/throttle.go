package redis

// Package redis provides Redis-based adapters for the shop auth system.

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultThrottlePrefix = "auth:login_attempts:"

// LoginThrottle limits sign-in attempts per username using a fixed-window
// Redis counter. It implements ports.LoginThrottle.
type LoginThrottle struct {
	client      redis.UniversalClient
	prefix      string
	maxAttempts int
	window      time.Duration
}

// NewLoginThrottle creates a throttle allowing maxAttempts sign-in attempts
// per username within the given window.
func NewLoginThrottle(client redis.UniversalClient, maxAttempts int, window time.Duration) *LoginThrottle {
	return &LoginThrottle{
		client:      client,
		prefix:      defaultThrottlePrefix,
		maxAttempts: maxAttempts,
		window:      window,
	}
}

// Allow records an attempt for the username and reports whether it is still
// within the attempt budget for the current window.
func (t *LoginThrottle) Allow(ctx context.Context, username string) (bool, error) {
	key := t.prefix + username

	count, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("increment login attempts: %w", err)
	}

	// Fixed-window semantics: the first hit in the window sets the TTL.
	if count == 1 {
		if err := t.client.Expire(ctx, key, t.window).Err(); err != nil {
			return false, fmt.Errorf("set login attempt window: %w", err)
		}
	}

	return count <= int64(t.maxAttempts), nil
}

// Reset clears the attempt counter for the username. Called after a
// successful sign-in so earlier failures do not count against the next window.
func (t *LoginThrottle) Reset(ctx context.Context, username string) error {
	if err := t.client.Del(ctx, t.prefix+username).Err(); err != nil {
		return fmt.Errorf("reset login attempts: %w", err)
	}
	return nil
}
