package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxAttempts = 5
	defaultWindow      = 15 * time.Minute
)

// AttemptLimiter counts failed credential checks per username.
// Key format: auth:fail:<username>
// The counter expires one window after the first failure, so a lockout lifts
// on its own.
type AttemptLimiter struct {
	client      *redis.Client
	maxAttempts int64
	window      time.Duration
}

// NewAttemptLimiter creates an AttemptLimiter. Non-positive values fall back
// to five attempts per fifteen minutes.
func NewAttemptLimiter(client *redis.Client, maxAttempts int, window time.Duration) *AttemptLimiter {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if window <= 0 {
		window = defaultWindow
	}
	return &AttemptLimiter{client: client, maxAttempts: int64(maxAttempts), window: window}
}

// Locked reports whether username reached the failure threshold.
func (l *AttemptLimiter) Locked(ctx context.Context, username string) (bool, error) {
	n, err := l.client.Get(ctx, l.key(username)).Int64()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("attempt check: %w", err)
	}
	return n >= l.maxAttempts, nil
}

// RecordFailure increments the counter, starting the window on the first hit.
func (l *AttemptLimiter) RecordFailure(ctx context.Context, username string) error {
	key := l.key(username)
	pipe := l.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record failed attempt: %w", err)
	}
	return nil
}

// Reset clears the counter after a successful verification.
func (l *AttemptLimiter) Reset(ctx context.Context, username string) error {
	if err := l.client.Del(ctx, l.key(username)).Err(); err != nil {
		return fmt.Errorf("reset attempts: %w", err)
	}
	return nil
}

func (l *AttemptLimiter) key(username string) string {
	return fmt.Sprintf("auth:fail:%s", username)
}
