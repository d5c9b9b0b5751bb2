package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/support-desk/pkg/util"
)

// LoginLimiter throttles credential attempts per email and client address
// using a Redis counter with a rolling window. When Redis is unreachable
// the limiter fails open: slower brute force beats locked-out users.
type LoginLimiter struct {
	client *redis.Client
	max    int
	window time.Duration
	logger *zap.Logger
}

// NewLoginLimiter builds a limiter. A nil client disables throttling.
func NewLoginLimiter(client *redis.Client, max int, window time.Duration, logger *zap.Logger) *LoginLimiter {
	if max <= 0 {
		max = 10
	}
	return &LoginLimiter{client: client, max: max, window: window, logger: logger}
}

// Allow records one attempt and rejects when the window budget is spent.
func (l *LoginLimiter) Allow(ctx context.Context, email, addr string) error {
	if l == nil || l.client == nil {
		return nil
	}

	key := attemptKey(email, addr)
	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		l.logger.Warn("login limiter unavailable", zap.Error(err))
		return nil
	}
	if count == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			l.logger.Warn("login limiter expire failed", zap.Error(err))
		}
	}
	if count > int64(l.max) {
		return apperrors.NewRateLimited("too many login attempts, try again later")
	}
	return nil
}

// Reset clears the counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, email, addr string) {
	if l == nil || l.client == nil {
		return
	}
	if err := l.client.Del(ctx, attemptKey(email, addr)).Err(); err != nil {
		l.logger.Warn("login limiter reset failed", zap.Error(err))
	}
}

func attemptKey(email, addr string) string {
	return fmt.Sprintf("login_attempts:%s:%s", email, addr)
}
