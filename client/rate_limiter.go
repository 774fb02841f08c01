package client

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// RateLimiter is a token bucket shared by every Gemini call made through one client.
type RateLimiter struct {
	tokens         int
	maxTokens      int
	refillRate     time.Duration
	lastRefillTime time.Time
	mu             sync.Mutex
}

// NewRateLimiter creates a limiter holding maxTokens that regains one token every refillRate.
func NewRateLimiter(maxTokens int, refillRate time.Duration) *RateLimiter {
	return &RateLimiter{
		tokens:         maxTokens,
		maxTokens:      maxTokens,
		refillRate:     refillRate,
		lastRefillTime: time.Now(),
	}
}

// Wait blocks until a token is available or ctx is done.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	for {
		rl.mu.Lock()
		rl.refill()
		if rl.tokens > 0 {
			rl.tokens--
			rl.mu.Unlock()
			return nil
		}
		rl.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(100 * time.Millisecond):
		}
	}
}

func (rl *RateLimiter) refill() {
	now := time.Now()
	tokensToAdd := int(now.Sub(rl.lastRefillTime) / rl.refillRate)
	if tokensToAdd <= 0 {
		return
	}

	rl.tokens += tokensToAdd
	if rl.tokens > rl.maxTokens {
		rl.tokens = rl.maxTokens
	}
	rl.lastRefillTime = now
}

// limited makes every invocation of call take a token from rl first, so
// retries are rate limited too. A nil rl returns call unchanged.
func limited[T any](rl *RateLimiter, call func(context.Context) (T, error)) func(context.Context) (T, error) {
	if rl == nil {
		return call
	}
	return func(ctx context.Context) (T, error) {
		if err := rl.Wait(ctx); err != nil {
			var zero T
			return zero, fmt.Errorf("rate limiter: %w", err)
		}
		return call(ctx)
	}
}
