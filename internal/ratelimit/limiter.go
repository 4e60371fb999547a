package ratelimit

import "context"

// RateLimiter throttles outbound provider calls per named bucket.
type RateLimiter interface {
	Allow(ctx context.Context, bucket string) (bool, error)
	Wait(ctx context.Context, bucket string) error
}
