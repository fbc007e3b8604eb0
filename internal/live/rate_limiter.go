package live

import (
	"fmt"
	"time"
)

// RateLimitConfig defines rate limit rules for metric writes
type RateLimitConfig struct {
	MaxStepUpdates   int           // per window
	MaxWaterUpdates  int           // per window
	MaxWeightUpdates int           // per window
	Window           time.Duration // shared time window
}

// DefaultRateLimitConfig returns the default limits. Step updates come
// from the pedometer and are frequent; water and weight are manual.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		MaxStepUpdates:   60,
		MaxWaterUpdates:  20,
		MaxWeightUpdates: 10,
		Window:           time.Minute,
	}
}

// RateLimiter handles fixed-window rate limiting for metric updates
type RateLimiter struct {
	config RateLimitConfig
}

// NewRateLimiter creates a new RateLimiter instance
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{config: DefaultRateLimitConfig()}
}

func (rl *RateLimiter) limitFor(metric string) int {
	switch metric {
	case "steps":
		return rl.config.MaxStepUpdates
	case "water":
		return rl.config.MaxWaterUpdates
	case "weight":
		return rl.config.MaxWeightUpdates
	default:
		return rl.config.MaxWaterUpdates
	}
}

// AllowMetricUpdate checks whether the user may record another update
// for the given metric inside the current window. Fails open when
// Redis is not configured or errors out.
func (rl *RateLimiter) AllowMetricUpdate(userID, metric string) bool {
	if !Enabled() {
		return true
	}

	key := fmt.Sprintf("ratelimit:%s:%s", metric, userID)
	count, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		return true
	}
	if count == 1 {
		rdb.Expire(ctx, key, rl.config.Window)
	}
	return count <= int64(rl.limitFor(metric))
}
