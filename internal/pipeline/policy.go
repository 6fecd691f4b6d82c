package pipeline

import (
	"math/rand/v2"
	"time"

	"github.com/aleister1102/grammarwhiz/internal/config"
	"github.com/aleister1102/grammarwhiz/internal/correction"
)

// RetryPolicy decides how many attempts a request gets and how long to
// wait between them.
type RetryPolicy struct {
	MaxAttempts    int
	BaseDelay      time.Duration // Rate-limit delay before the second attempt
	MaxJitter      time.Duration
	NetworkDelay   time.Duration
	MaxDelay       time.Duration
	AttemptTimeout time.Duration // 0 disables the per-attempt deadline
}

// NewRetryPolicy builds a policy from configuration
func NewRetryPolicy(cfg config.RetryConfig) RetryPolicy {
	policy := RetryPolicy{
		MaxAttempts:    cfg.MaxAttempts,
		BaseDelay:      cfg.BaseDelay(),
		MaxJitter:      cfg.MaxJitter(),
		NetworkDelay:   cfg.NetworkDelay(),
		MaxDelay:       cfg.MaxDelay(),
		AttemptTimeout: cfg.AttemptTimeout(),
	}
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	return policy
}

// DefaultRetryPolicy returns the policy for the default retry configuration
func DefaultRetryPolicy() RetryPolicy {
	return NewRetryPolicy(config.NewDefaultRetryConfig())
}

// Delay returns the wait after a failed attempt (1-based). Rate limiting
// backs off exponentially, never below RetryAfter, and then adds jitter;
// network failures wait a fixed delay. MaxDelay caps everything but the
// jitter, so clients that reached the cap still spread out.
func (p RetryPolicy) Delay(attempt int, err *correction.ServiceError, jitter time.Duration) time.Duration {
	if err.Kind != correction.KindRateLimited {
		return p.capped(p.NetworkDelay)
	}

	delay := p.BaseDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
		if p.MaxDelay > 0 && delay >= p.MaxDelay {
			break
		}
	}
	delay = max(p.capped(delay), p.capped(err.RetryAfter))
	return delay + jitter
}

func (p RetryPolicy) capped(d time.Duration) time.Duration {
	if p.MaxDelay > 0 && d > p.MaxDelay {
		return p.MaxDelay
	}
	return d
}

// randomJitter returns a uniform duration in [0, max].
func randomJitter(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}
	return time.Duration(rand.Int64N(int64(max) + 1))
}
