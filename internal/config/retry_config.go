package config

import "time"

// RetryConfig defines how correction requests are retried
type RetryConfig struct {
	// Total number of attempts including the first one
	MaxAttempts int `json:"max_attempts,omitempty" yaml:"max_attempts,omitempty" validate:"omitempty,min=1,max=10"`
	// Base delay for rate-limit backoff, doubled on every attempt
	BaseDelayMs int `json:"base_delay_ms,omitempty" yaml:"base_delay_ms,omitempty" validate:"omitempty,min=1"`
	// Upper bound of the random jitter added to rate-limit backoff
	MaxJitterMs int `json:"max_jitter_ms,omitempty" yaml:"max_jitter_ms,omitempty" validate:"omitempty,min=0"`
	// Fixed delay after a network failure
	NetworkDelayMs int `json:"network_delay_ms,omitempty" yaml:"network_delay_ms,omitempty" validate:"omitempty,min=0"`
	// Cap on any single delay
	MaxDelayMs int `json:"max_delay_ms,omitempty" yaml:"max_delay_ms,omitempty" validate:"omitempty,min=1"`
	// Deadline of a single attempt
	AttemptTimeoutSecs int `json:"attempt_timeout_secs,omitempty" yaml:"attempt_timeout_secs,omitempty" validate:"omitempty,min=1,max=600"`
	// Enable jitter to randomize rate-limit delays slightly
	EnableJitter bool `json:"enable_jitter" yaml:"enable_jitter"`
	// HTTP status codes that are reported as rate limiting (default: [429])
	RetryStatusCodes []int `json:"retry_status_codes,omitempty" yaml:"retry_status_codes,omitempty" validate:"dive,min=400,max=599"`
}

// NewDefaultRetryConfig creates default retry configuration
func NewDefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:        DefaultRetryMaxAttempts,
		BaseDelayMs:        DefaultRetryBaseDelayMs,
		MaxJitterMs:        DefaultRetryMaxJitterMs,
		NetworkDelayMs:     DefaultRetryNetworkDelayMs,
		MaxDelayMs:         DefaultRetryMaxDelayMs,
		AttemptTimeoutSecs: DefaultRetryAttemptTimeoutSec,
		EnableJitter:       true,
		RetryStatusCodes:   []int{429},
	}
}

// BaseDelay returns the base backoff delay
func (rc RetryConfig) BaseDelay() time.Duration {
	return time.Duration(rc.BaseDelayMs) * time.Millisecond
}

// MaxJitter returns the jitter upper bound, zero when jitter is disabled
func (rc RetryConfig) MaxJitter() time.Duration {
	if !rc.EnableJitter {
		return 0
	}
	return time.Duration(rc.MaxJitterMs) * time.Millisecond
}

// NetworkDelay returns the fixed delay used after network failures
func (rc RetryConfig) NetworkDelay() time.Duration {
	return time.Duration(rc.NetworkDelayMs) * time.Millisecond
}

// MaxDelay returns the cap on a single delay
func (rc RetryConfig) MaxDelay() time.Duration {
	return time.Duration(rc.MaxDelayMs) * time.Millisecond
}

// AttemptTimeout returns the deadline of one attempt
func (rc RetryConfig) AttemptTimeout() time.Duration {
	return time.Duration(rc.AttemptTimeoutSecs) * time.Second
}
