package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *GlobalConfig)
		wantErr string
	}{
		{
			name:   "defaults",
			mutate: func(cfg *GlobalConfig) {},
		},
		{
			name:    "unknown log level",
			mutate:  func(cfg *GlobalConfig) { cfg.LogConfig.LogLevel = "verbose" },
			wantErr: "loglevel",
		},
		{
			name:    "unknown log format",
			mutate:  func(cfg *GlobalConfig) { cfg.LogConfig.LogFormat = "xml" },
			wantErr: "logformat",
		},
		{
			name:    "too many attempts",
			mutate:  func(cfg *GlobalConfig) { cfg.RetryConfig.MaxAttempts = 50 },
			wantErr: "RetryConfig.MaxAttempts",
		},
		{
			name:    "retry status code outside range",
			mutate:  func(cfg *GlobalConfig) { cfg.RetryConfig.RetryStatusCodes = []int{200} },
			wantErr: "RetryStatusCodes",
		},
		{
			name:    "unknown provider",
			mutate:  func(cfg *GlobalConfig) { cfg.CorrectionConfig.Provider = "openai" },
			wantErr: "Provider",
		},
		{
			name: "base delay above max delay",
			mutate: func(cfg *GlobalConfig) {
				cfg.RetryConfig.BaseDelayMs = 90000
			},
			wantErr: "exceeds max_delay_ms",
		},
		{
			name: "http provider without endpoint",
			mutate: func(cfg *GlobalConfig) {
				cfg.CorrectionConfig.Provider = "http"
				cfg.CorrectionConfig.Endpoint = ""
			},
			wantErr: "endpoint is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultGlobalConfig()
			tt.mutate(cfg)

			err := ValidateConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRetryConfig_Durations(t *testing.T) {
	rc := NewDefaultRetryConfig()

	assert.Equal(t, "2s", rc.BaseDelay().String())
	assert.Equal(t, "1s", rc.MaxJitter().String())
	assert.Equal(t, "2s", rc.NetworkDelay().String())
	assert.Equal(t, "1m0s", rc.MaxDelay().String())
	assert.Equal(t, "1m0s", rc.AttemptTimeout().String())

	rc.EnableJitter = false
	assert.Zero(t, rc.MaxJitter())
}
