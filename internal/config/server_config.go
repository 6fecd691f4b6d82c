package config

import "time"

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Address         string `json:"address,omitempty" yaml:"address,omitempty"`
	MaxBodySizeMB   int    `json:"max_body_size_mb,omitempty" yaml:"max_body_size_mb,omitempty" validate:"omitempty,min=1,max=100"`
	MaxDiffInputKB  int    `json:"max_diff_input_kb,omitempty" yaml:"max_diff_input_kb,omitempty" validate:"omitempty,min=1"`
	ReadTimeoutSecs int    `json:"read_timeout_secs,omitempty" yaml:"read_timeout_secs,omitempty" validate:"omitempty,min=1"`
	// Proofreading calls can take a while, so the write timeout is generous.
	WriteTimeoutSecs int `json:"write_timeout_secs,omitempty" yaml:"write_timeout_secs,omitempty" validate:"omitempty,min=1"`
}

// NewDefaultServerConfig creates default server configuration
func NewDefaultServerConfig() ServerConfig {
	return ServerConfig{
		Address:          DefaultServerAddress,
		MaxBodySizeMB:    DefaultServerMaxBodySizeMB,
		MaxDiffInputKB:   DefaultServerMaxDiffInputKB,
		ReadTimeoutSecs:  DefaultServerReadTimeoutSec,
		WriteTimeoutSecs: DefaultServerWriteTimeoutSec,
	}
}

// MaxBodyBytes returns the request body limit in bytes
func (sc ServerConfig) MaxBodyBytes() int64 {
	return int64(sc.MaxBodySizeMB) * 1024 * 1024
}

// MaxDiffInputBytes returns the per-text limit of the diff endpoint, falling
// back to the default when unset.
func (sc ServerConfig) MaxDiffInputBytes() int {
	if sc.MaxDiffInputKB <= 0 {
		return DefaultServerMaxDiffInputKB * 1024
	}
	return sc.MaxDiffInputKB * 1024
}

// ReadTimeout returns the read timeout
func (sc ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(sc.ReadTimeoutSecs) * time.Second
}

// WriteTimeout returns the write timeout
func (sc ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(sc.WriteTimeoutSecs) * time.Second
}
