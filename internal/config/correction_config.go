package config

import "time"

// CorrectionConfig configures the correction service collaborator
type CorrectionConfig struct {
	// Provider selects the backend: "gemini" calls the model directly,
	// "http" calls a running GrammarWhiz server.
	Provider           string  `json:"provider,omitempty" yaml:"provider,omitempty" validate:"omitempty,oneof=gemini http"`
	APIKey             string  `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	Model              string  `json:"model,omitempty" yaml:"model,omitempty"`
	Temperature        float32 `json:"temperature,omitempty" yaml:"temperature,omitempty" validate:"omitempty,min=0,max=2"`
	Endpoint           string  `json:"endpoint,omitempty" yaml:"endpoint,omitempty" validate:"omitempty,url"`
	RequestTimeoutSecs int     `json:"request_timeout_secs,omitempty" yaml:"request_timeout_secs,omitempty" validate:"omitempty,min=1"`
	Insecure           bool    `json:"insecure_skip_verify,omitempty" yaml:"insecure_skip_verify,omitempty"`
}

// NewDefaultCorrectionConfig creates default correction configuration
func NewDefaultCorrectionConfig() CorrectionConfig {
	return CorrectionConfig{
		Provider:           DefaultCorrectionProvider,
		Model:              DefaultCorrectionModel,
		Temperature:        DefaultCorrectionTemperature,
		Endpoint:           DefaultCorrectionEndpoint,
		RequestTimeoutSecs: DefaultCorrectionRequestTimeout,
	}
}

// RequestTimeout returns the transport timeout
func (cc CorrectionConfig) RequestTimeout() time.Duration {
	return time.Duration(cc.RequestTimeoutSecs) * time.Second
}
