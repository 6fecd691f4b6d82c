package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidateConfig performs validation on the GlobalConfig structure.
func ValidateConfig(cfg *GlobalConfig) error {
	validate := validator.New()

	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "trace", "debug", "info", "warn", "error", "fatal", "panic":
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("logformat", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "console", "text", "json":
			return true
		default:
			return false
		}
	})

	err := validate.Struct(cfg)
	if err == nil {
		return validateCrossFields(cfg)
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return fmt.Errorf("configuration validation error: %w", err)
	}

	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		msg := fmt.Sprintf("Validation failed for '%s': rule '%s'", trimNamespace(e.Namespace()), e.Tag())
		if e.Param() != "" {
			msg += fmt.Sprintf(" (expected: %s)", e.Param())
		}
		if e.Value() != nil && e.Value() != "" {
			msg += fmt.Sprintf(", actual: '%v'", e.Value())
		}
		messages = append(messages, msg)
	}
	return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(messages, "\n  "))
}

// validateCrossFields checks constraints spanning several fields
func validateCrossFields(cfg *GlobalConfig) error {
	retry := cfg.RetryConfig
	if retry.MaxDelayMs > 0 && retry.BaseDelayMs > retry.MaxDelayMs {
		return fmt.Errorf("configuration validation failed:\n  retry_config.base_delay_ms (%d) exceeds max_delay_ms (%d)",
			retry.BaseDelayMs, retry.MaxDelayMs)
	}
	if cfg.CorrectionConfig.Provider == "http" && cfg.CorrectionConfig.Endpoint == "" {
		return fmt.Errorf("configuration validation failed:\n  correction_config.endpoint is required for the http provider")
	}
	return nil
}

// trimNamespace drops the root struct name from a validator namespace
func trimNamespace(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
