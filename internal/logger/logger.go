package logger

import (
	"errors"
	"io"

	"github.com/rs/zerolog"
)

// Logger represents the main logger with configuration
type Logger struct {
	zerolog zerolog.Logger
	config  LoggerConfig
	closers []io.Closer
}

// GetZerolog returns the underlying zerolog instance
func (l *Logger) GetZerolog() *zerolog.Logger {
	return &l.zerolog
}

// GetConfig returns the resolved configuration
func (l *Logger) GetConfig() LoggerConfig {
	return l.config
}

// Close releases log files
func (l *Logger) Close() error {
	var errs []error
	for _, c := range l.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	l.closers = nil
	return errors.Join(errs...)
}

// New creates a logger from the file config section
func New(cfg FileLogConfig) (*Logger, error) {
	return NewLoggerBuilder().WithConfig(cfg).Build()
}
