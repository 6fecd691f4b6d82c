package correction

import (
	"errors"
	"fmt"
	"time"
)

// ErrorKind classifies a correction service failure.
type ErrorKind int

const (
	// KindRateLimited is a rate-limit response from the service.
	KindRateLimited ErrorKind = iota + 1
	// KindNetwork is a failure where no usable response arrived.
	KindNetwork
	// KindPermanent covers rejected requests and missing credentials.
	KindPermanent
	// KindMalformedResponse is a response that does not have the result shape.
	KindMalformedResponse
)

func (k ErrorKind) String() string {
	switch k {
	case KindRateLimited:
		return "rate_limited"
	case KindNetwork:
		return "network"
	case KindPermanent:
		return "permanent"
	case KindMalformedResponse:
		return "malformed_response"
	}
	return "unknown"
}

var (
	// ErrTransient matches every ServiceError that may succeed on retry.
	ErrTransient = errors.New("transient correction service error")
	// ErrPermanent matches every ServiceError that will not succeed on retry.
	ErrPermanent = errors.New("permanent correction service error")
)

// ServiceError is the typed failure returned by every Service.
type ServiceError struct {
	Kind       ErrorKind
	StatusCode int           // HTTP-style status, 0 when no response arrived
	Message    string        // Human readable message
	RetryAfter time.Duration // Server requested delay, 0 when absent
	Err        error
}

func (e *ServiceError) Error() string {
	msg := fmt.Sprintf("correction service %s error", e.Kind)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Message != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Message)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the failure is transient.
func (e *ServiceError) Retryable() bool {
	return e.Kind == KindRateLimited || e.Kind == KindNetwork
}

// Is matches ErrTransient or ErrPermanent according to Retryable.
func (e *ServiceError) Is(target error) bool {
	switch target {
	case ErrTransient:
		return e.Retryable()
	case ErrPermanent:
		return !e.Retryable()
	}
	return false
}

// NewRateLimitedError creates a rate-limit error.
func NewRateLimitedError(statusCode int, message string, retryAfter time.Duration) *ServiceError {
	return &ServiceError{Kind: KindRateLimited, StatusCode: statusCode, Message: message, RetryAfter: retryAfter}
}

// NewNetworkError creates a network error.
func NewNetworkError(message string, err error) *ServiceError {
	return &ServiceError{Kind: KindNetwork, Message: message, Err: err}
}

// NewPermanentError creates a non-retryable error.
func NewPermanentError(statusCode int, message string, err error) *ServiceError {
	return &ServiceError{Kind: KindPermanent, StatusCode: statusCode, Message: message, Err: err}
}

// NewMalformedResponseError creates an error for a response that failed validation.
func NewMalformedResponseError(message string, err error) *ServiceError {
	return &ServiceError{Kind: KindMalformedResponse, Message: message, Err: err}
}

// AsServiceError extracts a ServiceError from an error chain.
func AsServiceError(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr, true
	}
	return nil, false
}

// IsRetryable reports whether err carries a transient ServiceError.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrTransient)
}
