package pipeline

import (
	"time"

	"github.com/aleister1102/grammarwhiz/internal/models"
	"github.com/google/uuid"
)

// RetryableRequest tracks one user-initiated correction across its attempts.
type RetryableRequest struct {
	ID          string
	Text        string
	Scenario    models.Scenario
	Attempt     int // Attempts made so far
	MaxAttempts int
	NextDelay   time.Duration // Delay chosen after the latest failure
	LastErr     error
}

// NewRetryableRequest creates a request with no attempts made
func NewRetryableRequest(text string, scenario models.Scenario, maxAttempts int) *RetryableRequest {
	return &RetryableRequest{
		ID:          uuid.NewString(),
		Text:        text,
		Scenario:    scenario,
		MaxAttempts: maxAttempts,
	}
}

// Exhausted reports whether the attempt budget is spent.
func (r *RetryableRequest) Exhausted() bool {
	return r.Attempt >= r.MaxAttempts
}
