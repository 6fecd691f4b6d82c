package pipeline

import "fmt"

// AttemptsExhaustedError is returned when every attempt failed with a
// transient error. It unwraps to the last failure.
type AttemptsExhaustedError struct {
	Attempts int
	Last     error
}

func (e *AttemptsExhaustedError) Error() string {
	return fmt.Sprintf("correction failed after %d attempts: %v", e.Attempts, e.Last)
}

// Unwrap returns the last attempt's error.
func (e *AttemptsExhaustedError) Unwrap() error {
	return e.Last
}
