package generate

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport covers connection failures, timeouts and non-2xx statuses.
	ErrTransport = errors.New("text generation transport failure")

	// ErrMalformedResponse is returned when a 2xx response has no text at
	// candidates[0].content.parts[0].text or cannot be decoded.
	ErrMalformedResponse = errors.New("malformed text generation response")

	// ErrExhaustedRetries matches (via errors.Is) every *ExhaustedError.
	ErrExhaustedRetries = errors.New("text generation retries exhausted")

	// ErrFeatureDisabled is returned by DisabledBackend.
	ErrFeatureDisabled = errors.New("text generation is disabled")

	// ErrInvalidConfig is returned by constructors given unusable settings.
	ErrInvalidConfig = errors.New("invalid text generation configuration")
)

// ExhaustedError is the terminal error of a LiveBackend call whose every
// attempt failed. It unwraps to the last attempt's error.
type ExhaustedError struct {
	Attempts int
	Last     error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("%v after %d attempts: %v", ErrExhaustedRetries, e.Attempts, e.Last)
}

func (e *ExhaustedError) Unwrap() error { return e.Last }

func (e *ExhaustedError) Is(target error) bool { return target == ErrExhaustedRetries }

// StatusError records the HTTP status of a rejected request.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%v: status %d", ErrTransport, e.StatusCode)
}

func (e *StatusError) Is(target error) bool { return target == ErrTransport }
