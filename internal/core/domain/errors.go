package domain

import (
	"errors"
	"fmt"
	"time"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingCredential indicates no secret is configured for the
	// requested provider or integration.
	ErrMissingCredential = errors.New("missing credential")

	// ErrUndecryptable indicates a stored ciphertext could not be
	// decrypted, typically after a key rotation.
	ErrUndecryptable = errors.New("credential cannot be decrypted")

	// ErrMissingEndpoint indicates a provider adapter has no endpoint
	// configured.
	ErrMissingEndpoint = errors.New("endpoint not configured")

	// ErrMalformedResponse indicates a 2xx provider response without the
	// expected completion content.
	ErrMalformedResponse = errors.New("malformed provider response")

	// ErrNetwork indicates an HTTP transport failure before any status
	// code was received.
	ErrNetwork = errors.New("network failure")

	// ErrUnsupportedBlock indicates a content block type the converter
	// does not recognise. Non-fatal: the block is dropped.
	ErrUnsupportedBlock = errors.New("unsupported block type")

	// ErrUnknownProvider indicates a provider name with no adapter.
	ErrUnknownProvider = errors.New("unknown provider")
)

// APIError is a non-2xx response from a provider or the remote source,
// with the message extracted from the response body when present.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// TimeoutError indicates a call exceeded its configured bound. The
// duration is included so callers can suggest raising it.
type TimeoutError struct {
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request timed out after %s; longer content may need a higher timeout", e.Timeout)
}

// RateLimitError indicates either a remote 429 or the local generation cap.
type RateLimitError struct {
	ResetAt time.Time
}

func (e *RateLimitError) Error() string {
	if e.ResetAt.IsZero() {
		return "rate limited"
	}
	return fmt.Sprintf("rate limited until %s", e.ResetAt.Format(time.RFC3339))
}
