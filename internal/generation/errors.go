package generation

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnavailable matches every failure to obtain generated text.
	ErrUnavailable = errors.New("generation unavailable")
	// ErrDisabled is returned by the "none" provider.
	ErrDisabled = fmt.Errorf("%w: provider disabled", ErrUnavailable)
	// ErrEmptyOutput is returned when a provider answers with no text.
	ErrEmptyOutput = fmt.Errorf("%w: empty output", ErrUnavailable)
)

// ProviderError wraps a vendor SDK failure. It matches ErrUnavailable.
type ProviderError struct {
	Provider   string
	StatusCode int
	Err        error
}

func newProviderError(provider string, status int, err error) *ProviderError {
	return &ProviderError{Provider: provider, StatusCode: status, Err: err}
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrUnavailable) true for provider failures.
func (e *ProviderError) Is(target error) bool { return target == ErrUnavailable }

// Retryable reports whether the failure is transient: network errors
// (no status), rate limits and server errors.
func (e *ProviderError) Retryable() bool {
	return e.StatusCode == 0 ||
		e.StatusCode == http.StatusTooManyRequests ||
		e.StatusCode >= http.StatusInternalServerError
}
