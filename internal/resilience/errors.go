// Package resilience classifies HTTP and transport failures. Theodore's
// LLM calls (C3, C5) and page fetches (C4) are single-attempt by design
// (spec.md §4.3, §4.4, §4.5) — nothing here retries anything. Instead
// these classifications feed the FailureCause taxonomy (spec.md §7)
// that callers report, and the page-fetch debug logs, so an operator
// can tell a transient provider hiccup from a hard failure after the
// fact even though the pipeline never retries it.
package resilience

import (
	"errors"
	"net"
	"strings"
	"syscall"

	openai "github.com/sashabaranov/go-openai"

	"github.com/sells-group/theodore-core/internal/model"
)

// TransientError wraps an error that would be safe to retry (e.g.,
// 429, 5xx, network timeout) were this pipeline a retrying one.
type TransientError struct {
	Err        error
	StatusCode int
}

func (e *TransientError) Error() string {
	return e.Err.Error()
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// NewTransientError wraps an error as transient with an optional HTTP status code.
func NewTransientError(err error, statusCode int) *TransientError {
	return &TransientError{Err: err, StatusCode: statusCode}
}

// IsTransient returns true if the error (or any error in its chain) is a
// TransientError, or if it matches common transient error patterns (network
// timeouts, connection resets, DNS failures).
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	// Check for explicit TransientError in chain.
	var te *TransientError
	if errors.As(err, &te) {
		return true
	}

	// Check for network-level transient errors.
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	// Connection reset / refused / DNS.
	if errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNABORTED) {
		return true
	}

	// String-based heuristics for wrapped errors from HTTP clients.
	msg := strings.ToLower(err.Error())
	transientPatterns := []string{
		"connection reset by peer",
		"broken pipe",
		"temporary failure in name resolution",
		"no such host",
		"tls handshake timeout",
		"i/o timeout",
		"server closed idle connection",
		"transport connection broken",
	}
	for _, p := range transientPatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}

	return false
}

// IsTransientHTTPStatus returns true if the HTTP status code indicates a
// transient server-side issue that would be safe to retry.
func IsTransientHTTPStatus(statusCode int) bool {
	switch statusCode {
	case 408, // Request Timeout
		429, // Too Many Requests
		500, // Internal Server Error
		502, // Bad Gateway
		503, // Service Unavailable
		504: // Gateway Timeout
		return true
	default:
		return false
	}
}

// ClassifyLLMError maps an error from an OpenAI-compatible
// chat-completions call onto the spec.md §7 FailureCause taxonomy. A
// provider response that carried an HTTP status (surfaced by
// go-openai as *openai.APIError) is CauseHTTPStatus; anything else —
// dial failures, timeouts, connection resets — is CauseNetwork. The
// returned status code is 0 for a non-APIError.
func ClassifyLLMError(err error) (model.FailureCause, int) {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return model.CauseHTTPStatus, apiErr.HTTPStatusCode
	}
	return model.CauseNetwork, 0
}
