package llm

import (
	"encoding/json"
	"fmt"
	"time"
)

// The feedback pipeline sorts provider failures into four buckets. The retry
// decorator keys off the concrete type: rate limits and outages are retried,
// a schema miss gets one more try, a truncation is returned as-is.

// ErrInvalidResponse reports content that failed schema validation or JSON
// parsing. The raw content is kept so a failed feedback item can be logged
// with what the model actually said.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("response failed validation: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrRateLimit reports a 429 from the provider. RetryAfter carries the
// server-suggested wait when the response included one, zero otherwise.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited, retry after %s: %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrProviderUnavailable reports that the provider could not be reached or
// answered with a server error.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err == nil {
		return "provider unavailable"
	}
	return fmt.Sprintf("provider unavailable: %v", e.Err)
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded reports a response cut off at the MaxTokens cap.
// Retrying the same request would truncate again, so it never is; the fix is
// a larger cap or a shorter prompt.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "response truncated at the max token cap"
}
