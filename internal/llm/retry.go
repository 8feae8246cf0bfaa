package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// RetryProvider retries transient transport failures with exponential
// backoff and jitter. Only LLM traffic flows through it; the session clock
// has no retry semantics and never touches this path.
type RetryProvider struct {
	next Provider
	cfg  RetryConfig
}

// WithRetry decorates a Provider with the retry policy in cfg.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &RetryProvider{next: p, cfg: cfg}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var lastErr error
	schemaRetried := false

	for attempt := 0; attempt < r.cfg.MaxAttempts; attempt++ {
		if attempt > 0 {
			if err := sleep(ctx, r.delay(attempt-1, lastErr)); err != nil {
				return nil, err
			}
		}

		resp, err := r.next.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !retryable(err, &schemaRetried) {
			return nil, err
		}
	}

	return nil, lastErr
}

func (r *RetryProvider) ModelID() string {
	return r.next.ModelID()
}

// retryable classifies an error under the policy in errors.go. A schema miss
// is retried exactly once across the whole call; schemaRetried carries that
// state between attempts.
func retryable(err error, schemaRetried *bool) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var truncated *ErrMaxTokensExceeded
	if errors.As(err, &truncated) {
		return false
	}

	var invalid *ErrInvalidResponse
	if errors.As(err, &invalid) {
		if *schemaRetried {
			return false
		}
		*schemaRetried = true
		return true
	}

	// Rate limits, outages and plain transport errors.
	return true
}

// delay computes the wait after failed attempt n, counted from zero. A
// server-provided RetryAfter wins over the backoff curve.
func (r *RetryProvider) delay(n int, err error) time.Duration {
	var limited *ErrRateLimit
	if errors.As(err, &limited) && limited.RetryAfter > 0 {
		return limited.RetryAfter
	}

	wait := float64(r.cfg.InitialWait) * math.Pow(r.cfg.Multiplier, float64(n))
	wait = math.Min(wait, float64(r.cfg.MaxWait))

	// ±20% jitter keeps concurrent feedback requests from thundering back
	// in lockstep after a shared rate limit.
	wait *= 1 + 0.2*(2*rand.Float64()-1)
	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}

func sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
