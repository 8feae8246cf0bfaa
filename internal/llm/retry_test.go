package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

// scriptedProvider fails according to script, one entry per call; a nil entry
// succeeds with a fixed feedback payload. Calls past the script also succeed.
type scriptedProvider struct {
	script []error
	calls  int
}

var scriptedPayload = json.RawMessage(`{"overall_feedback":"solid reasoning"}`)

func (p *scriptedProvider) Generate(context.Context, Request) (*Response, error) {
	i := p.calls
	p.calls++
	if i < len(p.script) && p.script[i] != nil {
		return nil, p.script[i]
	}
	return &Response{Content: scriptedPayload, Model: "scripted", StopReason: "end"}, nil
}

func (p *scriptedProvider) ModelID() string { return "scripted" }

func fastRetry(maxAttempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts: maxAttempts,
		InitialWait: time.Millisecond,
		MaxWait:     5 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func TestRetryProvider_CallCounts(t *testing.T) {
	outage := &ErrProviderUnavailable{Err: errors.New("502")}
	truncated := &ErrMaxTokensExceeded{Content: json.RawMessage(`{"overall_`)}
	badSchema := &ErrInvalidResponse{Err: errors.New("missing overall_feedback")}

	tests := []struct {
		name      string
		script    []error
		wantCalls int
		wantErr   bool
	}{
		{
			name:      "clean first call",
			script:    nil,
			wantCalls: 1,
		},
		{
			name:      "outage then recovery",
			script:    []error{outage},
			wantCalls: 2,
		},
		{
			name:      "outage on every attempt",
			script:    []error{outage, outage, outage},
			wantCalls: 3,
			wantErr:   true,
		},
		{
			name:      "truncation is terminal",
			script:    []error{truncated},
			wantCalls: 1,
			wantErr:   true,
		},
		{
			name:      "schema miss gets one more try",
			script:    []error{badSchema, nil},
			wantCalls: 2,
		},
		{
			name:      "second schema miss is terminal",
			script:    []error{badSchema, badSchema, nil},
			wantCalls: 2,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &scriptedProvider{script: tt.script}
			resp, err := WithRetry(p, fastRetry(3)).Generate(context.Background(), Request{})

			if tt.wantErr != (err != nil) {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if p.calls != tt.wantCalls {
				t.Fatalf("provider saw %d calls, want %d", p.calls, tt.wantCalls)
			}
			if !tt.wantErr && string(resp.Content) != string(scriptedPayload) {
				t.Fatalf("unexpected content: %s", resp.Content)
			}
		})
	}
}

func TestRetryProvider_ErrorTypeSurvivesRetries(t *testing.T) {
	p := &scriptedProvider{script: []error{
		&ErrRateLimit{Err: errors.New("429")},
		&ErrRateLimit{Err: errors.New("429")},
	}}

	_, err := WithRetry(p, fastRetry(2)).Generate(context.Background(), Request{})
	var limited *ErrRateLimit
	if !errors.As(err, &limited) {
		t.Fatalf("expected ErrRateLimit after exhaustion, got %T", err)
	}
}

func TestRetryProvider_HonorsRetryAfter(t *testing.T) {
	p := &scriptedProvider{script: []error{
		&ErrRateLimit{RetryAfter: time.Millisecond, Err: errors.New("429")},
	}}

	start := time.Now()
	resp, err := WithRetry(p, fastRetry(3)).Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.calls != 2 {
		t.Fatalf("provider saw %d calls, want 2", p.calls)
	}
	if resp == nil || time.Since(start) < time.Millisecond {
		t.Fatal("expected the retry to wait out RetryAfter")
	}
}

func TestRetryProvider_CancelledContextStopsBackoff(t *testing.T) {
	p := &scriptedProvider{script: []error{
		&ErrProviderUnavailable{Err: errors.New("down")},
	}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := WithRetry(p, fastRetry(3)).Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if p.calls != 1 {
		t.Fatalf("provider saw %d calls after cancellation, want 1", p.calls)
	}
}

func TestRetryProvider_ModelIDDelegates(t *testing.T) {
	p := WithRetry(&scriptedProvider{}, fastRetry(1))
	if p.ModelID() != "scripted" {
		t.Fatalf("ModelID = %q, want scripted", p.ModelID())
	}
}
