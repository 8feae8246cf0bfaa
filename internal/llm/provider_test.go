package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func feedbackPayload(overall string) json.RawMessage {
	raw, _ := json.Marshal(map[string]string{
		"technique1_feedback": "clear",
		"technique2_feedback": "complete",
		"overall_feedback":    overall,
	})
	return raw
}

func TestMockProvider_PlaysScriptInOrder(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: feedbackPayload("first"), Usage: Usage{InputTokens: 42, OutputTokens: 7, TotalTokens: 49}},
		MockResponse{Content: feedbackPayload("second")},
	)

	resp, err := mock.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var fields map[string]string
	if err := json.Unmarshal(resp.Content, &fields); err != nil {
		t.Fatalf("decode content: %v", err)
	}
	if fields["overall_feedback"] != "first" {
		t.Errorf("overall_feedback = %q, want first", fields["overall_feedback"])
	}
	if resp.Usage.TotalTokens != 49 {
		t.Errorf("TotalTokens = %d, want 49", resp.Usage.TotalTokens)
	}
	if resp.StopReason != "end" {
		t.Errorf("StopReason = %q, want end", resp.StopReason)
	}

	resp, err = mock.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := json.Unmarshal(resp.Content, &fields); err != nil {
		t.Fatalf("decode content: %v", err)
	}
	if fields["overall_feedback"] != "second" {
		t.Errorf("overall_feedback = %q, want second", fields["overall_feedback"])
	}
}

func TestMockProvider_ExhaustedScriptIsAnOutage(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: feedbackPayload("only")})

	if _, err := mock.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("scripted call failed: %v", err)
	}

	_, err := mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable past the script, got %T", err)
	}
}

func TestMockProvider_RecordsRequests(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: feedbackPayload("ok")})

	req := Request{
		System:   "you are a study coach",
		Messages: []Message{{Role: RoleUser, Content: "review this reasoning"}},
		Schema:   &Schema{Name: "reasoning-feedback"},
	}
	_, _ = mock.Generate(context.Background(), req)

	if mock.CallCount() != 1 {
		t.Fatalf("CallCount = %d, want 1", mock.CallCount())
	}
	got := mock.Requests()
	if got[0].System != "you are a study coach" {
		t.Errorf("System = %q", got[0].System)
	}
	if got[0].Schema.Name != "reasoning-feedback" {
		t.Errorf("Schema.Name = %q", got[0].Schema.Name)
	}
}

func TestMockProvider_ScriptedError(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrMaxTokensExceeded{}})

	_, err := mock.Generate(context.Background(), Request{})
	var truncated *ErrMaxTokensExceeded
	if !errors.As(err, &truncated) {
		t.Fatalf("expected ErrMaxTokensExceeded, got %T", err)
	}
}

func TestMockProvider_AddResponse(t *testing.T) {
	mock := NewMockProvider()
	mock.AddResponse(MockResponse{Content: feedbackPayload("late")})

	resp, err := mock.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Model != "mock" || mock.ModelID() != "mock" {
		t.Errorf("model = %q / %q, want mock", resp.Model, mock.ModelID())
	}
}

func TestPurposeTravelsOnContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("untagged context reports %q, want unknown", p)
	}

	ctx = WithPurpose(ctx, PurposeReasoningFeedback)
	if p := PurposeFrom(ctx); p != PurposeReasoningFeedback {
		t.Fatalf("PurposeFrom = %q, want %q", p, PurposeReasoningFeedback)
	}
}

func TestConfig_Validate(t *testing.T) {
	withKey := func(provider string) Config {
		cfg := DefaultConfig()
		cfg.Provider = provider
		cfg.Anthropic.APIKey = "sk-test"
		cfg.OpenAI.APIKey = "sk-test"
		cfg.Gemini.APIKey = "test"
		return cfg
	}

	for _, provider := range []string{"anthropic", "openai", "openrouter", "gemini", "mock"} {
		if err := withKey(provider).Validate(); err != nil {
			t.Errorf("%s with key: unexpected error %v", provider, err)
		}
	}

	for _, provider := range []string{"anthropic", "openai", "openrouter", "gemini"} {
		cfg := DefaultConfig()
		cfg.Provider = provider
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s without key: expected an error", provider)
		}
	}

	if err := (Config{Provider: "mock"}).Validate(); err != nil {
		t.Errorf("mock needs no key, got %v", err)
	}
	if err := (Config{Provider: "carrier-pigeon"}).Validate(); err == nil {
		t.Error("unknown provider: expected an error")
	}
}
