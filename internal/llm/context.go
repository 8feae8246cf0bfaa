package llm

import "context"

// PurposeReasoningFeedback labels requests issued by the feedback generator.
// It is the only purpose this app sends today; the label travels on the
// context so log lines can be filtered per feature as more are added.
const PurposeReasoningFeedback = "reasoning-feedback"

type contextKey string

const purposeKey contextKey = "llm_purpose"

// WithPurpose tags the context with what the request is for.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom reads the purpose tag, "unknown" when the caller never set one.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok {
		return v
	}
	return "unknown"
}
