package cmd

import (
	"context"
	"errors"
	"testing"

	"github.com/sebastianahumada1/studyapp/internal/feedback"
)

type flakyFeedbackService struct {
	failID string
}

func (f *flakyFeedbackService) RequestFeedback(_ context.Context, req feedback.Request) (*feedback.Result, error) {
	if req.AttemptID == f.failID {
		return nil, errors.New("upstream unavailable")
	}
	return &feedback.Result{Fields: feedback.Fields{
		Technique1: "t1", Technique2: "t2", Overall: "overall",
	}}, nil
}

type discardReasoningStore struct{}

func (discardReasoningStore) UpdateReasoningFeedback(context.Context, string, feedback.Fields) error {
	return nil
}

func TestFeedbackProgress_ExcludesFailuresFromNumerator(t *testing.T) {
	gen := feedback.NewGenerator(&flakyFeedbackService{failID: "a2"}, discardReasoningStore{}, nil)

	items := []feedback.Request{
		{AttemptID: "a1", UserReasoning: "the first option matched the definition"},
		{AttemptID: "a2", UserReasoning: "eliminated the other three options"},
		{AttemptID: "a3", UserReasoning: "worked backwards from the answer choices"},
	}
	for range gen.Run(context.Background(), items) {
	}

	if got := feedbackProgress(gen); got != "[2/3]" {
		t.Fatalf("expected [2/3], got %s", got)
	}
}
