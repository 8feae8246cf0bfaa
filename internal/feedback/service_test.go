package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sebastianahumada1/studyapp/internal/llm"
)

func TestLLMService_ParsesValidResponse(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{
			"technique1_feedback": "You explained the idea plainly.",
			"technique2_feedback": "You skipped the carrying step.",
			"overall_feedback": "Solid attempt, redo one with carrying."
		}`),
	})
	svc := NewLLMService(mock, DefaultServiceConfig())

	res, err := svc.RequestFeedback(context.Background(), reqWithReasoning("a1"))
	require.NoError(t, err)
	require.Equal(t, "You explained the idea plainly.", res.Fields.Technique1)
	require.Equal(t, "You skipped the carrying step.", res.Fields.Technique2)
	require.Equal(t, "Solid attempt, redo one with carrying.", res.Fields.Overall)

	require.Equal(t, 1, mock.CallCount())
	require.Same(t, FeedbackSchema, mock.Calls[0].Schema)
}

func TestLLMService_MissingFieldIsInvalid(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{
			"technique1_feedback": "ok",
			"technique2_feedback": "ok"
		}`),
	})
	svc := NewLLMService(mock, DefaultServiceConfig())

	_, err := svc.RequestFeedback(context.Background(), reqWithReasoning("a1"))
	require.Error(t, err)
	var invErr *llm.ErrInvalidResponse
	require.ErrorAs(t, err, &invErr)
}

func TestLLMService_ProviderErrorPropagates(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrRateLimit{Err: errors.New("429")},
	})
	svc := NewLLMService(mock, DefaultServiceConfig())

	_, err := svc.RequestFeedback(context.Background(), reqWithReasoning("a1"))
	require.Error(t, err)
	var rl *llm.ErrRateLimit
	require.ErrorAs(t, err, &rl)
}

func TestBuildFeedbackMessage(t *testing.T) {
	req := Request{
		AttemptID:      "a1",
		QuestionPrompt: "What is the capital of France?",
		Options:        []string{"London", "Paris", "Rome", "Berlin"},
		CorrectAnswer:  "B",
		UserAnswer:     "C",
		IsCorrect:      false,
		UserReasoning:  "I mixed up Rome and Paris.",
	}

	msg, err := buildFeedbackMessage(req)
	require.NoError(t, err)
	require.True(t, strings.Contains(msg, "What is the capital of France?"))
	require.True(t, strings.Contains(msg, "B: Paris"))
	require.True(t, strings.Contains(msg, "C (incorrect)"))
	require.True(t, strings.Contains(msg, "I mixed up Rome and Paris."))
}
