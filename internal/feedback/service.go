package feedback

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/sebastianahumada1/studyapp/internal/llm"
	"github.com/sebastianahumada1/studyapp/internal/question"
)

// Fields holds the three feedback values produced for one reasoning record.
type Fields struct {
	Technique1 string
	Technique2 string
	Overall    string
}

// Request is the input for one feedback evaluation.
type Request struct {
	AttemptID      string
	QuestionPrompt string
	Options        []string
	CorrectAnswer  string
	UserAnswer     string
	IsCorrect      bool
	UserReasoning  string
}

// Result is a successful feedback evaluation.
type Result struct {
	Fields Fields
}

// Service evaluates a student's written reasoning for a single attempt.
type Service interface {
	RequestFeedback(ctx context.Context, req Request) (*Result, error)
}

// ReasoningStore persists feedback onto an attempt's reasoning record.
type ReasoningStore interface {
	UpdateReasoningFeedback(ctx context.Context, attemptID string, fields Fields) error
}

// ServiceConfig holds configuration for the LLM feedback service.
type ServiceConfig struct {
	MaxTokens   int
	Temperature float64
}

// DefaultServiceConfig returns sensible defaults.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		MaxTokens:   512,
		Temperature: 0.4,
	}
}

// LLMService is the language-model backed Service.
type LLMService struct {
	provider llm.Provider
	cfg      ServiceConfig
}

// NewLLMService creates an LLM-backed feedback service.
func NewLLMService(provider llm.Provider, cfg ServiceConfig) *LLMService {
	return &LLMService{provider: provider, cfg: cfg}
}

// feedbackOutput is the raw LLM response.
type feedbackOutput struct {
	Technique1Feedback string `json:"technique1_feedback"`
	Technique2Feedback string `json:"technique2_feedback"`
	OverallFeedback    string `json:"overall_feedback"`
}

// RequestFeedback sends one attempt's reasoning to the LLM for evaluation.
func (s *LLMService) RequestFeedback(ctx context.Context, req Request) (*Result, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeReasoningFeedback)

	userMsg, err := buildFeedbackMessage(req)
	if err != nil {
		return nil, fmt.Errorf("build feedback prompt: %w", err)
	}

	llmReq := llm.Request{
		System: feedbackSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      FeedbackSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, llmReq)
	if err != nil {
		return nil, fmt.Errorf("LLM feedback failed: %w", err)
	}

	var raw feedbackOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, &llm.ErrInvalidResponse{Content: resp.Content, Err: err}
	}

	// Provider-side schema validation covers real providers; the empty-field
	// check keeps the guarantee when a provider skips validation.
	if raw.Technique1Feedback == "" || raw.Technique2Feedback == "" || raw.OverallFeedback == "" {
		return nil, &llm.ErrInvalidResponse{
			Content: resp.Content,
			Err:     fmt.Errorf("feedback response missing required fields"),
		}
	}

	return &Result{Fields: Fields{
		Technique1: raw.Technique1Feedback,
		Technique2: raw.Technique2Feedback,
		Overall:    raw.OverallFeedback,
	}}, nil
}

const feedbackSystemPrompt = `You are a patient study coach reviewing a student's written reasoning for a practice question. The student explained, in their own words, why they chose their answer.

Instructions:
- technique1_feedback: assess how clearly the student explained the underlying concept, as if teaching it to someone else.
- technique2_feedback: point out gaps, leaps, or unsupported steps in their justification.
- overall_feedback: give an overall assessment and one concrete suggestion for the next study session.
- Address the student directly. Keep each field to two or three sentences.
- If the answer was wrong, be encouraging but specific about where the reasoning broke down.`

var feedbackUserTemplate = template.Must(template.New("feedback").Funcs(template.FuncMap{
	"optionKey": question.OptionKey,
}).Parse(`Question: {{.QuestionPrompt}}
Options:
{{range $i, $opt := .Options}}- {{optionKey $i}}: {{$opt}}
{{end}}Correct answer: {{.CorrectAnswer}}
Student's answer: {{.UserAnswer}} ({{if .IsCorrect}}correct{{else}}incorrect{{end}})

Student's reasoning:
{{.UserReasoning}}`))

func buildFeedbackMessage(req Request) (string, error) {
	var buf bytes.Buffer
	if err := feedbackUserTemplate.Execute(&buf, req); err != nil {
		return "", err
	}
	return buf.String(), nil
}
