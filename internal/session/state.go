package session

import (
	"time"

	"go.uber.org/zap"

	"github.com/sebastianahumada1/studyapp/internal/question"
	"github.com/sebastianahumada1/studyapp/internal/selection"
)

// Phase is the lifecycle stage of a session. Completed is terminal; there is
// no way back to Running.
type Phase int

const (
	PhaseSelection Phase = iota // configuring, nothing scheduled yet
	PhaseRunning                // serving questions under the countdown
	PhaseCompleted              // all questions answered
)

// MinReasoningLength is the minimum reasoning text length accepted on manual
// submit when reasoning is enabled. Timeout auto-submit bypasses it.
const MinReasoningLength = 20

// Attempt is the engine-side record of one answered question. Exactly one is
// created per question per session, whether submission was manual or forced
// by the timer.
type Attempt struct {
	// ID is assigned by the attempt store. Empty when persistence failed;
	// the session still advances but the attempt cannot carry reasoning
	// feedback (a recorded gap, not a crash).
	ID            string
	QuestionID    string
	UserAnswer    string
	Correct       bool
	TimeSpentSecs int
	SessionID     string

	// Reasoning is the free-text explanation captured at submission, empty
	// when reasoning was disabled or absent.
	Reasoning   string
	ReasoningID string
}

// Session tracks the runtime state of the single active practice session.
// All mutation goes through the transition functions in machine.go; the
// countdown is advanced by an external driver calling Tick.
type Session struct {
	ID        string
	Config    selection.Config
	Questions []question.Question

	Phase         Phase
	CurrentIndex  int
	TimeRemaining int

	// SelectedAnswer is the currently picked option for the active question,
	// empty when nothing is selected (possible at auto-submit).
	SelectedAnswer string

	// ReasoningText is the learner's explanation for the active question.
	ReasoningText string

	// Attempts accumulates one entry per answered question, in order.
	Attempts []Attempt

	// StartTime is when the session entered PhaseRunning.
	StartTime time.Time

	// Store persists attempts and reasoning. A nil store keeps the session
	// fully in memory (tests, dry runs).
	Store AttemptStore

	// Log reports persistence gaps without interrupting the session.
	Log *zap.Logger
}

// New creates a session in the selection phase over an already scheduled
// question sequence.
func New(id string, cfg selection.Config, qs []question.Question, store AttemptStore, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{
		ID:        id,
		Config:    cfg,
		Questions: qs,
		Phase:     PhaseSelection,
		Store:     store,
		Log:       log,
	}
}

// CurrentQuestion returns the active question, or nil outside PhaseRunning.
func (s *Session) CurrentQuestion() *question.Question {
	if s.Phase != PhaseRunning || s.CurrentIndex >= len(s.Questions) {
		return nil
	}
	return &s.Questions[s.CurrentIndex]
}

// ReasonedAttempts returns the persisted attempts that carry reasoning text,
// the input set for feedback generation.
func (s *Session) ReasonedAttempts() []Attempt {
	var out []Attempt
	for _, a := range s.Attempts {
		if a.Reasoning != "" && a.ID != "" {
			out = append(out, a)
		}
	}
	return out
}
