package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sebastianahumada1/studyapp/internal/question"
)

var (
	// ErrNoQuestionsScheduled rejects starting a session over an empty set.
	ErrNoQuestionsScheduled = errors.New("session has no scheduled questions")

	// ErrNotRunning rejects per-question operations outside PhaseRunning.
	ErrNotRunning = errors.New("session is not running")

	// ErrReasoningTooShort rejects a manual submit when reasoning is required
	// but below the minimum length. The submit is a no-op; the countdown
	// keeps running.
	ErrReasoningTooShort = errors.New("reasoning text is too short")
)

// AttemptStore persists attempts and their reasoning records.
type AttemptStore interface {
	SaveAttempt(ctx context.Context, a Attempt) (attemptID string, err error)
	SaveReasoning(ctx context.Context, attemptID, text string) (reasoningID string, err error)
}

// Start transitions selection → running. Requires a non-empty scheduled
// question sequence.
func (s *Session) Start() error {
	if s.Phase != PhaseSelection {
		return errors.New("session already started")
	}
	if len(s.Questions) == 0 {
		return ErrNoQuestionsScheduled
	}
	s.Phase = PhaseRunning
	s.CurrentIndex = 0
	s.TimeRemaining = s.Config.TimePerQuestionSecs
	s.StartTime = time.Now()
	return nil
}

// SelectAnswer records the currently picked option for the active question.
func (s *Session) SelectAnswer(answer string) {
	if s.Phase != PhaseRunning {
		return
	}
	s.SelectedAnswer = answer
}

// SetReasoning records the learner's explanation for the active question.
func (s *Session) SetReasoning(text string) {
	if s.Phase != PhaseRunning {
		return
	}
	s.ReasoningText = text
}

// Tick advances the countdown by one elapsed second. Reaching zero (or a
// negative value after a missed tick) forces submission with whatever answer
// is selected; there is no grace period. Outside PhaseRunning a tick is a
// stale timer firing and is ignored.
func (s *Session) Tick(ctx context.Context) {
	if s.Phase != PhaseRunning {
		return
	}
	s.TimeRemaining--
	if s.TimeRemaining <= 0 {
		s.record(ctx, s.Config.TimePerQuestionSecs)
	}
}

// Submit handles a learner-initiated submission. When reasoning is required,
// text shorter than MinReasoningLength rejects the submit without recording
// anything; the learner stays on the question.
func (s *Session) Submit(ctx context.Context) error {
	if s.Phase != PhaseRunning {
		return ErrNotRunning
	}
	if s.Config.Reasoning && len(strings.TrimSpace(s.ReasoningText)) < MinReasoningLength {
		return ErrReasoningTooShort
	}
	s.record(ctx, s.Config.TimePerQuestionSecs-s.TimeRemaining)
	return nil
}

// record creates the attempt for the active question, persists it, and moves
// the session forward. A store failure is logged and leaves the attempt id
// empty; the learner is never blocked on persistence.
func (s *Session) record(ctx context.Context, timeSpent int) {
	q := s.CurrentQuestion()
	if q == nil {
		return
	}

	attempt := Attempt{
		QuestionID:    q.ID,
		UserAnswer:    s.SelectedAnswer,
		Correct:       question.CheckAnswer(s.SelectedAnswer, q.CorrectKey, q.Options),
		TimeSpentSecs: timeSpent,
		SessionID:     s.ID,
		Reasoning:     strings.TrimSpace(s.ReasoningText),
	}

	if s.Store != nil {
		id, err := s.Store.SaveAttempt(ctx, attempt)
		if err != nil {
			s.Log.Warn("attempt not persisted, continuing session",
				zap.String("session_id", s.ID),
				zap.String("question_id", q.ID),
				zap.Error(err))
		} else {
			attempt.ID = id
			if s.Config.Reasoning && attempt.Reasoning != "" {
				rid, err := s.Store.SaveReasoning(ctx, id, attempt.Reasoning)
				if err != nil {
					s.Log.Warn("reasoning not persisted",
						zap.String("attempt_id", id),
						zap.Error(err))
				} else {
					attempt.ReasoningID = rid
				}
			}
		}
	}

	s.Attempts = append(s.Attempts, attempt)
	s.advance()
}

// advance moves to the next question or completes the session.
func (s *Session) advance() {
	s.SelectedAnswer = ""
	s.ReasoningText = ""

	if s.CurrentIndex < len(s.Questions)-1 {
		s.CurrentIndex++
		s.TimeRemaining = s.Config.TimePerQuestionSecs
		return
	}
	s.Phase = PhaseCompleted
}
