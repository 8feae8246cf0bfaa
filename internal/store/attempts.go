package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sebastianahumada1/studyapp/internal/feedback"
	"github.com/sebastianahumada1/studyapp/internal/selection"
	"github.com/sebastianahumada1/studyapp/internal/session"
)

// AttemptRepo persists attempts and reasoning records for one user. It
// implements the session engine's attempt store and the feedback generator's
// reasoning store.
type AttemptRepo struct {
	store  *Store
	userID string
}

// Attempts returns an AttemptRepo scoped to the given user.
func (s *Store) Attempts(userID string) *AttemptRepo {
	return &AttemptRepo{store: s, userID: userID}
}

// SaveAttempt inserts an attempt and returns its generated id.
func (r *AttemptRepo) SaveAttempt(ctx context.Context, a session.Attempt) (string, error) {
	id := uuid.NewString()
	_, err := r.store.db.ExecContext(ctx,
		`INSERT INTO attempts (id, session_id, user_id, question_id, user_answer, is_correct, time_spent_secs, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, a.SessionID, r.userID, a.QuestionID, a.UserAnswer, a.Correct, a.TimeSpentSecs, time.Now().Unix())
	if err != nil {
		return "", fmt.Errorf("save attempt: %w", err)
	}
	return id, nil
}

// SaveReasoning inserts a reasoning record for an attempt and returns its
// generated id. The feedback fields start empty and are filled later.
func (r *AttemptRepo) SaveReasoning(ctx context.Context, attemptID, text string) (string, error) {
	id := uuid.NewString()
	_, err := r.store.db.ExecContext(ctx,
		`INSERT INTO reasonings (id, attempt_id, reasoning_text, created_at)
		 VALUES (?, ?, ?, ?)`,
		id, attemptID, text, time.Now().Unix())
	if err != nil {
		return "", fmt.Errorf("save reasoning: %w", err)
	}
	return id, nil
}

// UpdateReasoningFeedback fills the three feedback fields on an attempt's
// reasoning record. Missing record is an error so the feedback generator
// counts the item as failed rather than silently dropping the result.
func (r *AttemptRepo) UpdateReasoningFeedback(ctx context.Context, attemptID string, fields feedback.Fields) error {
	res, err := r.store.db.ExecContext(ctx,
		`UPDATE reasonings
		 SET technique1_feedback = ?, technique2_feedback = ?, overall_feedback = ?
		 WHERE attempt_id = ?`,
		fields.Technique1, fields.Technique2, fields.Overall, attemptID)
	if err != nil {
		return fmt.Errorf("update reasoning feedback: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update reasoning feedback: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("no reasoning record for attempt %s", attemptID)
	}
	return nil
}

// FetchIncorrectAttempts returns the (subtopic, topic) pair of every wrong
// answer the user has recorded, most recent first. The ranker aggregates.
func (s *Store) FetchIncorrectAttempts(ctx context.Context, userID string) ([]selection.IncorrectAttempt, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT q.subtopic_name, q.topic_name
		 FROM attempts a
		 JOIN questions q ON q.id = a.question_id
		 WHERE a.user_id = ? AND a.is_correct = 0
		 ORDER BY a.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch incorrect attempts: %w", err)
	}
	defer rows.Close()

	var out []selection.IncorrectAttempt
	for rows.Next() {
		var ia selection.IncorrectAttempt
		if err := rows.Scan(&ia.SubtopicName, &ia.TopicName); err != nil {
			return nil, fmt.Errorf("scan incorrect attempt: %w", err)
		}
		out = append(out, ia)
	}
	return out, rows.Err()
}
