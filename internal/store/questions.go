package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sebastianahumada1/studyapp/internal/question"
)

// FetchQuestions returns up to limit questions for a leaf, drawn in random
// order so repeated sessions over the same leaf vary. An empty subtopicName
// addresses the topic-level pool.
func (s *Store) FetchQuestions(ctx context.Context, topicName, subtopicName string, limit int) ([]question.Question, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, prompt_text, options_json, correct_key, topic_name, subtopic_name
		 FROM questions
		 WHERE topic_name = ? AND subtopic_name = ?
		 ORDER BY RANDOM() LIMIT ?`,
		topicName, subtopicName, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch questions: %w", err)
	}
	defer rows.Close()

	var out []question.Question
	for rows.Next() {
		var q question.Question
		var optionsJSON string
		if err := rows.Scan(&q.ID, &q.PromptText, &optionsJSON, &q.CorrectKey, &q.TopicName, &q.SubtopicName); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		if err := json.Unmarshal([]byte(optionsJSON), &q.Options); err != nil {
			return nil, fmt.Errorf("decode options for question %s: %w", q.ID, err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}
