package selection

import (
	"context"
	"errors"
	"fmt"

	"github.com/sebastianahumada1/studyapp/internal/content"
	"github.com/sebastianahumada1/studyapp/internal/question"
)

// ErrNoQuestions signals an empty working set. The caller must not start a
// session; it tells the user to pick different criteria instead.
var ErrNoQuestions = errors.New("no questions available for the selected criteria")

// QuestionStore fetches up to limit questions for a leaf. An empty
// subtopicName addresses the topic-level pool.
type QuestionStore interface {
	FetchQuestions(ctx context.Context, topicName, subtopicName string, limit int) ([]question.Question, error)
}

// Selector assembles the working question set for a session.
type Selector struct {
	Questions QuestionStore
	Attempts  AttemptSource
}

// leaf is a resolved fetch unit: topic name plus optional subtopic name.
type leaf struct {
	topicName    string
	subtopicName string
}

// SelectQuestions resolves the configured mode against the content forest and
// fetches up to QuestionsPerLeaf questions per leaf. The result is
// deliberately not deduplicated across leaves: a subtopic reachable through
// two selection paths contributes twice, matching the stored behavior of the
// platform.
func (s *Selector) SelectQuestions(ctx context.Context, cfg Config, forest []*content.TreeNode, userID string) ([]question.Question, error) {
	leaves, err := s.resolveLeaves(ctx, cfg, forest, userID)
	if err != nil {
		return nil, err
	}

	var out []question.Question
	for _, l := range leaves {
		qs, err := s.Questions.FetchQuestions(ctx, l.topicName, l.subtopicName, cfg.QuestionsPerLeaf)
		if err != nil {
			return nil, fmt.Errorf("fetch questions for %q/%q: %w", l.topicName, l.subtopicName, err)
		}
		out = append(out, qs...)
	}

	if len(out) == 0 {
		return nil, ErrNoQuestions
	}
	return out, nil
}

func (s *Selector) resolveLeaves(ctx context.Context, cfg Config, forest []*content.TreeNode, userID string) ([]leaf, error) {
	switch cfg.Mode {
	case ModeBySubtopics:
		return leavesBySubtopics(cfg, forest)
	case ModeByTopics:
		return leavesByTopics(cfg.TopicIDs, forest)
	case ModeByFullRoute:
		var all []string
		for _, t := range forest {
			all = append(all, t.ID)
		}
		return leavesByTopics(all, forest)
	case ModeByErrorHistory:
		return s.leavesByErrorHistory(ctx, cfg, userID)
	default:
		return nil, fmt.Errorf("unknown selection mode %q", cfg.Mode)
	}
}

// leavesBySubtopics expects one topic id and the chosen subtopic ids. A topic
// without subtopic children is its own single leaf.
func leavesBySubtopics(cfg Config, forest []*content.TreeNode) ([]leaf, error) {
	if len(cfg.TopicIDs) != 1 {
		return nil, fmt.Errorf("subtopics mode needs exactly one topic, got %d", len(cfg.TopicIDs))
	}
	topic := content.FindTopic(forest, cfg.TopicIDs[0])
	if topic == nil {
		return nil, fmt.Errorf("topic %q not found in route", cfg.TopicIDs[0])
	}

	if len(topic.Children) == 0 {
		return []leaf{{topicName: topic.DisplayName}}, nil
	}

	chosen := make(map[string]bool, len(cfg.SubtopicIDs))
	for _, id := range cfg.SubtopicIDs {
		chosen[id] = true
	}

	var out []leaf
	for _, sub := range topic.Children {
		if chosen[sub.ID] {
			out = append(out, leaf{topicName: topic.DisplayName, subtopicName: sub.DisplayName})
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("none of the chosen subtopics belong to topic %q", topic.DisplayName)
	}
	return out, nil
}

func leavesByTopics(topicIDs []string, forest []*content.TreeNode) ([]leaf, error) {
	if len(topicIDs) == 0 {
		return nil, ErrNoQuestions
	}
	var out []leaf
	for _, id := range topicIDs {
		topic := content.FindTopic(forest, id)
		if topic == nil {
			return nil, fmt.Errorf("topic %q not found in route", id)
		}
		for _, node := range content.Leaves(topic) {
			if node == topic {
				out = append(out, leaf{topicName: topic.DisplayName})
			} else {
				out = append(out, leaf{topicName: topic.DisplayName, subtopicName: node.DisplayName})
			}
		}
	}
	return out, nil
}

// leavesByErrorHistory bypasses the tree: the top error-ranked subtopics
// become the leaf set directly.
func (s *Selector) leavesByErrorHistory(ctx context.Context, cfg Config, userID string) ([]leaf, error) {
	entries, err := RankErrors(ctx, s.Attempts, userID, cfg.MaxLeavesForErrorHistory)
	if err != nil {
		return nil, fmt.Errorf("rank error history: %w", err)
	}
	if len(entries) == 0 {
		return nil, ErrNoQuestions
	}
	out := make([]leaf, 0, len(entries))
	for _, e := range entries {
		out = append(out, leaf{topicName: e.TopicName, subtopicName: e.SubtopicName})
	}
	return out, nil
}
