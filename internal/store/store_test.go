package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sebastianahumada1/studyapp/internal/content"
	"github.com/sebastianahumada1/studyapp/internal/feedback"
	"github.com/sebastianahumada1/studyapp/internal/session"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testSeed() SeedFile {
	return SeedFile{
		Routes: []SeedRoute{
			{
				ID:   "r1",
				Name: "Algebra Basics",
				Nodes: []SeedNode{
					{ID: "t1", Kind: "topic", DisplayName: "Linear Equations", OrderIndex: 1},
					{ID: "s1", ParentID: "t1", Kind: "subtopic", DisplayName: "One Variable", OrderIndex: 1},
					{ID: "s2", ParentID: "t1", Kind: "subtopic", DisplayName: "Two Variables", OrderIndex: 2},
					{ID: "t2", Kind: "topic", DisplayName: "Inequalities", OrderIndex: 2},
				},
			},
		},
		Questions: []SeedQuestion{
			{ID: "q1", PromptText: "Solve x+1=2", Options: []string{"0", "1", "2", "3"}, CorrectKey: "B", TopicName: "Linear Equations", SubtopicName: "One Variable"},
			{ID: "q2", PromptText: "Solve x+2=2", Options: []string{"0", "1", "2", "3"}, CorrectKey: "A", TopicName: "Linear Equations", SubtopicName: "One Variable"},
			{ID: "q3", PromptText: "Solve x-1=1", Options: []string{"0", "1", "2", "3"}, CorrectKey: "C", TopicName: "Linear Equations", SubtopicName: "Two Variables"},
			{ID: "q4", PromptText: "Is 3 > 2?", Options: []string{"yes", "no"}, CorrectKey: "A", TopicName: "Inequalities"},
		},
	}
}

func TestImportSeedAndFetchContentNodes(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	stats, err := s.ImportSeed(ctx, testSeed())
	require.NoError(t, err)
	require.Equal(t, SeedStats{Routes: 1, Nodes: 4, Questions: 4}, stats)

	nodes, err := s.FetchContentNodes(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, nodes, 4)

	forest := content.Resolve(nodes)
	require.Len(t, forest, 2)
	require.Equal(t, "Linear Equations", forest[0].DisplayName)
	require.Len(t, forest[0].Children, 2)
	require.Equal(t, "Inequalities", forest[1].DisplayName)
}

func TestImportSeed_ReimportIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.ImportSeed(ctx, testSeed())
	require.NoError(t, err)
	_, err = s.ImportSeed(ctx, testSeed())
	require.NoError(t, err)

	nodes, err := s.FetchContentNodes(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, nodes, 4)
}

func TestGetRoute(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.ImportSeed(ctx, testSeed())
	require.NoError(t, err)

	r, err := s.GetRoute(ctx, "r1")
	require.NoError(t, err)
	require.Equal(t, "Algebra Basics", r.Name)

	_, err = s.GetRoute(ctx, "missing")
	require.ErrorIs(t, err, ErrRouteNotFound)

	routes, err := s.ListRoutes(ctx)
	require.NoError(t, err)
	require.Len(t, routes, 1)
}

func TestFetchQuestions_LeafScopingAndLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.ImportSeed(ctx, testSeed())
	require.NoError(t, err)

	qs, err := s.FetchQuestions(ctx, "Linear Equations", "One Variable", 10)
	require.NoError(t, err)
	require.Len(t, qs, 2)
	for _, q := range qs {
		require.Equal(t, "One Variable", q.SubtopicName)
		require.Len(t, q.Options, 4)
	}

	qs, err = s.FetchQuestions(ctx, "Linear Equations", "One Variable", 1)
	require.NoError(t, err)
	require.Len(t, qs, 1)

	// Empty subtopic addresses the topic-level pool.
	qs, err = s.FetchQuestions(ctx, "Inequalities", "", 10)
	require.NoError(t, err)
	require.Len(t, qs, 1)
	require.Equal(t, "q4", qs[0].ID)

	qs, err = s.FetchQuestions(ctx, "Unknown", "", 10)
	require.NoError(t, err)
	require.Empty(t, qs)
}

func TestAttemptRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.ImportSeed(ctx, testSeed())
	require.NoError(t, err)

	repo := s.Attempts("local")

	attemptID, err := repo.SaveAttempt(ctx, session.Attempt{
		QuestionID:    "q1",
		UserAnswer:    "B",
		Correct:       true,
		TimeSpentSecs: 12,
		SessionID:     "sess-1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, attemptID)

	reasoningID, err := repo.SaveReasoning(ctx, attemptID, "Subtracting one from both sides leaves x=1.")
	require.NoError(t, err)
	require.NotEmpty(t, reasoningID)

	err = repo.UpdateReasoningFeedback(ctx, attemptID, feedback.Fields{
		Technique1: "t1",
		Technique2: "t2",
		Overall:    "overall",
	})
	require.NoError(t, err)

	var t1, t2, overall string
	err = s.DB().QueryRowContext(ctx,
		`SELECT technique1_feedback, technique2_feedback, overall_feedback FROM reasonings WHERE attempt_id = ?`,
		attemptID,
	).Scan(&t1, &t2, &overall)
	require.NoError(t, err)
	require.Equal(t, "t1", t1)
	require.Equal(t, "t2", t2)
	require.Equal(t, "overall", overall)
}

func TestUpdateReasoningFeedback_MissingRecord(t *testing.T) {
	s := openTestStore(t)

	repo := s.Attempts("local")
	err := repo.UpdateReasoningFeedback(context.Background(), "nope", feedback.Fields{})
	require.Error(t, err)
}

func TestFetchIncorrectAttempts(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.ImportSeed(ctx, testSeed())
	require.NoError(t, err)

	repo := s.Attempts("local")
	other := s.Attempts("someone-else")

	_, err = repo.SaveAttempt(ctx, session.Attempt{QuestionID: "q1", UserAnswer: "A", Correct: false, SessionID: "s1"})
	require.NoError(t, err)
	_, err = repo.SaveAttempt(ctx, session.Attempt{QuestionID: "q3", UserAnswer: "B", Correct: false, SessionID: "s1"})
	require.NoError(t, err)
	_, err = repo.SaveAttempt(ctx, session.Attempt{QuestionID: "q2", UserAnswer: "A", Correct: true, SessionID: "s1"})
	require.NoError(t, err)
	_, err = other.SaveAttempt(ctx, session.Attempt{QuestionID: "q4", UserAnswer: "B", Correct: false, SessionID: "s2"})
	require.NoError(t, err)

	incorrect, err := s.FetchIncorrectAttempts(ctx, "local")
	require.NoError(t, err)
	require.Len(t, incorrect, 2)

	subtopics := []string{incorrect[0].SubtopicName, incorrect[1].SubtopicName}
	require.ElementsMatch(t, []string{"One Variable", "Two Variables"}, subtopics)
	for _, ia := range incorrect {
		require.Equal(t, "Linear Equations", ia.TopicName)
	}
}
