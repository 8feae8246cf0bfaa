package selection

import (
	"context"
	"sort"
)

// IncorrectAttempt is the (subtopic, topic) pair behind one wrong answer from
// a prior practice session. Question-bank drilling is excluded at the source.
type IncorrectAttempt struct {
	SubtopicName string
	TopicName    string
}

// AttemptSource exposes the historical wrong answers needed for ranking.
type AttemptSource interface {
	FetchIncorrectAttempts(ctx context.Context, userID string) ([]IncorrectAttempt, error)
}

// ErrorHistoryEntry is a derived ranking row; never persisted.
type ErrorHistoryEntry struct {
	SubtopicName string
	TopicName    string
	ErrorCount   int
}

// RankErrors aggregates a user's incorrect attempts by subtopic (falling back
// to topic for questions without one), counts occurrences, and returns the top
// maxEntries descending by count. Ties keep first-encountered order. An empty
// history yields an empty slice, which the selector reports as "no questions
// available" rather than an error.
func RankErrors(ctx context.Context, src AttemptSource, userID string, maxEntries int) ([]ErrorHistoryEntry, error) {
	attempts, err := src.FetchIncorrectAttempts(ctx, userID)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	var entries []ErrorHistoryEntry
	for _, a := range attempts {
		key := a.SubtopicName
		if key == "" {
			key = a.TopicName
		}
		if key == "" {
			continue
		}
		if i, ok := index[key]; ok {
			entries[i].ErrorCount++
			continue
		}
		index[key] = len(entries)
		entries = append(entries, ErrorHistoryEntry{
			SubtopicName: a.SubtopicName,
			TopicName:    a.TopicName,
			ErrorCount:   1,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ErrorCount > entries[j].ErrorCount
	})

	if maxEntries > 0 && len(entries) > maxEntries {
		entries = entries[:maxEntries]
	}
	return entries, nil
}
