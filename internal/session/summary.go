package session

// TopicResult tallies per-topic performance for the summary.
type TopicResult struct {
	TopicName string
	Attempted int
	Correct   int
}

// Summary holds the end-of-session figures.
type Summary struct {
	SessionID      string
	TotalQuestions int
	TotalCorrect   int
	Accuracy       float64
	PersistedGaps  int // attempts that could not be saved
	TopicResults   []TopicResult
}

// BuildSummary derives the summary from the recorded attempts. Topic order
// follows the scheduled question order.
func BuildSummary(s *Session) *Summary {
	byQuestion := make(map[string]string, len(s.Questions))
	for _, q := range s.Questions {
		byQuestion[q.ID] = q.TopicName
	}

	index := make(map[string]int)
	sum := &Summary{SessionID: s.ID}
	for _, a := range s.Attempts {
		sum.TotalQuestions++
		if a.Correct {
			sum.TotalCorrect++
		}
		if a.ID == "" {
			sum.PersistedGaps++
		}

		topic := byQuestion[a.QuestionID]
		i, ok := index[topic]
		if !ok {
			i = len(sum.TopicResults)
			index[topic] = i
			sum.TopicResults = append(sum.TopicResults, TopicResult{TopicName: topic})
		}
		sum.TopicResults[i].Attempted++
		if a.Correct {
			sum.TopicResults[i].Correct++
		}
	}

	if sum.TotalQuestions > 0 {
		sum.Accuracy = float64(sum.TotalCorrect) / float64(sum.TotalQuestions)
	}
	return sum
}
