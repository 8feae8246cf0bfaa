package question

// Question is a multiple-choice item served during a practice session.
// Immutable while a session is running.
type Question struct {
	ID           string
	PromptText   string
	Options      []string // ordered, length 2..N
	CorrectKey   string   // single letter, "A".."D"
	TopicName    string
	SubtopicName string // empty when the question hangs off the topic itself
}

// OptionKey returns the letter key for an option index (0 → "A").
func OptionKey(index int) string {
	return string(rune('A' + index))
}
