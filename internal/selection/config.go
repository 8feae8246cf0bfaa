package selection

// Mode selects how the working question set is assembled.
type Mode string

const (
	ModeBySubtopics    Mode = "subtopics"
	ModeByTopics       Mode = "topics"
	ModeByFullRoute    Mode = "route"
	ModeByErrorHistory Mode = "errors"
)

// Config is the immutable per-session configuration, fixed at selection time.
type Config struct {
	Mode                Mode
	TimePerQuestionSecs int
	QuestionsPerLeaf    int
	Interleaving        bool
	Reasoning           bool

	// MaxLeavesForErrorHistory caps how many error-ranked subtopics feed the
	// working set. Only read in ModeByErrorHistory.
	MaxLeavesForErrorHistory int

	// TopicIDs / SubtopicIDs scope the tree-based modes. ModeBySubtopics
	// expects exactly one topic id; SubtopicIDs may be empty when that topic
	// has no subtopic children.
	TopicIDs    []string
	SubtopicIDs []string
}

// DefaultConfig mirrors the values the platform starts new sessions with.
func DefaultConfig() Config {
	return Config{
		Mode:                     ModeByTopics,
		TimePerQuestionSecs:      60,
		QuestionsPerLeaf:         3,
		Interleaving:             true,
		MaxLeavesForErrorHistory: 5,
	}
}

// ParseMode maps a user-supplied mode string to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeBySubtopics, ModeByTopics, ModeByFullRoute, ModeByErrorHistory:
		return Mode(s), true
	}
	return "", false
}
