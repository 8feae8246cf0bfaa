package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sebastianahumada1/studyapp/internal/content"
	"github.com/sebastianahumada1/studyapp/internal/feedback"
	"github.com/sebastianahumada1/studyapp/internal/interleave"
	"github.com/sebastianahumada1/studyapp/internal/llm"
	"github.com/sebastianahumada1/studyapp/internal/question"
	"github.com/sebastianahumada1/studyapp/internal/selection"
	"github.com/sebastianahumada1/studyapp/internal/session"
	"github.com/sebastianahumada1/studyapp/internal/store"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Run a timed practice session",
	Long: `Run a timed practice session over a route's question bank.

Input during a question:
  A-D             pick an option (submits immediately without --reasoning)
  any other text  answer in full text (legacy question banks)
  r <text>        set reasoning for the current question
  s               submit the current answer
  q               abandon the session`,
	RunE: runPractice,
}

func init() {
	practiceCmd.Flags().String("route", "", "Route id to practice (required except with --mode errors)")
	practiceCmd.Flags().String("mode", string(selection.ModeByTopics), "Selection mode: subtopics, topics, route, errors")
	practiceCmd.Flags().StringSlice("topics", nil, "Topic ids for subtopics/topics modes")
	practiceCmd.Flags().StringSlice("subtopics", nil, "Subtopic ids for subtopics mode")
	practiceCmd.Flags().Int("time", 60, "Seconds per question")
	practiceCmd.Flags().Int("per-leaf", 3, "Questions fetched per leaf")
	practiceCmd.Flags().Bool("no-interleave", false, "Keep questions grouped instead of mixing topics")
	practiceCmd.Flags().Bool("reasoning", false, "Require written reasoning and generate AI feedback on it")
	practiceCmd.Flags().Int("max-leaves", 5, "Subtopic cap for errors mode")
}

func runPractice(cmd *cobra.Command, args []string) error {
	cfg, routeID, err := practiceConfig(cmd)
	if err != nil {
		return err
	}
	user, _ := cmd.Flags().GetString("user")
	log := newLogger(cmd)

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath, log)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer st.Close()

	ctx := cmd.Context()

	var forest []*content.TreeNode
	if cfg.Mode != selection.ModeByErrorHistory {
		nodes, err := st.FetchContentNodes(ctx, routeID)
		if err != nil {
			return err
		}
		forest = content.Resolve(nodes)
	}

	sel := &selection.Selector{Questions: st, Attempts: st}
	qs, err := sel.SelectQuestions(ctx, cfg, forest, user)
	if errors.Is(err, selection.ErrNoQuestions) {
		fmt.Println("No questions matched. Pick different topics, or practice first so errors mode has history to work with.")
		return nil
	}
	if err != nil {
		return err
	}

	rng := interleave.NewRand(uint64(time.Now().UnixNano()))
	if cfg.Interleaving {
		qs = interleave.Interleave(qs, rng)
	} else {
		qs = interleave.Shuffle(qs, rng)
	}

	sess := session.New(uuid.NewString(), cfg, qs, st.Attempts(user), log)
	if err := sess.Start(); err != nil {
		return err
	}

	if err := runSessionLoop(ctx, sess); err != nil {
		return err
	}
	if sess.Phase != session.PhaseCompleted {
		fmt.Println("\nSession abandoned.")
		return nil
	}

	printSummary(session.BuildSummary(sess))

	if cfg.Reasoning {
		runFeedback(ctx, sess, st.Attempts(user), log)
	}
	return nil
}

func practiceConfig(cmd *cobra.Command) (selection.Config, string, error) {
	modeStr, _ := cmd.Flags().GetString("mode")
	mode, ok := selection.ParseMode(modeStr)
	if !ok {
		return selection.Config{}, "", fmt.Errorf("unknown mode %q (want subtopics, topics, route or errors)", modeStr)
	}

	routeID, _ := cmd.Flags().GetString("route")
	if routeID == "" && mode != selection.ModeByErrorHistory {
		return selection.Config{}, "", fmt.Errorf("--route is required for mode %s", mode)
	}

	cfg := selection.DefaultConfig()
	cfg.Mode = mode
	cfg.TimePerQuestionSecs, _ = cmd.Flags().GetInt("time")
	cfg.QuestionsPerLeaf, _ = cmd.Flags().GetInt("per-leaf")
	cfg.MaxLeavesForErrorHistory, _ = cmd.Flags().GetInt("max-leaves")
	cfg.TopicIDs, _ = cmd.Flags().GetStringSlice("topics")
	cfg.SubtopicIDs, _ = cmd.Flags().GetStringSlice("subtopics")
	cfg.Reasoning, _ = cmd.Flags().GetBool("reasoning")
	noInterleave, _ := cmd.Flags().GetBool("no-interleave")
	cfg.Interleaving = !noInterleave

	if cfg.TimePerQuestionSecs <= 0 {
		return selection.Config{}, "", fmt.Errorf("--time must be positive")
	}
	if cfg.QuestionsPerLeaf <= 0 {
		return selection.Config{}, "", fmt.Errorf("--per-leaf must be positive")
	}
	return cfg, routeID, nil
}

// runSessionLoop drives the state machine from stdin while a background
// ticker counts the question clock down. The mutex covers every session
// access; tick and input land on different goroutines.
func runSessionLoop(ctx context.Context, sess *session.Session) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var mu sync.Mutex
	shown := -1

	render := func() {
		if sess.Phase != session.PhaseRunning || sess.CurrentIndex == shown {
			return
		}
		shown = sess.CurrentIndex
		printQuestion(sess.CurrentIndex, len(sess.Questions), sess.CurrentQuestion(), sess.Config.TimePerQuestionSecs)
	}

	mu.Lock()
	render()
	mu.Unlock()

	timer := session.StartTimer(ctx, time.Second, func() {
		mu.Lock()
		defer mu.Unlock()
		before := sess.TimeRemaining
		sess.Tick(ctx)
		if sess.Phase == session.PhaseCompleted {
			cancel()
			return
		}
		if sess.TimeRemaining > before {
			fmt.Println("\nTime is up, answer recorded.")
		}
		render()
	})
	defer timer.Stop()

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		close(lines)
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			mu.Lock()
			done := handleInput(ctx, sess, line)
			if sess.Phase == session.PhaseCompleted {
				done = true
			}
			render()
			mu.Unlock()
			if done {
				return nil
			}
		}
	}
}

// handleInput applies one stdin line to the session. Returns true when the
// loop should stop.
func handleInput(ctx context.Context, sess *session.Session, line string) bool {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "":
		return false
	case trimmed == "q":
		return true
	case trimmed == "s":
		submit(ctx, sess)
		return false
	case strings.HasPrefix(trimmed, "r "):
		sess.SetReasoning(strings.TrimSpace(trimmed[2:]))
		fmt.Println("Reasoning saved. Type s to submit.")
		return false
	default:
		sess.SelectAnswer(trimmed)
		if sess.Config.Reasoning {
			fmt.Println("Answer picked. Add reasoning with r <text>, then s to submit.")
			return false
		}
		submit(ctx, sess)
		return false
	}
}

func submit(ctx context.Context, sess *session.Session) {
	err := sess.Submit(ctx)
	switch {
	case errors.Is(err, session.ErrReasoningTooShort):
		fmt.Printf("Reasoning needs at least %d characters. Add more with r <text>.\n", session.MinReasoningLength)
	case err != nil:
		fmt.Println(err)
	}
}

func printQuestion(index, total int, q *question.Question, secs int) {
	fmt.Printf("\n[%d/%d] %s  (%ds)\n", index+1, total, q.TopicName, secs)
	fmt.Println(q.PromptText)
	for i, opt := range q.Options {
		fmt.Printf("  %s) %s\n", question.OptionKey(i), opt)
	}
	fmt.Print("> ")
}

func printSummary(sum *session.Summary) {
	fmt.Printf("\nSession %s complete: %d/%d correct (%.0f%%)\n",
		sum.SessionID, sum.TotalCorrect, sum.TotalQuestions, sum.Accuracy*100)
	for _, tr := range sum.TopicResults {
		fmt.Printf("  %-30s %d/%d\n", tr.TopicName, tr.Correct, tr.Attempted)
	}
	if sum.PersistedGaps > 0 {
		fmt.Printf("  (%d attempts could not be saved)\n", sum.PersistedGaps)
	}
}

// runFeedback fans out AI feedback over every attempt that carries reasoning
// and reports progress as results settle. Feedback is best-effort: a missing
// provider or individual failures never fail the command.
func runFeedback(ctx context.Context, sess *session.Session, repo *store.AttemptRepo, log *zap.Logger) {
	attempts := sess.ReasonedAttempts()
	if len(attempts) == 0 {
		return
	}

	provider, err := llm.NewProviderFromEnv(ctx, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Skipping reasoning feedback.")
		return
	}

	byID := make(map[string]question.Question, len(sess.Questions))
	for _, q := range sess.Questions {
		byID[q.ID] = q
	}

	items := make([]feedback.Request, 0, len(attempts))
	for _, a := range attempts {
		q := byID[a.QuestionID]
		items = append(items, feedback.Request{
			AttemptID:      a.ID,
			QuestionPrompt: q.PromptText,
			Options:        q.Options,
			CorrectAnswer:  q.CorrectKey,
			UserAnswer:     a.UserAnswer,
			IsCorrect:      a.Correct,
			UserReasoning:  a.Reasoning,
		})
	}

	gen := feedback.NewGenerator(feedback.NewLLMService(provider, feedback.DefaultServiceConfig()), repo, log)
	fmt.Printf("\nGenerating feedback on %d explanations...\n", len(items))

	for ev := range gen.Run(ctx, items) {
		fmt.Printf("  %s ", feedbackProgress(gen))
		if ev.Err != nil {
			fmt.Printf("attempt %s: feedback failed\n", ev.AttemptID)
			continue
		}
		fmt.Printf("attempt %s:\n", ev.AttemptID)
		q := byID[questionIDFor(attempts, ev.AttemptID)]
		if q.PromptText != "" {
			fmt.Printf("    Q: %s\n", q.PromptText)
		}
		fmt.Printf("    Clarity: %s\n", ev.Result.Fields.Technique1)
		fmt.Printf("    Gaps:    %s\n", ev.Result.Fields.Technique2)
		fmt.Printf("    Overall: %s\n", ev.Result.Fields.Overall)
	}

	completed, failed, total := gen.Progress()
	fmt.Printf("Feedback done: %d succeeded, %d failed, %d total.\n", completed, failed, total)
}

// feedbackProgress renders the progress indicator. Failed items stay out of
// the numerator; they only hold the denominator at the issued total.
func feedbackProgress(gen *feedback.Generator) string {
	completed, _, total := gen.Progress()
	return fmt.Sprintf("[%d/%d]", completed, total)
}

func questionIDFor(attempts []session.Attempt, attemptID string) string {
	for _, a := range attempts {
		if a.ID == attemptID {
			return a.QuestionID
		}
	}
	return ""
}
