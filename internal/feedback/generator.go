package feedback

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Event reports the outcome of one feedback request. Exactly one of Result
// and Err is set.
type Event struct {
	AttemptID string
	Result    *Result
	Err       error
}

// Generator fans out feedback requests after a session completes. Each
// request is independent: a failure for one attempt never cancels or blocks
// the others, and each success is persisted as soon as it lands.
type Generator struct {
	svc   Service
	store ReasoningStore
	log   *zap.Logger

	total     atomic.Int64
	completed atomic.Int64
	failed    atomic.Int64

	mu      sync.Mutex
	results map[string]Event
}

// NewGenerator creates a feedback generator. A nil logger is replaced with a
// no-op logger.
func NewGenerator(svc Service, store ReasoningStore, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{
		svc:     svc,
		store:   store,
		log:     log,
		results: make(map[string]Event),
	}
}

// Run issues one feedback request per item concurrently and returns a channel
// that receives one Event per issued request, in completion order. The channel
// is closed once every request has settled. Items without reasoning text are
// skipped and never counted. Callers may drain the channel or walk away; the
// requests finish and persist either way.
func (g *Generator) Run(ctx context.Context, items []Request) <-chan Event {
	issued := make([]Request, 0, len(items))
	for _, it := range items {
		if it.UserReasoning == "" {
			continue
		}
		issued = append(issued, it)
	}
	g.total.Store(int64(len(issued)))

	events := make(chan Event, len(issued))
	if len(issued) == 0 {
		close(events)
		return events
	}

	var grp errgroup.Group
	for _, item := range issued {
		grp.Go(func() error {
			events <- g.process(ctx, item)
			return nil
		})
	}

	go func() {
		_ = grp.Wait()
		close(events)
	}()

	return events
}

func (g *Generator) process(ctx context.Context, item Request) Event {
	ev := Event{AttemptID: item.AttemptID}

	res, err := g.svc.RequestFeedback(ctx, item)
	if err == nil {
		err = g.store.UpdateReasoningFeedback(ctx, item.AttemptID, res.Fields)
	}

	if err != nil {
		g.failed.Add(1)
		g.log.Warn("feedback request failed",
			zap.String("attempt_id", item.AttemptID),
			zap.Error(err))
		ev.Err = err
	} else {
		g.completed.Add(1)
		g.log.Debug("feedback persisted",
			zap.String("attempt_id", item.AttemptID))
		ev.Result = res
	}

	g.mu.Lock()
	g.results[item.AttemptID] = ev
	g.mu.Unlock()

	return ev
}

// Progress reports how many requests have succeeded and failed out of the
// total issued. Safe to call from any goroutine while requests are in flight.
func (g *Generator) Progress() (completed, failed, total int) {
	return int(g.completed.Load()), int(g.failed.Load()), int(g.total.Load())
}

// Results returns a snapshot of the per-attempt outcomes settled so far.
func (g *Generator) Results() map[string]Event {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make(map[string]Event, len(g.results))
	for k, v := range g.results {
		out[k] = v
	}
	return out
}
