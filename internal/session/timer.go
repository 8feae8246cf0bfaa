package session

import (
	"context"
	"time"
)

// Timer is the external countdown driver: it calls the given tick function
// once per interval until stopped. The state machine never owns a timer;
// whoever runs the session starts one per question lifetime and stops it when
// the session leaves PhaseRunning, so a stale tick can never fire after the
// state has moved on.
type Timer struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// StartTimer launches the driver. tick runs on the timer goroutine; callers
// that share session state with other goroutines must synchronize inside it.
func StartTimer(ctx context.Context, interval time.Duration, tick func()) *Timer {
	ctx, cancel := context.WithCancel(ctx)
	t := &Timer{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(t.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				tick()
			}
		}
	}()

	return t
}

// Stop cancels the driver and waits for the goroutine to exit, guaranteeing
// no tick is in flight afterwards.
func (t *Timer) Stop() {
	t.cancel()
	<-t.done
}
