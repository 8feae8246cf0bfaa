package session

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestTimer_TicksAndStops(t *testing.T) {
	var mu sync.Mutex
	ticks := 0

	timer := StartTimer(context.Background(), 5*time.Millisecond, func() {
		mu.Lock()
		ticks++
		mu.Unlock()
	})

	time.Sleep(40 * time.Millisecond)
	timer.Stop()

	mu.Lock()
	after := ticks
	mu.Unlock()

	if after == 0 {
		t.Fatal("timer never ticked")
	}

	// No tick may land after Stop returns.
	time.Sleep(20 * time.Millisecond)
	mu.Lock()
	final := ticks
	mu.Unlock()
	if final != after {
		t.Errorf("tick fired after Stop: %d -> %d", after, final)
	}
}

func TestTimer_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	timer := StartTimer(ctx, time.Millisecond, func() {})
	cancel()

	done := make(chan struct{})
	go func() {
		timer.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return after context cancellation")
	}
}
