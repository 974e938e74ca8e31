package sync

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestPollerRefreshesOnInterval(t *testing.T) {
	var calls atomic.Int64
	p := NewPoller("dashboard", 10*time.Millisecond, func(ctx context.Context) error {
		calls.Add(1)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for calls.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("expected at least 3 refreshes, got %d", calls.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after context cancellation")
	}
}

func TestPollerSwallowsRefreshErrors(t *testing.T) {
	var calls atomic.Int64
	p := NewPoller("dashboard", 5*time.Millisecond, func(ctx context.Context) error {
		calls.Add(1)
		return errors.New("backend down")
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for calls.Load() < 2 {
		select {
		case <-deadline:
			t.Fatalf("expected polling to continue after errors, got %d calls", calls.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	<-done
}

func TestPollerStopsImmediatelyWhenCancelled(t *testing.T) {
	p := NewPoller("dashboard", time.Hour, func(ctx context.Context) error {
		t.Error("refresh should not run")
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return for a cancelled context")
	}
}
