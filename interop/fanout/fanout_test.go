package fanout

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/NetPo4ki/go-borrow/borrow"
)

func TestDoHappy(t *testing.T) {
	t.Parallel()
	type config struct{ limit int }
	cfg := config{limit: 7}
	g := borrow.New(&cfg)
	var seen atomic.Int64
	err := Do(context.Background(), g, 4, func(_ context.Context, v config) error {
		if v.limit != 7 {
			t.Errorf("worker observed limit %d, want 7", v.limit)
		}
		seen.Add(1)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := seen.Load(); got != 4 {
		t.Fatalf("expected 4 workers to run, got %d", got)
	}
	assertCloseImmediate(t, g)
}

func TestDoErrorStillReleasesHandles(t *testing.T) {
	t.Parallel()
	v := 42
	g := borrow.New(&v)
	err := Do(context.Background(), g, 3, func(ctx context.Context, _ int) error {
		return errors.New("boom")
	})
	if err == nil {
		t.Fatal("expected worker error")
	}
	assertCloseImmediate(t, g)
}

func TestDoCancelPropagates(t *testing.T) {
	t.Parallel()
	v := 42
	g := borrow.New(&v)
	var failed atomic.Bool
	err := Do(context.Background(), g, 3, func(ctx context.Context, _ int) error {
		if failed.CompareAndSwap(false, true) {
			return errors.New("boom")
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(250 * time.Millisecond):
			return errors.New("sibling cancellation not observed")
		}
	})
	if err == nil {
		t.Fatal("expected error from cancelled group")
	}
	assertCloseImmediate(t, g)
}

func TestDoZeroWorkers(t *testing.T) {
	t.Parallel()
	v := 42
	g := borrow.New(&v)
	if err := Do(context.Background(), g, 0, func(context.Context, int) error { return nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertCloseImmediate(t, g)
}

func assertCloseImmediate[T any](t *testing.T, g *borrow.Guard[T]) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		g.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("Close blocked after Do returned; a handle leaked")
	}
}
