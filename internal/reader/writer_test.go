package reader

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestWriter_RunsSubmittedTasks(t *testing.T) {
	w := NewWriter(2, testLogger())
	w.Start()

	var ran atomic.Int32
	for i := 0; i < 10; i++ {
		w.Submit("count", func(ctx context.Context) error {
			ran.Add(1)
			return nil
		})
	}
	w.Shutdown()

	if got := ran.Load(); got != 10 {
		t.Errorf("Expected 10 tasks to run, got %d", got)
	}
}

func TestWriter_FailureIsDropped(t *testing.T) {
	w := NewWriter(1, testLogger())
	w.Start()

	var after atomic.Bool
	w.Submit("failing", func(ctx context.Context) error {
		return errors.New("store down")
	})
	w.Submit("next", func(ctx context.Context) error {
		after.Store(true)
		return nil
	})
	w.Shutdown()

	if !after.Load() {
		t.Error("Expected the writer to keep going after a failed task")
	}
}

func TestWriter_SubmitAfterShutdown(t *testing.T) {
	w := NewWriter(1, testLogger())
	w.Start()
	w.Shutdown()

	// must not panic or block
	w.Submit("late", func(ctx context.Context) error { return nil })
	w.Shutdown()
}

func TestWriter_ConcurrentSubmitAndShutdown(t *testing.T) {
	w := NewWriter(2, testLogger())
	w.Start()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				w.Submit("noop", func(ctx context.Context) error { return nil })
			}
		}()
	}
	// racing Shutdown against the submitters must never panic on a closed
	// channel, only drop the late tasks
	w.Shutdown()
	wg.Wait()
}
