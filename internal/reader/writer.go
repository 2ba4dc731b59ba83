package reader

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Task is a unit of best-effort persistence work.
type Task func(ctx context.Context) error

// Writer runs fire-and-forget store writes on a fixed pool of workers.
// Failures are logged and dropped: view counters and last-read pointers are
// analytics state, not correctness-critical, so there is no retry and no
// error ever reaches a request path.
type Writer struct {
	workerCount int
	taskTimeout time.Duration
	tasks       chan queuedTask
	wg          sync.WaitGroup

	// mu orders Submit against Shutdown's close of the task channel
	mu     sync.RWMutex
	closed bool

	logger *slog.Logger
}

type queuedTask struct {
	name string
	run  Task
}

func NewWriter(workerCount int, logger *slog.Logger) *Writer {
	if workerCount < 1 {
		workerCount = 1
	}
	return &Writer{
		workerCount: workerCount,
		taskTimeout: 5 * time.Second,
		tasks:       make(chan queuedTask, workerCount*16),
		logger:      logger,
	}
}

// Start launches the worker goroutines.
func (w *Writer) Start() {
	for i := 0; i < w.workerCount; i++ {
		w.wg.Add(1)
		go w.worker()
	}
	w.logger.Info("background_writer_started", "workers", w.workerCount)
}

// Submit queues a write without blocking the caller. A full queue or a
// stopped writer drops the task; that is the contract for best-effort
// writes, so the drop is logged and nothing else happens.
func (w *Writer) Submit(name string, task Task) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.closed {
		w.logger.Warn("write_dropped_writer_stopped", "task", name)
		return
	}
	select {
	case w.tasks <- queuedTask{name: name, run: task}:
	default:
		w.logger.Warn("write_dropped_queue_full", "task", name)
	}
}

// Shutdown stops intake and waits for queued tasks to drain. The channel is
// only closed once every in-flight Submit has released its read lock, so a
// late Submit can never send on a closed channel.
func (w *Writer) Shutdown() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	close(w.tasks)
	w.mu.Unlock()

	w.wg.Wait()
	w.logger.Info("background_writer_stopped")
}

func (w *Writer) worker() {
	defer w.wg.Done()

	for task := range w.tasks {
		ctx, cancel := context.WithTimeout(context.Background(), w.taskTimeout)
		if err := task.run(ctx); err != nil {
			// log-and-drop, no retry
			w.logger.Error("best_effort_write_failed", "task", task.name, "error", err)
		}
		cancel()
	}
}
