package loop

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Task is advanced once per frame by a Scheduler.
type Task interface {
	Frame(ctx context.Context) error
}

// TaskFunc adapts a function to Task.
type TaskFunc func(ctx context.Context) error

func (f TaskFunc) Frame(ctx context.Context) error { return f(ctx) }

// Scheduler calls a Task at a fixed frame rate until stopped.
type Scheduler struct {
	interval time.Duration
	stop     chan struct{}
	once     sync.Once
}

// NewScheduler creates a scheduler ticking fps times per second.
func NewScheduler(fps int) *Scheduler {
	if fps <= 0 {
		fps = 60
	}
	return &Scheduler{
		interval: time.Second / time.Duration(fps),
		stop:     make(chan struct{}),
	}
}

// Interval returns the time between frames.
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Run drives task until Stop is called, ctx is done or the task returns
// ErrStopped, all of which return nil. Any other task error is returned.
// Frames that overrun the interval are dropped rather than queued.
func (s *Scheduler) Run(ctx context.Context, task Task) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.stop:
			return nil
		case <-ticker.C:
		}

		// Stop wins over a tick that raced with it.
		select {
		case <-s.stop:
			return nil
		default:
		}

		if err := task.Frame(ctx); err != nil {
			if errors.Is(err, ErrStopped) {
				return nil
			}
			return err
		}
	}
}

// Stop ends Run. It is safe to call more than once and from any goroutine.
func (s *Scheduler) Stop() {
	s.once.Do(func() { close(s.stop) })
}
