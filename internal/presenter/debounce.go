package presenter

import (
	"context"
	"sync"
	"time"
)

// DefaultDebounce is the quiet period a search query must survive before it is run.
const DefaultDebounce = 500 * time.Millisecond

// Debouncer runs at most one pending job at a time. Scheduling a job
// supersedes the previous one: its timer is stopped and the context it was
// given is cancelled, so a job that already started can tell its results
// are no longer wanted.
type Debouncer struct {
	delay time.Duration

	mu     sync.Mutex
	timer  *time.Timer
	cancel context.CancelFunc
}

// NewDebouncer creates a Debouncer. A non-positive delay uses DefaultDebounce.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay}
}

// Trigger schedules fn to run after the debounce delay.
func (d *Debouncer) Trigger(ctx context.Context, fn func(ctx context.Context)) {
	d.schedule(ctx, d.delay, fn)
}

// Run supersedes any pending job and starts fn right away on its own goroutine.
func (d *Debouncer) Run(ctx context.Context, fn func(ctx context.Context)) {
	d.schedule(ctx, 0, fn)
}

// Stop cancels the pending or running job, if any.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
}

func (d *Debouncer) schedule(ctx context.Context, delay time.Duration, fn func(ctx context.Context)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()

	jobCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.timer = time.AfterFunc(delay, func() {
		if jobCtx.Err() != nil {
			return
		}
		fn(jobCtx)
	})
}

func (d *Debouncer) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}
