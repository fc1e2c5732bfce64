package presenter

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDebouncer_DefaultDelay(t *testing.T) {
	assert.Equal(t, DefaultDebounce, NewDebouncer(0).delay)
	assert.Equal(t, 20*time.Millisecond, NewDebouncer(20*time.Millisecond).delay)
}

func TestDebouncer_OnlyLastTriggerRuns(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	defer d.Stop()

	var (
		mu   sync.Mutex
		runs []string
	)
	for _, q := range []string{"h", "hd", "hdfc"} {
		d.Trigger(context.Background(), func(ctx context.Context) {
			mu.Lock()
			runs = append(runs, q)
			mu.Unlock()
		})
	}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(runs) == 1
	}, time.Second, 5*time.Millisecond)

	time.Sleep(60 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"hdfc"}, runs)
}

func TestDebouncer_SupersededJobIsCancelled(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	defer d.Stop()

	started := make(chan struct{})
	cancelled := make(chan struct{})
	d.Run(context.Background(), func(ctx context.Context) {
		close(started)
		<-ctx.Done()
		close(cancelled)
	})
	<-started

	d.Trigger(context.Background(), func(ctx context.Context) {})

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("running job was not cancelled when superseded")
	}
}

func TestDebouncer_Stop(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var ran atomic.Bool
	d.Trigger(context.Background(), func(ctx context.Context) { ran.Store(true) })
	d.Stop()

	time.Sleep(50 * time.Millisecond)
	assert.False(t, ran.Load())
}
