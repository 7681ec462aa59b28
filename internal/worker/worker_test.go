package worker

import (
	"bytes"
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T) *bytes.Buffer {
	buf := &bytes.Buffer{}
	logger.SetOutput(buf)
	t.Cleanup(func() { logger.SetOutput(os.Stdout) })
	return buf
}

func TestPool(t *testing.T) {
	p := NewPool(3)
	var mu sync.Mutex
	count := 0
	for i := 0; i < 5; i++ {
		require.True(t, p.Submit("count", func(context.Context) error {
			mu.Lock()
			count++
			mu.Unlock()
			return nil
		}))
	}
	p.Stop()
	require.Equal(t, 5, count)
}

func TestPoolDefaultsToOneWorker(t *testing.T) {
	p := NewPool(0)
	done := false
	require.True(t, p.Submit("one", func(context.Context) error { done = true; return nil }))
	p.Stop()
	require.True(t, done)
}

func TestSubmitAfterStop(t *testing.T) {
	p := NewPool(1)
	p.Stop()
	p.Stop()
	require.False(t, p.Submit("late", func(context.Context) error { return nil }))
}

func TestTaskErrorsAndPanicsAreLogged(t *testing.T) {
	buf := captureLog(t)
	p := NewPool(1)
	p.Submit("fails", func(context.Context) error { return errors.New("boom") })
	p.Submit("panics", func(context.Context) error { panic("oops") })
	p.Submit("nil", nil)
	ran := false
	p.Submit("after", func(context.Context) error { ran = true; return nil })
	p.Stop()

	require.True(t, ran)
	require.Contains(t, buf.String(), "task fails: boom")
	require.Contains(t, buf.String(), "task panics panic: oops")
}

func TestStopCancelsContext(t *testing.T) {
	p := NewPool(1)
	started := make(chan struct{})
	var ctxErr error
	p.Submit("wait", func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		ctxErr = ctx.Err()
		return nil
	})
	<-started
	p.Stop()
	require.ErrorIs(t, ctxErr, context.Canceled)
}
