package scheduler

import (
	"context"
	"errors"
	"testing"

	"mapper/internal/worker"

	"github.com/stretchr/testify/require"
)

type fakePool struct {
	SubmitFn func(name string, t worker.Task) bool
	stopped  bool
}

func (f *fakePool) Submit(name string, t worker.Task) bool {
	if f.SubmitFn != nil {
		return f.SubmitFn(name, t)
	}
	panic("unexpected Submit")
}

func (f *fakePool) Stop() { f.stopped = true }

type fakeSweeper struct {
	n   int64
	err error
}

func (f fakeSweeper) SweepExpiredSessions(context.Context) (int64, error) { return f.n, f.err }

func TestRegisterSubmitsToPool(t *testing.T) {
	var submitted []string
	pool := &fakePool{SubmitFn: func(name string, t worker.Task) bool {
		submitted = append(submitted, name)
		return true
	}}
	s := New(pool)
	require.NoError(t, s.Register("@every 1h", "sweep", func(context.Context) error { return nil }))

	entries := s.cron.Entries()
	require.Len(t, entries, 1)
	entries[0].Job.Run()
	entries[0].Job.Run()
	require.Equal(t, []string{"sweep", "sweep"}, submitted)
	require.False(t, pool.stopped)
}

func TestRegisterStoppedPool(t *testing.T) {
	s := New(&fakePool{SubmitFn: func(string, worker.Task) bool { return false }})
	require.NoError(t, s.Register("* * * * *", "late", nil))
	require.NotPanics(t, func() { s.cron.Entries()[0].Job.Run() })
}

func TestRegisterInvalidSpec(t *testing.T) {
	s := New(&fakePool{})
	err := s.Register("not a spec", "sweep", nil)
	require.ErrorContains(t, err, "Register sweep")
}

func TestStartStop(t *testing.T) {
	s := New(&fakePool{})
	s.Start()
	s.Stop()
}

func TestSweepSessions(t *testing.T) {
	require.NoError(t, SweepSessions(fakeSweeper{n: 3})(context.Background()))
	require.NoError(t, SweepSessions(fakeSweeper{})(context.Background()))
	require.EqualError(t, SweepSessions(fakeSweeper{err: errors.New("db")})(context.Background()), "db")
}
