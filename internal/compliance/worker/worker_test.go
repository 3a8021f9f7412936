package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staywatch/internal/compliance/service/alerts"
	dErrors "staywatch/pkg/domain-errors"
)

type fakeCycle struct {
	evaluations atomic.Int32
	dispatches  atomic.Int32
	evalErr     error
	dispatchErr error
}

func (f *fakeCycle) EvaluateAll(context.Context) (*alerts.BatchReport, error) {
	f.evaluations.Add(1)
	if f.evalErr != nil {
		return nil, f.evalErr
	}
	return &alerts.BatchReport{}, nil
}

func (f *fakeCycle) DispatchNotifications(context.Context) (*alerts.DispatchReport, error) {
	f.dispatches.Add(1)
	if f.dispatchErr != nil {
		return nil, f.dispatchErr
	}
	return &alerts.DispatchReport{Outcome: alerts.DispatchEmpty}, nil
}

func TestNew(t *testing.T) {
	_, err := New(nil, time.Second)
	assert.Error(t, err)

	_, err = New(&fakeCycle{}, 0)
	assert.Error(t, err)
}

func TestRunOnce(t *testing.T) {
	t.Run("evaluates then dispatches", func(t *testing.T) {
		cycle := &fakeCycle{}
		s, err := New(cycle, time.Hour)
		require.NoError(t, err)

		s.RunOnce(context.Background())
		assert.Equal(t, int32(1), cycle.evaluations.Load())
		assert.Equal(t, int32(1), cycle.dispatches.Load())
	})

	t.Run("evaluation failure still dispatches pending alerts", func(t *testing.T) {
		cycle := &fakeCycle{evalErr: dErrors.New(dErrors.CodeInternal, "failed to list travelers")}
		s, err := New(cycle, time.Hour)
		require.NoError(t, err)

		s.RunOnce(context.Background())
		assert.Equal(t, int32(1), cycle.dispatches.Load())
	})

	t.Run("cancelled evaluation skips dispatch", func(t *testing.T) {
		cycle := &fakeCycle{evalErr: context.Canceled}
		s, err := New(cycle, time.Hour)
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		s.RunOnce(ctx)
		assert.Equal(t, int32(0), cycle.dispatches.Load())
	})

	t.Run("dispatch disabled", func(t *testing.T) {
		cycle := &fakeCycle{}
		s, err := New(cycle, time.Hour, WithoutDispatch())
		require.NoError(t, err)

		s.RunOnce(context.Background())
		assert.Equal(t, int32(0), cycle.dispatches.Load())
	})
}

func TestRunRepeatsUntilCancelled(t *testing.T) {
	cycle := &fakeCycle{dispatchErr: errors.New("smtp down")}
	s, err := New(cycle, 5*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool {
		return cycle.evaluations.Load() >= 3
	}, 2*time.Second, time.Millisecond, "a failing dispatch must not stop the loop")

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}
