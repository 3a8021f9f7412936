package lease

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLease(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	l := NewLocal()
	l.now = func() time.Time { return now }

	t.Run("second acquire fails while held", func(t *testing.T) {
		release, ok, err := l.Acquire(ctx, time.Minute)
		require.NoError(t, err)
		require.True(t, ok)

		_, ok, err = l.Acquire(ctx, time.Minute)
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, release(ctx))
		release, ok, err = l.Acquire(ctx, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
		require.NoError(t, release(ctx))
	})

	t.Run("expired lease can be taken over and the stale release is ignored", func(t *testing.T) {
		staleRelease, ok, err := l.Acquire(ctx, time.Minute)
		require.NoError(t, err)
		require.True(t, ok)

		now = now.Add(2 * time.Minute)
		freshRelease, ok, err := l.Acquire(ctx, time.Minute)
		require.NoError(t, err)
		require.True(t, ok)

		require.NoError(t, staleRelease(ctx))
		_, ok, err = l.Acquire(ctx, time.Minute)
		require.NoError(t, err)
		assert.False(t, ok, "stale release must not free the new holder's lease")

		require.NoError(t, freshRelease(ctx))
	})

	t.Run("non-positive ttl is rejected", func(t *testing.T) {
		_, _, err := l.Acquire(ctx, 0)
		assert.Error(t, err)
	})
}
