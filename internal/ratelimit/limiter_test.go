package ratelimit

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nurture/internal/ratelimit/models"
	"nurture/internal/ratelimit/store/bucket"
	"nurture/pkg/platform/circuit"
)

var errStoreDown = errors.New("connection refused")

// flakyStore fails while down is set and otherwise delegates to memory.
type flakyStore struct {
	down  bool
	calls int
	inner *bucket.InMemoryBucketStore
}

func (f *flakyStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.Result, error) {
	f.calls++
	if f.down {
		return nil, errStoreDown
	}
	return f.inner.Allow(ctx, key, limit, window)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := New(nil, 1, time.Minute)
	assert.Error(t, err)
	_, err = New(bucket.NewInMemoryBucketStore(), 0, time.Minute)
	assert.Error(t, err)
	_, err = New(bucket.NewInMemoryBucketStore(), 1, 0)
	assert.Error(t, err)
}

func TestCheckWithoutFallbackReturnsStoreErrors(t *testing.T) {
	primary := &flakyStore{down: true, inner: bucket.NewInMemoryBucketStore()}
	l, err := New(primary, 2, time.Minute, WithLogger(quietLogger()))
	require.NoError(t, err)

	_, err = l.Check(context.Background(), "k")
	assert.ErrorIs(t, err, errStoreDown)
	assert.False(t, l.Degraded())
}

func TestCheckFallsBackWhileCircuitOpen(t *testing.T) {
	ctx := context.Background()
	primary := &flakyStore{down: true, inner: bucket.NewInMemoryBucketStore()}
	fallback := bucket.NewInMemoryBucketStore()
	breaker := circuit.New("test", circuit.WithFailureThreshold(2), circuit.WithSuccessThreshold(2))

	l, err := New(primary, 3, time.Minute,
		WithFallback(fallback),
		WithBreaker(breaker),
		WithLogger(quietLogger()),
	)
	require.NoError(t, err)

	t.Run("failures are answered from the fallback", func(t *testing.T) {
		res, err := l.Check(ctx, "k")
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.False(t, l.Degraded())

		_, err = l.Check(ctx, "k")
		require.NoError(t, err)
		assert.True(t, l.Degraded())
	})

	t.Run("fallback enforces the same limit", func(t *testing.T) {
		res, err := l.Check(ctx, "k")
		require.NoError(t, err)
		assert.True(t, res.Allowed)

		res, err = l.Check(ctx, "k")
		require.NoError(t, err)
		assert.False(t, res.Allowed)
	})

	t.Run("primary recovery closes the circuit", func(t *testing.T) {
		primary.down = false

		_, err := l.Check(ctx, "other")
		require.NoError(t, err)
		assert.True(t, l.Degraded())

		res, err := l.Check(ctx, "other")
		require.NoError(t, err)
		assert.False(t, l.Degraded())
		assert.Equal(t, 1, res.Remaining)
	})
}
