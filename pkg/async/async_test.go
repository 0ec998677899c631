package async_test

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/totpgate/pkg/async"
)

func TestAsync_Await(t *testing.T) {
	t.Parallel()

	f := async.Async(context.Background(), 42, func(_ context.Context, n int) (string, error) {
		time.Sleep(10 * time.Millisecond)
		return strconv.Itoa(n), nil
	})

	res, err := f.Await()
	require.NoError(t, err)
	assert.Equal(t, "42", res)
	assert.True(t, f.IsComplete())
}

func TestAsync_Error(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")

	f := async.Async(context.Background(), "x", func(context.Context, string) (int, error) {
		return 0, boom
	})

	_, err := f.Await()
	assert.ErrorIs(t, err, boom)
}

func TestAsync_Panic(t *testing.T) {
	t.Parallel()

	f := async.Async(context.Background(), "x", func(context.Context, string) (int, error) {
		panic("renderer exploded")
	})

	res, err := f.Await()
	assert.ErrorIs(t, err, async.ErrPanic)
	assert.Contains(t, err.Error(), "renderer exploded")
	assert.Zero(t, res)
}

func TestAsync_PreCanceledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := make(chan struct{}, 1)
	f := async.Async(ctx, 1, func(context.Context, int) (int, error) {
		called <- struct{}{}
		return 1, nil
	})

	_, err := f.Await()
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, called)
}

func TestFuture_AwaitContext(t *testing.T) {
	t.Parallel()

	t.Run("completes first", func(t *testing.T) {
		t.Parallel()
		f := async.Async(context.Background(), 2, func(_ context.Context, n int) (int, error) {
			return n * 2, nil
		})
		res, err := f.AwaitContext(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 4, res)
	})

	t.Run("context done first", func(t *testing.T) {
		t.Parallel()
		release := make(chan struct{})
		defer close(release)

		f := async.Async(context.Background(), 0, func(context.Context, int) (int, error) {
			<-release
			return 1, nil
		})

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err := f.AwaitContext(ctx)
		assert.ErrorIs(t, err, async.ErrCanceled)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.False(t, f.IsComplete())
	})
}
