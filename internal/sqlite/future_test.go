package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/mesh-intelligence/shelter/pkg/types"
)

func TestFuture(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	t.Run("delivers the result", func(t *testing.T) {
		f := startFuture(context.Background(), func(ctx context.Context) (int, error) {
			return 42, nil
		})
		got, err := f.Wait(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 42, got)
	})

	t.Run("cancel aborts a pending read", func(t *testing.T) {
		started := make(chan struct{})
		f := startFuture(context.Background(), func(ctx context.Context) (int, error) {
			close(started)
			<-ctx.Done()
			return 0, ctx.Err()
		})
		<-started
		f.Cancel()

		got, err := f.Wait(context.Background())
		assert.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, got)
	})

	t.Run("cancelled future never delivers a late value", func(t *testing.T) {
		release := make(chan struct{})
		f := startFuture(context.Background(), func(ctx context.Context) (int, error) {
			<-release
			return 7, nil
		})
		f.Cancel()
		close(release)

		got, err := f.Wait(context.Background())
		assert.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, got)
	})

	t.Run("cancel after completion keeps the result", func(t *testing.T) {
		f := startFuture(context.Background(), func(ctx context.Context) (string, error) {
			return "done", nil
		})
		<-f.Done()
		f.Cancel()

		got, err := f.Wait(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "done", got)
	})

	t.Run("giving up on wait does not cancel the read", func(t *testing.T) {
		release := make(chan struct{})
		f := startFuture(context.Background(), func(ctx context.Context) (int, error) {
			<-release
			return 3, nil
		})

		waitCtx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		_, err := f.Wait(waitCtx)
		assert.ErrorIs(t, err, context.DeadlineExceeded)

		close(release)
		got, err := f.Wait(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 3, got)
	})
}

func TestLoadAll(t *testing.T) {
	ctx := context.Background()
	b := setupBackend(t)
	pets := petsOf(t, b)
	id, err := pets.Insert(ctx, toto)
	require.NoError(t, err)

	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	t.Run("collects projected rows", func(t *testing.T) {
		got, err := pets.LoadAll(ctx, types.ColumnID, types.ColumnName).Wait(ctx)
		require.NoError(t, err)
		assert.Equal(t, []types.Pet{{ID: id, Name: "Toto"}}, got)
	})

	t.Run("empty table yields an empty slice", func(t *testing.T) {
		other := petsOf(t, setupBackend(t))
		got, err := other.LoadAll(ctx).Wait(ctx)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("cancelled parent context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		got, err := pets.LoadAll(cctx).Wait(ctx)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, got)
	})

	t.Run("validation errors are delivered", func(t *testing.T) {
		_, err := pets.LoadAll(ctx, "owner").Wait(ctx)
		assert.ErrorIs(t, err, types.ErrInvalidColumn)
	})
}

func TestLoadByID(t *testing.T) {
	ctx := context.Background()
	pets := petsOf(t, setupBackend(t))
	id, err := pets.Insert(ctx, toto)
	require.NoError(t, err)

	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	f := pets.LoadByID(ctx, id)
	select {
	case <-f.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("load did not complete")
	}
	got, err := f.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Toto", got.Name)

	_, err = pets.LoadByID(ctx, id+1).Wait(ctx)
	assert.ErrorIs(t, err, types.ErrNotFound)
}
