package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modsoc/internal/application/piazza/testutil"
	"modsoc/internal/shared/errors"
)

func TestLockScope(t *testing.T) {
	ds := uint(7)
	assert.Equal(t, "all", LockScope(nil))
	assert.Equal(t, "dataset:7", LockScope(&ds))
}

type releaseFailingLock struct{}

func (releaseFailingLock) Acquire(ctx context.Context, scope string) (func(context.Context) error, error) {
	return func(context.Context) error { return assert.AnError }, nil
}

func TestRunExclusive(t *testing.T) {
	t.Run("releases after fn", func(t *testing.T) {
		lock := &testutil.MockDatasetLock{}
		ran := false

		err := RunExclusive(context.Background(), lock, "dataset:1", func(ctx context.Context) error {
			ran = true
			assert.Equal(t, []string{"dataset:1"}, lock.Acquired)
			assert.Empty(t, lock.Released)
			return nil
		})
		require.NoError(t, err)
		assert.True(t, ran)
		assert.Equal(t, []string{"dataset:1"}, lock.Released)
	})

	t.Run("held lock skips fn", func(t *testing.T) {
		lock := &testutil.MockDatasetLock{Held: map[string]error{
			"all": errors.NewConflictError("dataset pass already running", "all"),
		}}

		err := RunExclusive(context.Background(), lock, "all", func(ctx context.Context) error {
			t.Fatal("fn must not run")
			return nil
		})
		assert.True(t, errors.IsConflictError(err))
		assert.Empty(t, lock.Released)
	})

	t.Run("fn error still releases", func(t *testing.T) {
		lock := &testutil.MockDatasetLock{}

		err := RunExclusive(context.Background(), lock, "all", func(ctx context.Context) error {
			return assert.AnError
		})
		assert.ErrorIs(t, err, assert.AnError)
		assert.Equal(t, []string{"all"}, lock.Released)
	})

	t.Run("release error surfaces", func(t *testing.T) {
		err := RunExclusive(context.Background(), releaseFailingLock{}, "all", func(ctx context.Context) error {
			return nil
		})
		assert.ErrorIs(t, err, assert.AnError)
	})
}
