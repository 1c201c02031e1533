package mlflow

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tarek7669/mlflow/entities"
)

// fakeClock is a manually advanced clock for pinning timestamps.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.UnixMilli(1700000000000)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestStore(t *testing.T, optFns ...Option) (*FileStore, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	opts := append([]Option{WithClock(clock.Now)}, optFns...)
	fs, err := NewFileStore(context.Background(), t.TempDir(), opts...)
	require.NoError(t, err)
	return fs, clock
}

func TestNewFileStore_CreatesDefaultExperiment(t *testing.T) {
	fs, _ := newTestStore(t)

	exp, err := fs.GetExperiment(context.Background(), DefaultExperimentID)
	require.NoError(t, err)
	require.Equal(t, DefaultExperimentName, exp.Name)
	require.Equal(t, entities.LifecycleStageActive, exp.LifecycleStage)
}

func TestNewFileStore_ReopenKeepsState(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	fs, err := NewFileStore(ctx, root)
	require.NoError(t, err)
	exp, err := fs.CreateExperiment(ctx, "reopened")
	require.NoError(t, err)

	fs2, err := NewFileStore(ctx, root)
	require.NoError(t, err)
	got, err := fs2.GetExperiment(ctx, exp.ExperimentID)
	require.NoError(t, err)
	require.Equal(t, "reopened", got.Name)
}

func TestCreateExperiment(t *testing.T) {
	ctx := context.Background()
	fs, _ := newTestStore(t)

	exp, err := fs.CreateExperiment(ctx, "alpha")
	require.NoError(t, err)
	require.Equal(t, "1", exp.ExperimentID)
	require.Equal(t, entities.LifecycleStageActive, exp.LifecycleStage)

	exp2, err := fs.CreateExperiment(ctx, "beta")
	require.NoError(t, err)
	require.Equal(t, "2", exp2.ExperimentID)

	_, err = fs.CreateExperiment(ctx, "alpha")
	require.Equal(t, ErrCodeAlreadyExists, ErrorCodeOf(err))

	_, err = fs.CreateExperiment(ctx, "")
	require.Equal(t, ErrCodeInvalidArgument, ErrorCodeOf(err))
}

func TestGetExperiment_NotFound(t *testing.T) {
	fs, _ := newTestStore(t)

	_, err := fs.GetExperiment(context.Background(), "123")
	require.Equal(t, ErrCodeNotFound, ErrorCodeOf(err))
	require.EqualError(t, err, "Could not find experiment with ID 123")
}

func TestDeleteRestoreExperiment(t *testing.T) {
	ctx := context.Background()
	fs, _ := newTestStore(t)

	exp, err := fs.CreateExperiment(ctx, "doomed")
	require.NoError(t, err)

	require.NoError(t, fs.DeleteExperiment(ctx, exp.ExperimentID))
	got, err := fs.GetExperiment(ctx, exp.ExperimentID)
	require.NoError(t, err)
	require.Equal(t, entities.LifecycleStageDeleted, got.LifecycleStage)

	// Double delete is an invalid transition.
	err = fs.DeleteExperiment(ctx, exp.ExperimentID)
	require.Equal(t, ErrCodeInvalidState, ErrorCodeOf(err))

	require.NoError(t, fs.RestoreExperiment(ctx, exp.ExperimentID))
	got, err = fs.GetExperiment(ctx, exp.ExperimentID)
	require.NoError(t, err)
	require.True(t, got.Active())
}

func TestListExperiments(t *testing.T) {
	ctx := context.Background()
	fs, _ := newTestStore(t)

	for _, name := range []string{"a", "b", "c"} {
		_, err := fs.CreateExperiment(ctx, name)
		require.NoError(t, err)
	}

	exps, err := fs.ListExperiments(ctx)
	require.NoError(t, err)
	require.Len(t, exps, 4) // incl. default
	require.Equal(t, DefaultExperimentID, exps[0].ExperimentID)
}
