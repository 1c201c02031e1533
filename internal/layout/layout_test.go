package layout

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tarek7669/mlflow/blobstore"
	"github.com/tarek7669/mlflow/entities"
	"github.com/tarek7669/mlflow/internal/record"
)

type fakeExperiments map[string]*entities.Experiment

func (f fakeExperiments) Experiment(_ context.Context, id string) (*entities.Experiment, error) {
	exp, ok := f[id]
	if !ok {
		return nil, &ErrExperimentNotFound{ExperimentID: id}
	}
	return exp, nil
}

func newTestManager(t *testing.T) (*Manager, *record.Codec) {
	t.Helper()
	codec := record.NewCodec(blobstore.NewMemoryStore())
	exps := fakeExperiments{
		"0": {ExperimentID: "0", Name: "Default", LifecycleStage: entities.LifecycleStageActive},
		"7": {ExperimentID: "7", Name: "seven", LifecycleStage: entities.LifecycleStageActive},
		"9": {ExperimentID: "9", Name: "gone", LifecycleStage: entities.LifecycleStageDeleted},
	}
	return NewManager(codec, exps), codec
}

func TestNewModelID(t *testing.T) {
	id := NewModelID()
	require.Regexp(t, regexp.MustCompile(`^m-[0-9a-f]{32}$`), id)
	require.NotEqual(t, id, NewModelID())
}

func TestManager_AllocateModel(t *testing.T) {
	ctx := context.Background()
	mgr, _ := newTestManager(t)

	dir, err := mgr.AllocateModel(ctx, "7", "m-1")
	require.NoError(t, err)
	require.Equal(t, "7/models/m-1", dir)

	// The same id cannot be allocated twice.
	_, err = mgr.AllocateModel(ctx, "7", "m-1")
	require.Error(t, err)

	// Releasing frees the id again.
	require.NoError(t, mgr.ReleaseModel(ctx, "m-1"))
	_, err = mgr.AllocateModel(ctx, "7", "m-1")
	require.NoError(t, err)
}

func TestManager_AllocateModelExperimentChecks(t *testing.T) {
	ctx := context.Background()
	mgr, _ := newTestManager(t)

	_, err := mgr.AllocateModel(ctx, "123", "m-1")
	var notFound *ErrExperimentNotFound
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "123", notFound.ExperimentID)

	_, err = mgr.AllocateModel(ctx, "9", "m-1")
	var notActive *ErrExperimentNotActive
	require.ErrorAs(t, err, &notActive)
	require.Equal(t, "9", notActive.ExperimentID)
}

func writeModel(t *testing.T, codec *record.Codec, expID, modelID string) {
	t.Helper()
	m := &entities.LoggedModel{
		ModelID:      modelID,
		ExperimentID: expID,
		Status:       entities.StatusPending,
		Tags:         map[string]string{},
		Params:       map[string]string{},
	}
	require.NoError(t, codec.WriteModel(context.Background(), ModelDir(expID, modelID), m))
}

func TestManager_LocateModel(t *testing.T) {
	ctx := context.Background()
	mgr, codec := newTestManager(t)

	_, err := mgr.AllocateModel(ctx, "7", "m-1")
	require.NoError(t, err)
	writeModel(t, codec, "7", "m-1")

	dir, err := mgr.LocateModel(ctx, "m-1")
	require.NoError(t, err)
	require.Equal(t, "7/models/m-1", dir)

	_, err = mgr.LocateModel(ctx, "m-missing")
	var notFound *ErrModelNotFound
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "m-missing", notFound.ModelID)
}

func TestManager_LocateModelScanFallback(t *testing.T) {
	ctx := context.Background()
	mgr, codec := newTestManager(t)

	// A record written without an index entry, as older layouts did.
	require.NoError(t, codec.WriteCollection(ctx, "7", record.KindMeta, map[string]string{"experiment_id": "7"}))
	writeModel(t, codec, "7", "m-old")

	dir, err := mgr.LocateModel(ctx, "m-old")
	require.NoError(t, err)
	require.Equal(t, "7/models/m-old", dir)
}

func TestManager_ExperimentIDs(t *testing.T) {
	ctx := context.Background()
	mgr, codec := newTestManager(t)

	ids, err := mgr.ExperimentIDs(ctx)
	require.NoError(t, err)
	require.Empty(t, ids)

	for _, id := range []string{"7", "0", "12"} {
		require.NoError(t, codec.WriteCollection(ctx, id, record.KindMeta, map[string]string{"experiment_id": id}))
	}
	// Index entries must not be mistaken for experiments.
	require.NoError(t, codec.WriteScalar(ctx, ".model-index", "m-1", "7"))

	ids, err = mgr.ExperimentIDs(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"0", "12", "7"}, ids)
}

func TestManager_ModelDirs(t *testing.T) {
	ctx := context.Background()
	mgr, codec := newTestManager(t)

	dirs, err := mgr.ModelDirs(ctx, "7")
	require.NoError(t, err)
	require.Empty(t, dirs)

	writeModel(t, codec, "7", "m-b")
	writeModel(t, codec, "7", "m-a")
	writeModel(t, codec, "0", "m-c")
	// A directory without metadata is not a record.
	require.NoError(t, codec.WriteCollection(ctx, "7/models/m-torn", record.KindTags, map[string]string{"k": "v"}))

	dirs, err = mgr.ModelDirs(ctx, "7")
	require.NoError(t, err)
	require.Equal(t, []string{"7/models/m-a", "7/models/m-b"}, dirs)
}
