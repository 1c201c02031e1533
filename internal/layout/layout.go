// Package layout maps store entities onto the directory tree of a backing
// blobstore and resolves entities back from it.
//
// The tree is rooted at the store root:
//
//	<experiment_id>/meta.yaml                     experiment metadata
//	<experiment_id>/models/<model_id>/meta.yaml   logged-model record
//	.model-index/<model_id>                       model id -> experiment id
//
// The flat id index makes point lookups cheap; when an index entry is
// missing the manager falls back to scanning every experiment.
package layout

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/tarek7669/mlflow/blobstore"
	"github.com/tarek7669/mlflow/entities"
	"github.com/tarek7669/mlflow/internal/record"
)

// ModelsDir is the per-experiment subdirectory holding model records.
const ModelsDir = "models"

// indexDir holds one scalar file per model id. The leading dot keeps it
// from ever colliding with an experiment id.
const indexDir = ".model-index"

// ErrModelNotFound reports a model id with no record anywhere in the tree.
type ErrModelNotFound struct{ ModelID string }

func (e *ErrModelNotFound) Error() string {
	return fmt.Sprintf("Model with ID '%s' not found.", e.ModelID)
}

// ErrExperimentNotFound reports an experiment id with no directory.
type ErrExperimentNotFound struct{ ExperimentID string }

func (e *ErrExperimentNotFound) Error() string {
	return fmt.Sprintf("Could not find experiment with ID %s", e.ExperimentID)
}

// ErrExperimentNotActive reports an experiment that exists but has been
// deleted.
type ErrExperimentNotActive struct{ ExperimentID string }

func (e *ErrExperimentNotActive) Error() string {
	return fmt.Sprintf("Could not create model under non-active experiment with ID %s.", e.ExperimentID)
}

// ExperimentSource resolves experiment ids for the manager. The facade's
// experiment registry implements it.
type ExperimentSource interface {
	// Experiment returns the experiment for an id, or an
	// *ErrExperimentNotFound error.
	Experiment(ctx context.Context, id string) (*entities.Experiment, error)
}

// Manager owns the placement of model records in the tree.
type Manager struct {
	codec       *record.Codec
	experiments ExperimentSource
}

// NewManager creates a Manager over a record codec and experiment source.
func NewManager(codec *record.Codec, experiments ExperimentSource) *Manager {
	return &Manager{codec: codec, experiments: experiments}
}

// NewModelID mints a fresh model id.
func NewModelID() string {
	return "m-" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// ModelDir returns the record directory for a model within its experiment.
func ModelDir(experimentID, modelID string) string {
	return path.Join(experimentID, ModelsDir, modelID)
}

// ExperimentMetaFile returns the path of an experiment's metadata file.
func ExperimentMetaFile(experimentID string) string {
	return path.Join(experimentID, record.CollectionFile(record.KindMeta))
}

// AllocateModel reserves a record directory for a new model id under an
// experiment. The experiment must exist and be active, and the id must not
// already have a record.
func (m *Manager) AllocateModel(ctx context.Context, experimentID, modelID string) (string, error) {
	exp, err := m.experiments.Experiment(ctx, experimentID)
	if err != nil {
		return "", err
	}
	if !exp.Active() {
		return "", &ErrExperimentNotActive{ExperimentID: experimentID}
	}

	dir := ModelDir(experimentID, modelID)
	if _, ok, err := m.codec.ReadScalar(ctx, indexDir, modelID); err != nil {
		return "", err
	} else if ok {
		return "", fmt.Errorf("model id %s already allocated", modelID)
	}
	if err := m.codec.WriteScalar(ctx, indexDir, modelID, experimentID); err != nil {
		return "", err
	}
	return dir, nil
}

// ReleaseModel drops the id-index entry for a model whose record was never
// written, undoing a failed allocation.
func (m *Manager) ReleaseModel(ctx context.Context, modelID string) error {
	return m.codec.DeleteScalar(ctx, indexDir, modelID)
}

// LocateModel resolves a model id to its record directory. It consults the
// id index first and falls back to scanning all experiments for records
// written by older layouts.
func (m *Manager) LocateModel(ctx context.Context, modelID string) (string, error) {
	expID, ok, err := m.codec.ReadScalar(ctx, indexDir, modelID)
	if err != nil {
		return "", err
	}
	if ok {
		dir := ModelDir(expID, modelID)
		if exists, err := m.hasRecord(ctx, dir); err != nil {
			return "", err
		} else if exists {
			return dir, nil
		}
		// Stale index entry; fall through to the scan.
	}

	expIDs, err := m.ExperimentIDs(ctx)
	if err != nil {
		return "", err
	}
	for _, expID := range expIDs {
		dir := ModelDir(expID, modelID)
		if exists, err := m.hasRecord(ctx, dir); err != nil {
			return "", err
		} else if exists {
			return dir, nil
		}
	}
	return "", &ErrModelNotFound{ModelID: modelID}
}

// ExperimentIDs lists every experiment id present in the tree, sorted.
func (m *Manager) ExperimentIDs(ctx context.Context) ([]string, error) {
	names, err := m.codec.Store().List(ctx, "")
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	var ids []string
	for _, name := range names {
		top, rest, found := strings.Cut(name, "/")
		if !found || strings.HasPrefix(top, ".") {
			continue
		}
		if rest != record.CollectionFile(record.KindMeta) {
			continue
		}
		if !seen[top] {
			seen[top] = true
			ids = append(ids, top)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// ModelDirs lists the record directories of every model under an
// experiment, sorted by model id. Directories without a metadata file are
// skipped.
func (m *Manager) ModelDirs(ctx context.Context, experimentID string) ([]string, error) {
	prefix := path.Join(experimentID, ModelsDir) + "/"
	names, err := m.codec.Store().List(ctx, prefix)
	if err != nil {
		return nil, err
	}
	var dirs []string
	for _, name := range names {
		rest := strings.TrimPrefix(name, prefix)
		modelID, file, found := strings.Cut(rest, "/")
		if !found || file != record.CollectionFile(record.KindMeta) {
			continue
		}
		dirs = append(dirs, path.Join(prefix, modelID))
	}
	sort.Strings(dirs)
	return dirs, nil
}

func (m *Manager) hasRecord(ctx context.Context, dir string) (bool, error) {
	return blobstore.Exists(ctx, m.codec.Store(), path.Join(dir, record.CollectionFile(record.KindMeta)))
}
