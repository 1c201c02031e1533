package mlflow

import (
	"context"
	"errors"
	"sort"
	"strconv"

	"github.com/tarek7669/mlflow/entities"
	"github.com/tarek7669/mlflow/internal/layout"
	"github.com/tarek7669/mlflow/internal/record"
)

// Experiment meta collection keys.
const (
	expMetaID               = "experiment_id"
	expMetaName             = "name"
	expMetaArtifactLocation = "artifact_location"
	expMetaLifecycleStage   = "lifecycle_stage"
	expMetaCreationTime     = "creation_time"
	expMetaLastUpdateTime   = "last_update_time"
)

// CreateExperiment registers a new active experiment and returns it.
// Names must be unique among all experiments.
func (fs *FileStore) CreateExperiment(ctx context.Context, name string) (*entities.Experiment, error) {
	if name == "" {
		return nil, invalidArgumentf("Invalid experiment name: ''")
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	existing, err := fs.listExperiments(ctx)
	if err != nil {
		return nil, translateError(err)
	}
	maxID := int64(0)
	for _, exp := range existing {
		if exp.Name == name {
			return nil, alreadyExistsf("Experiment '%s' already exists.", name)
		}
		if id, err := strconv.ParseInt(exp.ExperimentID, 10, 64); err == nil && id > maxID {
			maxID = id
		}
	}

	now := fs.nowMillis()
	exp := &entities.Experiment{
		ExperimentID:     strconv.FormatInt(maxID+1, 10),
		Name:             name,
		ArtifactLocation: fs.artifactLocation(strconv.FormatInt(maxID+1, 10)),
		LifecycleStage:   entities.LifecycleStageActive,
		CreationTime:     now,
		LastUpdateTime:   now,
	}
	if err := fs.writeExperiment(ctx, exp); err != nil {
		return nil, translateError(err)
	}
	return exp, nil
}

// GetExperiment returns an experiment by id, in any lifecycle stage.
func (fs *FileStore) GetExperiment(ctx context.Context, experimentID string) (*entities.Experiment, error) {
	exp, err := fs.readExperiment(ctx, experimentID)
	if err != nil {
		return nil, translateError(err)
	}
	return exp, nil
}

// ListExperiments returns all experiments sorted by id.
func (fs *FileStore) ListExperiments(ctx context.Context) ([]*entities.Experiment, error) {
	exps, err := fs.listExperiments(ctx)
	if err != nil {
		return nil, translateError(err)
	}
	return exps, nil
}

// DeleteExperiment moves an experiment to the deleted lifecycle stage.
// Models under it stop being writable but remain searchable by id.
func (fs *FileStore) DeleteExperiment(ctx context.Context, experimentID string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	exp, err := fs.readExperiment(ctx, experimentID)
	if err != nil {
		return translateError(err)
	}
	if !exp.Active() {
		return invalidStatef("Experiment with ID %s is already deleted.", experimentID)
	}
	exp.LifecycleStage = entities.LifecycleStageDeleted
	exp.LastUpdateTime = fs.nextUpdateTimestamp(exp.LastUpdateTime)
	return translateError(fs.writeExperiment(ctx, exp))
}

// RestoreExperiment moves a deleted experiment back to the active stage.
func (fs *FileStore) RestoreExperiment(ctx context.Context, experimentID string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	exp, err := fs.readExperiment(ctx, experimentID)
	if err != nil {
		return translateError(err)
	}
	if exp.Active() {
		return invalidStatef("Experiment with ID %s is already active.", experimentID)
	}
	exp.LifecycleStage = entities.LifecycleStageActive
	exp.LastUpdateTime = fs.nextUpdateTimestamp(exp.LastUpdateTime)
	return translateError(fs.writeExperiment(ctx, exp))
}

func (fs *FileStore) ensureDefaultExperiment(ctx context.Context) error {
	_, err := fs.readExperiment(ctx, DefaultExperimentID)
	if err == nil {
		return nil
	}
	var notFound *layout.ErrExperimentNotFound
	if !errors.As(err, &notFound) {
		return err
	}
	now := fs.nowMillis()
	return fs.writeExperiment(ctx, &entities.Experiment{
		ExperimentID:     DefaultExperimentID,
		Name:             DefaultExperimentName,
		ArtifactLocation: fs.artifactLocation(DefaultExperimentID),
		LifecycleStage:   entities.LifecycleStageActive,
		CreationTime:     now,
		LastUpdateTime:   now,
	})
}

func (fs *FileStore) writeExperiment(ctx context.Context, exp *entities.Experiment) error {
	meta := map[string]string{
		expMetaID:               exp.ExperimentID,
		expMetaName:             exp.Name,
		expMetaArtifactLocation: exp.ArtifactLocation,
		expMetaLifecycleStage:   exp.LifecycleStage,
		expMetaCreationTime:     strconv.FormatInt(exp.CreationTime, 10),
		expMetaLastUpdateTime:   strconv.FormatInt(exp.LastUpdateTime, 10),
	}
	return fs.codec.WriteCollection(ctx, exp.ExperimentID, record.KindMeta, meta)
}

func (fs *FileStore) readExperiment(ctx context.Context, experimentID string) (*entities.Experiment, error) {
	if experimentID == "" {
		return nil, &layout.ErrExperimentNotFound{ExperimentID: experimentID}
	}
	meta, err := fs.codec.ReadCollection(ctx, experimentID, record.KindMeta)
	if err != nil {
		return nil, err
	}
	if meta[expMetaID] == "" {
		return nil, &layout.ErrExperimentNotFound{ExperimentID: experimentID}
	}

	exp := &entities.Experiment{
		ExperimentID:     meta[expMetaID],
		Name:             meta[expMetaName],
		ArtifactLocation: meta[expMetaArtifactLocation],
		LifecycleStage:   meta[expMetaLifecycleStage],
	}
	exp.CreationTime, _ = strconv.ParseInt(meta[expMetaCreationTime], 10, 64)
	exp.LastUpdateTime, _ = strconv.ParseInt(meta[expMetaLastUpdateTime], 10, 64)
	return exp, nil
}

func (fs *FileStore) listExperiments(ctx context.Context) ([]*entities.Experiment, error) {
	ids, err := fs.layout.ExperimentIDs(ctx)
	if err != nil {
		return nil, err
	}
	exps := make([]*entities.Experiment, 0, len(ids))
	for _, id := range ids {
		exp, err := fs.readExperiment(ctx, id)
		if err != nil {
			return nil, err
		}
		exps = append(exps, exp)
	}
	sort.Slice(exps, func(i, j int) bool { return exps[i].ExperimentID < exps[j].ExperimentID })
	return exps, nil
}

// experimentSource adapts the store to the layout manager's lookup
// interface.
type experimentSource struct{ fs *FileStore }

func (s experimentSource) Experiment(ctx context.Context, id string) (*entities.Experiment, error) {
	return s.fs.readExperiment(ctx, id)
}
