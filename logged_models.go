package mlflow

import (
	"context"
	"errors"
	"time"

	"github.com/tarek7669/mlflow/entities"
	"github.com/tarek7669/mlflow/internal/layout"
	"github.com/tarek7669/mlflow/internal/names"
	"github.com/tarek7669/mlflow/internal/record"
)

// CreateLoggedModelRequest carries the caller-supplied attributes of a new
// logged model. Only ExperimentID is required; a missing Name is replaced
// with a generated one.
type CreateLoggedModelRequest struct {
	ExperimentID string
	Name         string
	ModelType    string
	SourceRunID  string
	Tags         []entities.LoggedModelTag
	Params       []entities.LoggedModelParameter
}

// CreateLoggedModel registers a new model under an active experiment. The
// model starts in PENDING status with the given tags and params attached.
func (fs *FileStore) CreateLoggedModel(ctx context.Context, req CreateLoggedModelRequest) (model *entities.LoggedModel, err error) {
	start := time.Now()
	defer func() {
		fs.opts.metricsCollector.RecordCreate(time.Since(start), err)
		modelID := ""
		if model != nil {
			modelID = model.ModelID
		}
		fs.opts.logger.LogCreate(ctx, modelID, req.ExperimentID, err)
	}()

	// All validation happens before the first write.
	if err := validateTags(req.Tags); err != nil {
		return nil, err
	}
	if err := validateParams(req.Params); err != nil {
		return nil, err
	}
	if req.SourceRunID != "" && fs.opts.runProvider != nil {
		known, err := fs.opts.runProvider.RunExists(ctx, req.SourceRunID)
		if err != nil {
			return nil, translateError(err)
		}
		if !known {
			return nil, invalidArgumentf("Run '%s' not found", req.SourceRunID)
		}
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	modelID := layout.NewModelID()
	dir, err := fs.layout.AllocateModel(ctx, req.ExperimentID, modelID)
	if err != nil {
		return nil, translateError(err)
	}

	name := req.Name
	if name == "" {
		name = names.Random()
	}
	now := fs.nowMillis()
	model = &entities.LoggedModel{
		ModelID:              modelID,
		ExperimentID:         req.ExperimentID,
		Name:                 name,
		SourceRunID:          req.SourceRunID,
		ArtifactLocation:     fs.artifactLocation(req.ExperimentID, layout.ModelsDir, modelID, "artifacts"),
		ModelType:            req.ModelType,
		Status:               entities.StatusPending,
		CreationTimestamp:    now,
		LastUpdatedTimestamp: now,
		Tags:                 map[string]string{},
		Params:               map[string]string{},
	}
	for _, tag := range req.Tags {
		model.Tags[tag.Key] = clipTagValue(tag.Value)
	}
	for _, param := range req.Params {
		model.Params[param.Key] = param.Value
	}

	if err := fs.codec.WriteModel(ctx, dir, model); err != nil {
		// Free the id so a retry can reuse it.
		_ = fs.layout.ReleaseModel(ctx, modelID)
		return nil, translateError(err)
	}
	return model, nil
}

// GetLoggedModel returns a model by id, with tags, params and any logged
// metrics attached.
func (fs *FileStore) GetLoggedModel(ctx context.Context, modelID string) (model *entities.LoggedModel, err error) {
	start := time.Now()
	defer func() {
		fs.opts.metricsCollector.RecordGet(time.Since(start), err)
	}()

	dir, err := fs.layout.LocateModel(ctx, modelID)
	if err != nil {
		return nil, translateError(err)
	}
	model, err = fs.hydrate(ctx, dir, modelID)
	if err != nil {
		return nil, err
	}
	return model, nil
}

// SetLoggedModelTags sets tags on a model. Existing keys are overwritten;
// oversized values are truncated, not rejected.
func (fs *FileStore) SetLoggedModelTags(ctx context.Context, modelID string, tags []entities.LoggedModelTag) (err error) {
	start := time.Now()
	defer func() {
		fs.opts.metricsCollector.RecordUpdate(time.Since(start), err)
		fs.opts.logger.LogUpdate(ctx, "set_tags", modelID, err)
	}()

	if err := validateTags(tags); err != nil {
		return err
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	dir, model, err := fs.locateAndHydrate(ctx, modelID)
	if err != nil {
		return err
	}
	for _, tag := range tags {
		model.Tags[tag.Key] = clipTagValue(tag.Value)
	}
	model.LastUpdatedTimestamp = fs.nextUpdateTimestamp(model.LastUpdatedTimestamp)

	if err := fs.codec.WriteCollection(ctx, dir, record.KindTags, model.Tags); err != nil {
		return translateError(err)
	}
	return translateError(fs.codec.WriteCollection(ctx, dir, record.KindMeta, record.EncodeModelMeta(model)))
}

// DeleteLoggedModelTag removes one tag from a model. Deleting an absent
// tag fails NotFound.
func (fs *FileStore) DeleteLoggedModelTag(ctx context.Context, modelID, key string) (err error) {
	start := time.Now()
	defer func() {
		fs.opts.metricsCollector.RecordUpdate(time.Since(start), err)
		fs.opts.logger.LogUpdate(ctx, "delete_tag", modelID, err)
	}()

	if err := validateKey("tag", key); err != nil {
		return err
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	dir, model, err := fs.locateAndHydrate(ctx, modelID)
	if err != nil {
		return err
	}
	if _, ok := model.Tags[key]; !ok {
		return notFoundf("No tag with name: %s in model with ID '%s'", key, modelID)
	}
	delete(model.Tags, key)
	model.LastUpdatedTimestamp = fs.nextUpdateTimestamp(model.LastUpdatedTimestamp)

	if err := fs.codec.WriteCollection(ctx, dir, record.KindTags, model.Tags); err != nil {
		return translateError(err)
	}
	return translateError(fs.codec.WriteCollection(ctx, dir, record.KindMeta, record.EncodeModelMeta(model)))
}

// LogLoggedModelParams appends params to a model. Params are write-once:
// re-logging a key with the same value is a no-op, a different value fails
// InvalidArgument.
func (fs *FileStore) LogLoggedModelParams(ctx context.Context, modelID string, params []entities.LoggedModelParameter) (err error) {
	start := time.Now()
	defer func() {
		fs.opts.metricsCollector.RecordUpdate(time.Since(start), err)
		fs.opts.logger.LogUpdate(ctx, "log_params", modelID, err)
	}()

	if err := validateParams(params); err != nil {
		return err
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	dir, model, err := fs.locateAndHydrate(ctx, modelID)
	if err != nil {
		return err
	}

	changed := false
	for _, param := range params {
		if existing, ok := model.Params[param.Key]; ok {
			if existing == param.Value {
				continue
			}
			return invalidArgumentf(
				"Changing param values is not allowed. Param with key='%s' was already "+
					"logged with value='%s' for model ID='%s'. Attempted logging new value '%s'.",
				param.Key, existing, modelID, param.Value)
		}
		model.Params[param.Key] = param.Value
		changed = true
	}
	if !changed {
		return nil
	}
	model.LastUpdatedTimestamp = fs.nextUpdateTimestamp(model.LastUpdatedTimestamp)

	if err := fs.codec.WriteCollection(ctx, dir, record.KindParams, model.Params); err != nil {
		return translateError(err)
	}
	return translateError(fs.codec.WriteCollection(ctx, dir, record.KindMeta, record.EncodeModelMeta(model)))
}

// FinalizeLoggedModel moves a PENDING model to READY or FAILED and returns
// the updated model. The transition is one-way.
func (fs *FileStore) FinalizeLoggedModel(ctx context.Context, modelID string, status entities.LoggedModelStatus) (model *entities.LoggedModel, err error) {
	start := time.Now()
	defer func() {
		fs.opts.metricsCollector.RecordUpdate(time.Since(start), err)
		fs.opts.logger.LogUpdate(ctx, "finalize", modelID, err)
	}()

	if !status.Valid() || !status.Final() {
		return nil, invalidArgumentf("Invalid model status %s", status)
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	dir, model, err := fs.locateAndHydrate(ctx, modelID)
	if err != nil {
		return nil, err
	}
	if model.Status != entities.StatusPending {
		return nil, invalidStatef("Model with ID '%s' has status %s and cannot be finalized.", modelID, model.Status)
	}
	model.Status = status
	model.LastUpdatedTimestamp = fs.nextUpdateTimestamp(model.LastUpdatedTimestamp)

	if err := fs.codec.WriteCollection(ctx, dir, record.KindMeta, record.EncodeModelMeta(model)); err != nil {
		return nil, translateError(err)
	}
	return model, nil
}

func (fs *FileStore) locateAndHydrate(ctx context.Context, modelID string) (string, *entities.LoggedModel, error) {
	dir, err := fs.layout.LocateModel(ctx, modelID)
	if err != nil {
		return "", nil, translateError(err)
	}
	model, err := fs.hydrate(ctx, dir, modelID)
	if err != nil {
		return "", nil, err
	}
	return dir, model, nil
}

// hydrate loads a record directory, translating corruption into the coded
// invalid-state message callers expect.
func (fs *FileStore) hydrate(ctx context.Context, dir, modelID string) (*entities.LoggedModel, error) {
	model, err := fs.codec.HydrateModel(ctx, dir)
	if err != nil {
		var corrupt *record.CorruptError
		if errors.As(err, &corrupt) {
			return nil, &Error{
				Code:  ErrCodeInternal,
				msg:   "Model '" + modelID + "' metadata is in invalid state.",
				cause: err,
			}
		}
		return nil, translateError(err)
	}
	return model, nil
}
