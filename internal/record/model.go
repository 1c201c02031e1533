package record

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/tarek7669/mlflow/blobstore"
	"github.com/tarek7669/mlflow/entities"
)

// Meta collection keys.
const (
	MetaModelID          = "model_id"
	MetaExperimentID     = "experiment_id"
	MetaName             = "name"
	MetaSourceRunID      = "source_run_id"
	MetaArtifactLocation = "artifact_location"
	MetaModelType        = "model_type"
	MetaStatus           = "status"
	MetaCreationTS       = "creation_timestamp"
	MetaLastUpdatedTS    = "last_updated_timestamp"
)

// CorruptError reports a record directory whose contents cannot be decoded
// into a valid entity.
type CorruptError struct {
	Dir    string
	Reason string
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("corrupt record directory %q: %s", e.Dir, e.Reason)
}

// EncodeModelMeta flattens a model's identity and lifecycle attributes into
// the meta collection. Tags, params and metrics live in their own files.
func EncodeModelMeta(m *entities.LoggedModel) map[string]string {
	return map[string]string{
		MetaModelID:          m.ModelID,
		MetaExperimentID:     m.ExperimentID,
		MetaName:             m.Name,
		MetaSourceRunID:      m.SourceRunID,
		MetaArtifactLocation: m.ArtifactLocation,
		MetaModelType:        m.ModelType,
		MetaStatus:           string(m.Status),
		MetaCreationTS:       strconv.FormatInt(m.CreationTimestamp, 10),
		MetaLastUpdatedTS:    strconv.FormatInt(m.LastUpdatedTimestamp, 10),
	}
}

// DecodeModelMeta rebuilds a model from its meta collection. The result has
// no tags, params or metrics attached yet. Records missing their identity
// fields are reported as corrupt.
func DecodeModelMeta(dir string, meta map[string]string) (*entities.LoggedModel, error) {
	if meta[MetaModelID] == "" {
		return nil, &CorruptError{Dir: dir, Reason: "metadata has no model_id"}
	}
	if meta[MetaExperimentID] == "" {
		return nil, &CorruptError{Dir: dir, Reason: "metadata has no experiment_id"}
	}

	m := &entities.LoggedModel{
		ModelID:          meta[MetaModelID],
		ExperimentID:     meta[MetaExperimentID],
		Name:             meta[MetaName],
		SourceRunID:      meta[MetaSourceRunID],
		ArtifactLocation: meta[MetaArtifactLocation],
		ModelType:        meta[MetaModelType],
		Status:           entities.LoggedModelStatus(meta[MetaStatus]),
		Tags:             map[string]string{},
		Params:           map[string]string{},
	}

	var err error
	if m.CreationTimestamp, err = metaInt64(dir, meta, MetaCreationTS); err != nil {
		return nil, err
	}
	if m.LastUpdatedTimestamp, err = metaInt64(dir, meta, MetaLastUpdatedTS); err != nil {
		return nil, err
	}
	return m, nil
}

func metaInt64(dir string, meta map[string]string, key string) (int64, error) {
	raw, ok := meta[key]
	if !ok || raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &CorruptError{Dir: dir, Reason: fmt.Sprintf("metadata field %s is not an integer: %q", key, raw)}
	}
	return v, nil
}

// WriteModel persists a full model record: its meta, tags and params
// collections under the given directory.
func (c *Codec) WriteModel(ctx context.Context, dir string, m *entities.LoggedModel) error {
	if err := c.WriteCollection(ctx, dir, KindMeta, EncodeModelMeta(m)); err != nil {
		return err
	}
	if err := c.WriteCollection(ctx, dir, KindTags, m.Tags); err != nil {
		return err
	}
	return c.WriteCollection(ctx, dir, KindParams, m.Params)
}

// HydrateModel assembles a full model entity from a record directory. A
// directory without a readable meta collection is corrupt; missing tag,
// param or metric files simply yield empty collections.
func (c *Codec) HydrateModel(ctx context.Context, dir string) (*entities.LoggedModel, error) {
	data, err := c.store.ReadFile(ctx, path.Join(dir, CollectionFile(KindMeta)))
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return nil, &CorruptError{Dir: dir, Reason: "metadata file is missing"}
		}
		return nil, err
	}
	meta := map[string]string{}
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return nil, &CorruptError{Dir: dir, Reason: fmt.Sprintf("malformed metadata file: %v", err)}
	}

	m, err := DecodeModelMeta(dir, meta)
	if err != nil {
		return nil, err
	}
	if m.Tags, err = c.ReadCollection(ctx, dir, KindTags); err != nil {
		return nil, err
	}
	if m.Params, err = c.ReadCollection(ctx, dir, KindParams); err != nil {
		return nil, err
	}
	if m.Metrics, err = c.readMetrics(ctx, dir); err != nil {
		return nil, err
	}
	return m, nil
}

// readMetrics loads the metrics file written by the metric logging
// subsystem. The store never writes this file itself.
func (c *Codec) readMetrics(ctx context.Context, dir string) ([]entities.Metric, error) {
	data, err := c.store.ReadFile(ctx, path.Join(dir, MetricsFile))
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var metrics []entities.Metric
	if err := yaml.Unmarshal(data, &metrics); err != nil {
		return nil, &CorruptError{Dir: dir, Reason: fmt.Sprintf("malformed metrics file: %v", err)}
	}
	return metrics, nil
}
