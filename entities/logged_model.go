package entities

// LoggedModel is a versioned model artifact record tracked independently of
// (but optionally linked to) a run.
type LoggedModel struct {
	// ModelID is the globally unique id assigned at creation.
	ModelID string `json:"model_id" yaml:"model_id"`
	// ExperimentID is the owning experiment. Immutable.
	ExperimentID string `json:"experiment_id" yaml:"experiment_id"`
	// Name of the model. A random name is generated when none is given.
	Name string `json:"name" yaml:"name"`
	// SourceRunID is an optional back-reference to the run that produced
	// the model. Immutable; empty when the model has no source run.
	SourceRunID string `json:"source_run_id,omitempty" yaml:"source_run_id,omitempty"`
	// ArtifactLocation is derived from the experiment root and model id.
	ArtifactLocation string `json:"artifact_location" yaml:"artifact_location"`
	// ModelType is a free-form optional classification, e.g. "agent".
	ModelType string `json:"model_type,omitempty" yaml:"model_type,omitempty"`
	// Status of the model. Models are created PENDING and finalized to
	// READY or FAILED exactly once.
	Status LoggedModelStatus `json:"status" yaml:"status"`

	// CreationTimestamp and LastUpdatedTimestamp are milliseconds since
	// the Unix epoch. LastUpdatedTimestamp strictly increases on every
	// mutating call.
	CreationTimestamp    int64 `json:"creation_timestamp" yaml:"creation_timestamp"`
	LastUpdatedTimestamp int64 `json:"last_updated_timestamp" yaml:"last_updated_timestamp"`

	// Tags are mutable annotations, last write wins per key.
	Tags map[string]string `json:"tags,omitempty" yaml:"tags,omitempty"`
	// Params are write-once per key; redefining a key with a different
	// value is rejected.
	Params map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
	// Metrics are populated by the metrics subsystem and are read-only
	// from the store's perspective.
	Metrics []Metric `json:"metrics,omitempty" yaml:"metrics,omitempty"`
}

// ModelURI returns the models:/ URI referencing this model.
func (m *LoggedModel) ModelURI() string {
	return "models:/" + m.ModelID
}

// Clone returns a deep copy. The store hands out clones so callers cannot
// mutate cached state.
func (m *LoggedModel) Clone() *LoggedModel {
	if m == nil {
		return nil
	}
	clone := *m
	if m.Tags != nil {
		clone.Tags = make(map[string]string, len(m.Tags))
		for k, v := range m.Tags {
			clone.Tags[k] = v
		}
	}
	if m.Params != nil {
		clone.Params = make(map[string]string, len(m.Params))
		for k, v := range m.Params {
			clone.Params[k] = v
		}
	}
	if m.Metrics != nil {
		clone.Metrics = append([]Metric(nil), m.Metrics...)
	}
	return &clone
}

// LoggedModelTag is a mutable key/value annotation on a logged model.
type LoggedModelTag struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// LoggedModelParameter is a write-once key/value annotation on a logged model.
type LoggedModelParameter struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// Metric is a numeric measurement attached to a logged model, optionally
// scoped to a dataset.
type Metric struct {
	Key           string  `json:"key" yaml:"key"`
	Value         float64 `json:"value" yaml:"value"`
	Timestamp     int64   `json:"timestamp" yaml:"timestamp"`
	Step          int64   `json:"step" yaml:"step"`
	DatasetName   string  `json:"dataset_name,omitempty" yaml:"dataset_name,omitempty"`
	DatasetDigest string  `json:"dataset_digest,omitempty" yaml:"dataset_digest,omitempty"`
}
