package entities

// Lifecycle stages of an experiment.
const (
	LifecycleStageActive  = "active"
	LifecycleStageDeleted = "deleted"
)

// Experiment is the minimal experiment record that logged models reference.
// Full experiment lifecycle management lives outside this store; it only
// needs to know whether an experiment exists, whether it is active, and
// where its model directories live.
type Experiment struct {
	ExperimentID     string `json:"experiment_id" yaml:"experiment_id"`
	Name             string `json:"name" yaml:"name"`
	ArtifactLocation string `json:"artifact_location" yaml:"artifact_location"`
	LifecycleStage   string `json:"lifecycle_stage" yaml:"lifecycle_stage"`
	CreationTime     int64  `json:"creation_time" yaml:"creation_time"`
	LastUpdateTime   int64  `json:"last_update_time" yaml:"last_update_time"`
}

// Active reports whether the experiment accepts new logged models.
func (e *Experiment) Active() bool {
	return e.LifecycleStage == LifecycleStageActive
}
