// Package state persists per-product run state so interrupted pipelines can
// be resumed and inspected. State lives in the product directory under
// .adgen/run-state.json.
package state

// RunState represents the persisted state of one pipeline run.
type RunState struct {
	SchemaVersion      int                    `json:"schema_version"`
	RunID              string                 `json:"run_id"`
	StartedAt          string                 `json:"started_at"`
	LastUpdated        string                 `json:"last_updated"`
	Status             string                 `json:"status"`
	ProductName        string                 `json:"product_name"`
	ProductSlug        string                 `json:"product_slug"`
	ProductFingerprint string                 `json:"product_fingerprint"`
	TextModel          string                 `json:"text_model"`
	ImageModel         string                 `json:"image_model"`
	Stages             map[string]StageRecord `json:"stages"`
}

// StageRecord tracks one stage's outcome within a run.
type StageRecord struct {
	Status      string `json:"status"`
	Attempts    int    `json:"attempts"`
	DurationSec int    `json:"duration_sec"`
	Artifact    string `json:"artifact,omitempty"`
	Error       string `json:"error,omitempty"`
}

// Run status constants
const (
	StatusInProgress  = "IN_PROGRESS"
	StatusInterrupted = "INTERRUPTED"
	StatusComplete    = "COMPLETE"
	StatusFailed      = "FAILED"
)

// Stage status constants
const (
	StagePending  = "pending"
	StageRunning  = "running"
	StageComplete = "complete"
	StageFailed   = "failed"
	StageSkipped  = "skipped"
)

// CurrentSchemaVersion is bumped when RunState changes shape.
const CurrentSchemaVersion = 1
