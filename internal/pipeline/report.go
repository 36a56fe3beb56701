package pipeline

import (
	"fmt"

	"github.com/adforgehq/adgen/internal/artifact"
)

// StageOutcome is the result of one stage within a run.
type StageOutcome struct {
	Stage       artifact.StageKind
	Skipped     bool
	DurationSec int
	Err         error
}

// RunReport aggregates stage outcomes for one pipeline run.
type RunReport struct {
	RunID    string
	Outcomes []StageOutcome
}

// Completed counts stages that produced or already had an artifact.
func (r *RunReport) Completed() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Err == nil && !o.Skipped {
			n++
		}
	}
	return n
}

// Skipped counts stages whose artifact was already present.
func (r *RunReport) Skipped() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Skipped {
			n++
		}
	}
	return n
}

// Failed counts stages that ended in error.
func (r *RunReport) Failed() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}

// FailureLines renders one human-readable line per failed stage.
func (r *RunReport) FailureLines() []string {
	var lines []string
	for _, o := range r.Outcomes {
		if o.Err != nil {
			lines = append(lines, fmt.Sprintf("%s: %v", o.Stage, o.Err))
		}
	}
	return lines
}

// StageFailure wraps a stage error with the stage it came from. Creative
// stage failures are isolated: they surface in the report without aborting
// sibling stages.
type StageFailure struct {
	Stage artifact.StageKind
	Err   error
}

func (e *StageFailure) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageFailure) Unwrap() error {
	return e.Err
}
