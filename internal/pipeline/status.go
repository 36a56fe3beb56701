package pipeline

import (
	"fmt"
	"os"

	"github.com/adforgehq/adgen/internal/artifact"
	"github.com/adforgehq/adgen/internal/exitcode"
	"github.com/adforgehq/adgen/internal/logging"
	"github.com/adforgehq/adgen/internal/state"
)

// Status prints the persisted run state for the configured product.
func (p *Pipeline) Status() int {
	if code := p.initLayout(); code >= 0 {
		return code
	}

	stateDir := p.layout.StateDir()
	if !state.Exists(stateDir) {
		logging.Info(fmt.Sprintf("No run state for %s under %s", p.product.Name, p.layout.ProductDir()))
		return exitcode.Success
	}

	run, err := state.Load(stateDir)
	if err != nil {
		logging.Error(err.Error())
		return exitcode.Error
	}

	fmt.Printf("Run:      %s\n", run.RunID)
	fmt.Printf("Status:   %s\n", run.Status)
	fmt.Printf("Started:  %s\n", run.StartedAt)
	fmt.Printf("Updated:  %s\n", run.LastUpdated)
	fmt.Println("Stages:")

	stages := append([]artifact.StageKind{artifact.StageResearch}, artifact.CreativeStages()...)
	for _, kind := range stages {
		rec, ok := run.Stages[string(kind)]
		if !ok {
			fmt.Printf("  %-18s pending\n", kind)
			continue
		}
		line := fmt.Sprintf("  %-18s %s", kind, rec.Status)
		if rec.DurationSec > 0 {
			line += fmt.Sprintf(" (%s)", logging.FormatDuration(rec.DurationSec))
		}
		if rec.Error != "" {
			line += " - " + rec.Error
		}
		fmt.Println(line)
	}
	return exitcode.Success
}

// Clean removes the run state directory so the next run starts fresh.
// Artifacts and generated images are kept; only bookkeeping is removed.
func (p *Pipeline) Clean() int {
	if code := p.initLayout(); code >= 0 {
		return code
	}

	stateDir := p.layout.StateDir()
	if err := os.RemoveAll(stateDir); err != nil {
		logging.Error(fmt.Sprintf("Failed to remove state dir: %v", err))
		return exitcode.Error
	}
	logging.Success(fmt.Sprintf("Removed %s", stateDir))
	return exitcode.Success
}
