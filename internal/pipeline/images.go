package pipeline

import (
	"context"
	"fmt"

	"github.com/adforgehq/adgen/internal/ai"
	"github.com/adforgehq/adgen/internal/artifact"
	"github.com/adforgehq/adgen/internal/exitcode"
	"github.com/adforgehq/adgen/internal/logging"
	"github.com/adforgehq/adgen/internal/materialize"
)

// MaterializeAssets generates image files from the prompt-set artifact of
// kind (image-prompts or thumbnail-prompts) and returns an exit code. The
// artifact must exist already; materialization never triggers text stages.
func (p *Pipeline) MaterializeAssets(ctx context.Context, kind artifact.StageKind, invoker ai.ImageInvoker) int {
	if kind != artifact.StageImagePrompts && kind != artifact.StageThumbnailPrompts {
		logging.Error(fmt.Sprintf("Stage %s does not produce a prompt set", kind))
		return exitcode.Error
	}

	if code := p.initLayout(); code >= 0 {
		return code
	}

	if err := ai.CheckCredentials(false, true); err != nil {
		logging.Error(err.Error())
		return exitcode.AuthFailure
	}

	path := p.layout.ArtifactPath(kind)
	if !artifact.Exists(path) {
		logging.Error(fmt.Sprintf("No %s artifact at %s (run the %s stage first)", kind, path, kind))
		return exitcode.Error
	}

	var set artifact.PromptSet
	if err := artifact.LoadJSON(path, &set); err != nil {
		logging.Error(err.Error())
		return exitcode.Error
	}
	if err := set.Validate(); err != nil {
		logging.Error(err.Error())
		return exitcode.Error
	}

	logging.Stage(fmt.Sprintf("Materializing %s (%d entries)", kind, len(set.Entries)))

	m := &materialize.Materializer{
		Invoker:       invoker,
		Resolution:    p.Config.ImageResolution,
		MaxReferences: p.Config.MaxReferenceImages,
		SkipExisting:  p.Config.SkipExisting,
	}

	report, err := m.Run(ctx, p.layout, kind, &set)
	if err != nil {
		if ctx.Err() != nil {
			return exitcode.Interrupted
		}
		logging.Error(err.Error())
		return exitcode.Error
	}

	// Per-entry failures are reported but non-fatal: the run produced
	// every asset it could.
	if failed := report.Failed(); failed > 0 {
		logging.Warn(fmt.Sprintf("%d of %d entries failed:", failed, len(report.Results)))
		for _, res := range report.Results {
			if res.Err != nil {
				logging.Warn(fmt.Sprintf("  %s: %v", res.EntryID, res.Err))
			}
		}
		logging.Info(fmt.Sprintf("%d entries materialized to %s", report.Succeeded(), p.layout.GeneratedDir(kind)))
		return exitcode.Success
	}

	logging.Success(fmt.Sprintf("All %d entries materialized to %s", len(report.Results), p.layout.GeneratedDir(kind)))
	return exitcode.Success
}
