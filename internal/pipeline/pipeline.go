// Package pipeline orchestrates the ad-creative generation run: market
// research first, then the four creative stages fanned out from the research
// profile, each stage persisting its artifact before the run moves on.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/adforgehq/adgen/internal/ai"
	"github.com/adforgehq/adgen/internal/artifact"
	"github.com/adforgehq/adgen/internal/banner"
	"github.com/adforgehq/adgen/internal/config"
	"github.com/adforgehq/adgen/internal/exitcode"
	"github.com/adforgehq/adgen/internal/logging"
	"github.com/adforgehq/adgen/internal/notification"
	"github.com/adforgehq/adgen/internal/product"
	"github.com/adforgehq/adgen/internal/research"
	"github.com/adforgehq/adgen/internal/state"
)

// Pipeline runs the full generation flow for one product.
type Pipeline struct {
	Config *config.Config
	Text   ai.TextInvoker

	// ShowBanner suppresses banner output when false (single-stage runs).
	ShowBanner bool

	product   product.Product
	layout    artifact.Layout
	run       *state.RunState
	stateMu   sync.Mutex
	startTime time.Time
	report    RunReport
}

// New creates a pipeline with a retry-wrapped OpenAI text invoker built from
// cfg. Tests inject their own invoker via the struct literal instead.
func New(cfg *config.Config) *Pipeline {
	return &Pipeline{
		Config: cfg,
		Text: &ai.RetryTextInvoker{
			Inner:  ai.NewOpenAITextInvoker("", cfg.TextModel, ""),
			Policy: BackoffFromConfig(cfg),
		},
		ShowBanner: true,
	}
}

// BackoffFromConfig builds the shared retry policy, logging each wait.
func BackoffFromConfig(cfg *config.Config) ai.BackoffPolicy {
	return ai.BackoffPolicy{
		BaseDelay:   time.Duration(cfg.BaseDelaySeconds) * time.Second,
		MaxDelay:    time.Duration(cfg.MaxDelaySeconds) * time.Second,
		MaxAttempts: cfg.MaxAttempts,
		OnRetry: func(attempt int, wait time.Duration) {
			logging.Warn(fmt.Sprintf("Rate limited (attempt %d), waiting %s", attempt, wait))
		},
	}
}

// Run executes the full pipeline and returns an exit code.
func (p *Pipeline) Run(ctx context.Context) int {
	p.startTime = time.Now()

	if code := p.phaseInit(); code >= 0 {
		return code
	}

	if code := p.phaseCredentials(); code >= 0 {
		return code
	}

	p.phaseBanner()

	profile, code := p.phaseResearch(ctx)
	if code >= 0 {
		return code
	}

	if code := p.phaseCreative(ctx, profile); code >= 0 {
		return code
	}

	return p.phaseSummary(ctx)
}

// initLayout resolves the product and its directory layout without touching
// run state. Read-only commands (status, clean, materialize) stop here.
func (p *Pipeline) initLayout() int {
	prod, err := product.New(p.Config.ProductName, p.Config.ProductDescription)
	if err != nil {
		logging.Error(err.Error())
		return exitcode.Error
	}
	p.product = prod
	p.layout = artifact.NewLayout(p.Config.OutputDir, prod.Slug())
	return -1
}

func (p *Pipeline) phaseInit() int {
	if code := p.initLayout(); code >= 0 {
		return code
	}

	fingerprint := state.Fingerprint(p.product.Name, p.product.Description)
	stateDir := p.layout.StateDir()

	if state.Exists(stateDir) {
		existing, err := state.Load(stateDir)
		if err != nil {
			logging.Error(fmt.Sprintf("Failed to load run state: %v", err))
			return exitcode.Error
		}
		if !p.Config.Force {
			if err := state.Validate(existing, fingerprint); err != nil {
				logging.Error(err.Error())
				return exitcode.Error
			}
		}
		existing.Status = state.StatusInProgress
		existing.ProductFingerprint = fingerprint
		p.run = existing
		logging.Info(fmt.Sprintf("Resuming run %s", existing.RunID))
		return -1
	}

	p.run = state.NewRunState(
		uuid.NewString()[:8],
		p.product.Name, p.product.Slug(), fingerprint,
		p.Config.TextModel, p.Config.ImageModel,
	)
	return -1
}

func (p *Pipeline) phaseCredentials() int {
	if err := ai.CheckCredentials(true, false); err != nil {
		logging.Error(err.Error())
		return exitcode.AuthFailure
	}
	return -1
}

func (p *Pipeline) phaseBanner() {
	if !p.ShowBanner {
		return
	}
	banner.PrintStartupBanner(p.run.RunID, p.product.Name,
		p.Config.TextModel, p.Config.ImageModel, p.layout.ProductDir())
}

// phaseResearch produces or loads the research profile. Research is the only
// hard dependency of the creative stages, so its failure aborts the run.
func (p *Pipeline) phaseResearch(ctx context.Context) (*research.Profile, int) {
	kind := artifact.StageResearch
	path := p.layout.ArtifactPath(kind)

	if p.Config.SkipExisting && artifact.Exists(path) {
		logging.Info("Research artifact already present, loading it")
		profile, err := research.Load(p.layout)
		if err != nil {
			logging.Error(fmt.Sprintf("Existing research artifact is unreadable: %v", err))
			return nil, exitcode.ResearchFailed
		}
		p.recordStage(kind, StageOutcome{Stage: kind, Skipped: true}, "")
		return profile, -1
	}

	logging.Stage("Market research")
	started := time.Now()
	profile, err := runResearchStage(ctx, p.Text, p.layout, p.product)
	elapsed := int(time.Since(started).Seconds())
	if err != nil {
		if ctx.Err() != nil {
			return nil, p.interrupted()
		}
		logging.Error(fmt.Sprintf("Research failed: %v", err))
		p.recordStage(kind, StageOutcome{Stage: kind, DurationSec: elapsed, Err: err}, "")
		p.notify(notification.EventFailed, exitcode.ResearchFailed)
		if p.ShowBanner {
			banner.PrintFailureBanner(err.Error())
		}
		return nil, exitcode.ResearchFailed
	}

	logging.Success(fmt.Sprintf("Research complete in %s", logging.FormatDuration(elapsed)))
	p.recordStage(kind, StageOutcome{Stage: kind, DurationSec: elapsed}, kind.FileName())
	return profile, -1
}

// phaseCreative fans the four creative stages out over a bounded worker pool.
// Stage failures are isolated; siblings keep running.
func (p *Pipeline) phaseCreative(ctx context.Context, profile *research.Profile) int {
	grounding, err := creativeGrounding(profile, p.Config.TopAngles)
	if err != nil {
		logging.Error(err.Error())
		return exitcode.Error
	}

	maxConcurrent := p.Config.MaxConcurrent
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	sem := make(chan struct{}, maxConcurrent)

	var wg sync.WaitGroup
	for _, kind := range artifact.CreativeStages() {
		wg.Add(1)
		go func(kind artifact.StageKind) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			p.runCreative(ctx, kind, grounding)
		}(kind)
	}
	wg.Wait()

	if ctx.Err() != nil {
		return p.interrupted()
	}
	return -1
}

func (p *Pipeline) runCreative(ctx context.Context, kind artifact.StageKind, grounding string) {
	path := p.layout.ArtifactPath(kind)
	if p.Config.SkipExisting && artifact.Exists(path) {
		logging.Info(fmt.Sprintf("Stage %s already has an artifact, skipping", kind))
		p.recordStage(kind, StageOutcome{Stage: kind, Skipped: true}, "")
		return
	}

	logging.Stage(fmt.Sprintf("Generating %s", kind))
	started := time.Now()
	err := runCreativeStage(ctx, p.Text, p.layout, p.product, kind, grounding)
	elapsed := int(time.Since(started).Seconds())

	if err != nil {
		err = &StageFailure{Stage: kind, Err: err}
		logging.Error(err.Error())
		p.recordStage(kind, StageOutcome{Stage: kind, DurationSec: elapsed, Err: err}, "")
		return
	}

	logging.Success(fmt.Sprintf("Stage %s complete in %s", kind, logging.FormatDuration(elapsed)))
	p.recordStage(kind, StageOutcome{Stage: kind, DurationSec: elapsed}, kind.FileName())
}

func (p *Pipeline) phaseSummary(ctx context.Context) int {
	elapsed := int(time.Since(p.startTime).Seconds())

	if failed := p.report.Failed(); failed > 0 {
		p.finishState(state.StatusFailed)
		if p.ShowBanner {
			banner.PrintPartialFailureBanner(p.report.Completed()+p.report.Skipped(), failed, p.report.FailureLines())
		}
		p.notify(notification.EventPartial, exitcode.StagesFailed)
		return exitcode.StagesFailed
	}

	p.finishState(state.StatusComplete)
	if p.ShowBanner {
		banner.PrintCompletionBanner(p.report.Completed(), p.report.Skipped(), elapsed)
	}
	p.notify(notification.EventCompleted, exitcode.Success)
	return exitcode.Success
}

// Report returns the accumulated stage outcomes.
func (p *Pipeline) Report() *RunReport {
	return &p.report
}

func (p *Pipeline) interrupted() int {
	p.finishState(state.StatusInterrupted)
	if p.ShowBanner {
		banner.PrintInterruptedBanner()
	}
	p.notify(notification.EventInterrupted, exitcode.Interrupted)
	return exitcode.Interrupted
}

// recordStage appends the outcome to the report and persists run state.
// Safe for concurrent use by the creative workers.
func (p *Pipeline) recordStage(kind artifact.StageKind, outcome StageOutcome, artifactName string) {
	p.stateMu.Lock()
	defer p.stateMu.Unlock()

	p.report.RunID = p.run.RunID
	p.report.Outcomes = append(p.report.Outcomes, outcome)

	rec := state.StageRecord{DurationSec: outcome.DurationSec, Artifact: artifactName}
	switch {
	case outcome.Err != nil:
		rec.Status = state.StageFailed
		rec.Error = outcome.Err.Error()
	case outcome.Skipped:
		rec.Status = state.StageSkipped
	default:
		rec.Status = state.StageComplete
	}
	p.run.SetStage(string(kind), rec)

	if err := state.Save(p.run, p.layout.StateDir()); err != nil {
		logging.Warn(fmt.Sprintf("Failed to persist run state: %v", err))
	}
}

func (p *Pipeline) finishState(status string) {
	p.stateMu.Lock()
	defer p.stateMu.Unlock()
	p.run.Status = status
	if err := state.Save(p.run, p.layout.StateDir()); err != nil {
		logging.Warn(fmt.Sprintf("Failed to persist run state: %v", err))
	}
}

func (p *Pipeline) notify(event string, code int) {
	if p.Config.NotifyWebhook == "" {
		return
	}
	msg := notification.FormatEvent(event, p.product.Name, p.run.RunID, p.report.Failed(), code)
	notification.SendNotification(p.Config.NotifyWebhook, msg)
}

// RunStage executes exactly one stage and returns an exit code. Creative
// stages require the research artifact to exist already.
func (p *Pipeline) RunStage(ctx context.Context, kind artifact.StageKind) int {
	if code := p.phaseInit(); code >= 0 {
		return code
	}
	if code := p.phaseCredentials(); code >= 0 {
		return code
	}

	if kind == artifact.StageResearch {
		_, code := p.phaseResearch(ctx)
		if code >= 0 {
			return code
		}
		return exitcode.Success
	}

	profile, err := research.Load(p.layout)
	if err != nil {
		logging.Error(fmt.Sprintf("Research artifact required first (run the research stage): %v", err))
		return exitcode.ResearchFailed
	}

	grounding, err := creativeGrounding(profile, p.Config.TopAngles)
	if err != nil {
		logging.Error(err.Error())
		return exitcode.Error
	}

	p.runCreative(ctx, kind, grounding)
	if errors.Is(ctx.Err(), context.Canceled) {
		return p.interrupted()
	}
	if p.report.Failed() > 0 {
		return exitcode.StagesFailed
	}
	return exitcode.Success
}
