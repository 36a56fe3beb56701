package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adforgehq/adgen/internal/ai"
	"github.com/adforgehq/adgen/internal/artifact"
	"github.com/adforgehq/adgen/internal/config"
	"github.com/adforgehq/adgen/internal/exitcode"
	"github.com/adforgehq/adgen/internal/state"
)

const researchResponse = "Here is the profile:\n```json\n" + `{
    "product": "Bee Venom BSwell",
    "summary": "Topical cream positioned as a natural remedy",
    "pains": ["joint pain", "morning stiffness"],
    "desires": ["pain-free movement"],
    "angles": [
        {"rank": 1, "name": "natural remedy", "hooks": ["Nature beats pills"]},
        {"rank": 2, "name": "fast relief", "hooks": ["Feel it in minutes"]}
    ]
}` + "\n```"

const carouselResponse = `{"slides": [
    {"index": 1, "angle": "natural remedy", "hook": "Stop the ache", "copy": "Bee venom goes where pills cannot."},
    {"index": 2, "hook": "Move freely again", "copy": "Morning stiffness melts away.", "cta": "Order today"}
]}`

const imagePromptsResponse = `{"entries": [
    {"id": "hero", "angle": "natural remedy", "prompt": "macro shot of cream jar", "negative_prompt": "no text", "aspect_ratio": "1:1"}
]}`

const videoScriptsResponse = `{"scripts": [
    {"angle": "fast relief", "title": "Minutes not months", "beats": [
        {"timecode": "0-3s", "voiceover": "Still rubbing your knees?", "visual": "close-up of hands"}
    ]}
]}`

const thumbnailPromptsResponse = `{"entries": [
    {"id": "thumb_1", "prompt": "split-screen before and after", "negative_prompt": "no logos"}
]}`

// routingInvoker answers each stage by recognizing its template wording.
// Safe for concurrent use by the creative fan-out.
type routingInvoker struct {
	mu      sync.Mutex
	prompts []string
	failOn  string
}

func (r *routingInvoker) Invoke(_ context.Context, prompt string) (string, error) {
	r.mu.Lock()
	r.prompts = append(r.prompts, prompt)
	r.mu.Unlock()

	if r.failOn != "" && strings.Contains(prompt, r.failOn) {
		return "", &ai.FatalError{Status: 400, Category: "text", UnderlyingErr: fmt.Errorf("rejected")}
	}

	switch {
	case strings.Contains(prompt, "market researcher"):
		return researchResponse, nil
	case strings.Contains(prompt, "carousel ad"):
		return carouselResponse, nil
	case strings.Contains(prompt, "static product ad"):
		return imagePromptsResponse, nil
	case strings.Contains(prompt, "scriptwriter"):
		return videoScriptsResponse, nil
	case strings.Contains(prompt, "thumbnail"):
		return thumbnailPromptsResponse, nil
	}
	return "", fmt.Errorf("unexpected prompt: %.60s", prompt)
}

func (r *routingInvoker) promptFor(marker string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.prompts {
		if strings.Contains(p, marker) {
			return p
		}
	}
	return ""
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv(ai.TextKeyEnv, "test-key")
	cfg := config.NewDefaultConfig()
	cfg.ProductName = "Bee Venom BSwell"
	cfg.ProductDescription = "Topical cream for joint pain relief"
	cfg.OutputDir = t.TempDir()
	return cfg
}

func newTestPipeline(cfg *config.Config, inv ai.TextInvoker) *Pipeline {
	return &Pipeline{Config: cfg, Text: inv, ShowBanner: false}
}

func TestRun(t *testing.T) {
	t.Run("full run writes every artifact", func(t *testing.T) {
		cfg := testConfig(t)
		inv := &routingInvoker{}
		p := newTestPipeline(cfg, inv)

		code := p.Run(context.Background())
		assert.Equal(t, exitcode.Success, code)

		productDir := filepath.Join(cfg.OutputDir, "bee_venom_bswell")
		for _, name := range []string{
			"market_research_min.json", "carousel.json", "image_prompts.json",
			"video_scripts.json", "thumbnail_prompts.json",
		} {
			assert.True(t, artifact.Exists(filepath.Join(productDir, name)), name)
		}

		carouselPrompt := inv.promptFor("carousel ad")
		assert.Contains(t, carouselPrompt, "Bee Venom BSwell")
		assert.Contains(t, carouselPrompt, "joint pain")

		run, err := state.Load(filepath.Join(productDir, ".adgen"))
		require.NoError(t, err)
		assert.Equal(t, state.StatusComplete, run.Status)
		assert.Equal(t, state.StageComplete, run.Stages["carousel"].Status)
	})

	t.Run("minimal research schema with string angles", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.ProductName = "bee_venom_bswell"
		cfg.ProductDescription = "joint relief supplement"

		inv := &routingInvoker{}
		p := newTestPipeline(cfg, inv)
		// Minimal research shape some models produce: angles as bare strings.
		minimal := `{"pains":["joint pain"],"desires":["mobility"],"angles":["natural remedy"]}`
		p.Text = ai.TextInvokerFunc(func(ctx context.Context, prompt string) (string, error) {
			if strings.Contains(prompt, "market researcher") {
				inv.mu.Lock()
				inv.prompts = append(inv.prompts, prompt)
				inv.mu.Unlock()
				return "Profile below.\n" + minimal, nil
			}
			return inv.Invoke(ctx, prompt)
		})

		code := p.Run(context.Background())
		assert.Equal(t, exitcode.Success, code)

		productDir := filepath.Join(cfg.OutputDir, "bee_venom_bswell")
		assert.True(t, artifact.Exists(filepath.Join(productDir, "market_research_min.json")))
		assert.True(t, artifact.Exists(filepath.Join(productDir, "carousel.json")))

		carouselPrompt := inv.promptFor("carousel ad")
		assert.Contains(t, carouselPrompt, "bee_venom_bswell")
		assert.Contains(t, carouselPrompt, "joint pain")
	})

	t.Run("existing research artifact is not regenerated", func(t *testing.T) {
		cfg := testConfig(t)
		inv := &routingInvoker{}

		code := newTestPipeline(cfg, inv).Run(context.Background())
		require.Equal(t, exitcode.Success, code)
		callsAfterFirst := len(inv.prompts)

		inv2 := &routingInvoker{}
		code = newTestPipeline(cfg, inv2).Run(context.Background())
		assert.Equal(t, exitcode.Success, code)
		assert.Empty(t, inv2.prompts, "all artifacts present, no model calls expected")
		assert.Equal(t, 5, callsAfterFirst)
	})

	t.Run("creative failure is isolated", func(t *testing.T) {
		cfg := testConfig(t)
		inv := &routingInvoker{failOn: "carousel ad"}
		p := newTestPipeline(cfg, inv)

		code := p.Run(context.Background())
		assert.Equal(t, exitcode.StagesFailed, code)

		productDir := filepath.Join(cfg.OutputDir, "bee_venom_bswell")
		assert.False(t, artifact.Exists(filepath.Join(productDir, "carousel.json")))
		assert.True(t, artifact.Exists(filepath.Join(productDir, "image_prompts.json")))
		assert.True(t, artifact.Exists(filepath.Join(productDir, "video_scripts.json")))

		assert.Equal(t, 1, p.Report().Failed())
		assert.Equal(t, 4, p.Report().Completed())

		run, err := state.Load(filepath.Join(productDir, ".adgen"))
		require.NoError(t, err)
		assert.Equal(t, state.StatusFailed, run.Status)
		assert.Equal(t, state.StageFailed, run.Stages["carousel"].Status)
		assert.Contains(t, run.Stages["carousel"].Error, "rejected")
	})

	t.Run("research failure aborts the run", func(t *testing.T) {
		cfg := testConfig(t)
		inv := &routingInvoker{failOn: "market researcher"}
		p := newTestPipeline(cfg, inv)

		code := p.Run(context.Background())
		assert.Equal(t, exitcode.ResearchFailed, code)
		assert.Len(t, inv.prompts, 1, "creative stages must not run without research")
	})

	t.Run("missing product config fails fast", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.ProductName = ""
		code := newTestPipeline(cfg, &routingInvoker{}).Run(context.Background())
		assert.Equal(t, exitcode.Error, code)
	})

	t.Run("missing credential fails before any call", func(t *testing.T) {
		cfg := testConfig(t)
		t.Setenv(ai.TextKeyEnv, "")
		inv := &routingInvoker{}
		code := newTestPipeline(cfg, inv).Run(context.Background())
		assert.Equal(t, exitcode.AuthFailure, code)
		assert.Empty(t, inv.prompts)
	})

	t.Run("changed product rejects stale state", func(t *testing.T) {
		cfg := testConfig(t)
		require.Equal(t, exitcode.Success, newTestPipeline(cfg, &routingInvoker{}).Run(context.Background()))

		cfg.ProductDescription = "entirely different product now"
		code := newTestPipeline(cfg, &routingInvoker{}).Run(context.Background())
		assert.Equal(t, exitcode.Error, code)
	})

	t.Run("force overrides the stale-state check", func(t *testing.T) {
		cfg := testConfig(t)
		require.Equal(t, exitcode.Success, newTestPipeline(cfg, &routingInvoker{}).Run(context.Background()))

		cfg.ProductDescription = "entirely different product now"
		cfg.Force = true
		code := newTestPipeline(cfg, &routingInvoker{}).Run(context.Background())
		assert.Equal(t, exitcode.Success, code)
	})
}

func TestRunStage(t *testing.T) {
	t.Run("research stage alone", func(t *testing.T) {
		cfg := testConfig(t)
		p := newTestPipeline(cfg, &routingInvoker{})
		code := p.RunStage(context.Background(), artifact.StageResearch)
		assert.Equal(t, exitcode.Success, code)
		assert.True(t, artifact.Exists(filepath.Join(cfg.OutputDir, "bee_venom_bswell", "market_research_min.json")))
	})

	t.Run("creative stage requires research artifact", func(t *testing.T) {
		cfg := testConfig(t)
		code := newTestPipeline(cfg, &routingInvoker{}).RunStage(context.Background(), artifact.StageCarousel)
		assert.Equal(t, exitcode.ResearchFailed, code)
	})

	t.Run("creative stage after research", func(t *testing.T) {
		cfg := testConfig(t)
		require.Equal(t, exitcode.Success,
			newTestPipeline(cfg, &routingInvoker{}).RunStage(context.Background(), artifact.StageResearch))

		inv := &routingInvoker{}
		code := newTestPipeline(cfg, inv).RunStage(context.Background(), artifact.StageCarousel)
		assert.Equal(t, exitcode.Success, code)
		assert.True(t, artifact.Exists(filepath.Join(cfg.OutputDir, "bee_venom_bswell", "carousel.json")))
		assert.Contains(t, inv.promptFor("carousel ad"), "joint pain")
	})
}
