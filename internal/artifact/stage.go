// Package artifact defines the pipeline's stage kinds, the per-product
// directory layout, and the persisted JSON artifact types.
//
// Every artifact for one product lives under one product-scoped directory;
// nothing in the pipeline reads across product directories.
package artifact

import "fmt"

// StageKind identifies one prompt-build-plus-model-call step.
type StageKind string

const (
	StageResearch         StageKind = "research"
	StageCarousel         StageKind = "carousel"
	StageImagePrompts     StageKind = "image-prompts"
	StageVideoScripts     StageKind = "video-scripts"
	StageThumbnailPrompts StageKind = "thumbnail-prompts"
)

// CreativeStages lists the four stages that fan out from the research
// profile. They are mutually independent.
func CreativeStages() []StageKind {
	return []StageKind{
		StageCarousel,
		StageImagePrompts,
		StageVideoScripts,
		StageThumbnailPrompts,
	}
}

// ParseStageKind converts a CLI argument into a StageKind.
func ParseStageKind(s string) (StageKind, error) {
	switch StageKind(s) {
	case StageResearch, StageCarousel, StageImagePrompts, StageVideoScripts, StageThumbnailPrompts:
		return StageKind(s), nil
	}
	return "", fmt.Errorf("unknown stage %q (want research, carousel, image-prompts, video-scripts or thumbnail-prompts)", s)
}

// FileName returns the artifact file name for a stage.
func (k StageKind) FileName() string {
	switch k {
	case StageResearch:
		return "market_research_min.json"
	case StageCarousel:
		return "carousel.json"
	case StageImagePrompts:
		return "image_prompts.json"
	case StageVideoScripts:
		return "video_scripts.json"
	case StageThumbnailPrompts:
		return "thumbnail_prompts.json"
	}
	return string(k) + ".json"
}

// AnchorKey returns the JSON key that anchors extraction of this stage's
// object from free-form model output.
func (k StageKind) AnchorKey() string {
	switch k {
	case StageResearch:
		return "pains"
	case StageCarousel:
		return "slides"
	case StageVideoScripts:
		return "scripts"
	default:
		return "entries"
	}
}
