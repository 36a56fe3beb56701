package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/adforgehq/adgen/internal/ai"
	"github.com/adforgehq/adgen/internal/artifact"
	"github.com/adforgehq/adgen/internal/parser"
	"github.com/adforgehq/adgen/internal/product"
	"github.com/adforgehq/adgen/internal/prompt"
	"github.com/adforgehq/adgen/internal/research"
)

// runResearchStage invokes the text model with the research prompt, extracts
// the profile from the response, validates it, and persists the artifact.
func runResearchStage(ctx context.Context, invoker ai.TextInvoker, layout artifact.Layout, p product.Product) (*research.Profile, error) {
	out, err := invoker.Invoke(ctx, prompt.BuildResearch(p))
	if err != nil {
		return nil, err
	}

	raw, err := parser.ExtractObject(out, artifact.StageResearch.AnchorKey())
	if err != nil {
		return nil, fmt.Errorf("parse research output: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("research output contains no %q object", artifact.StageResearch.AnchorKey())
	}

	var profile research.Profile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, fmt.Errorf("decode research profile: %w", err)
	}
	if profile.Product == "" {
		profile.Product = p.Name
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	if err := research.Save(layout, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// runCreativeStage invokes the text model for one creative stage, extracts
// the typed artifact, validates it, and persists it. researchJSON is the
// serialized grounding shared by all creative stages.
func runCreativeStage(ctx context.Context, invoker ai.TextInvoker, layout artifact.Layout, p product.Product, kind artifact.StageKind, researchJSON string) error {
	built, err := prompt.BuildCreative(kind, p, researchJSON)
	if err != nil {
		return err
	}

	out, err := invoker.Invoke(ctx, built)
	if err != nil {
		return err
	}

	raw, err := parser.ExtractObject(out, kind.AnchorKey())
	if err != nil {
		return fmt.Errorf("parse %s output: %w", kind, err)
	}
	if raw == nil {
		return fmt.Errorf("%s output contains no %q object", kind, kind.AnchorKey())
	}

	doc, err := decodeCreative(kind, raw)
	if err != nil {
		return err
	}
	return artifact.SaveJSON(layout.ArtifactPath(kind), doc)
}

// decodeCreative unmarshals raw into the typed artifact for kind and
// validates it.
func decodeCreative(kind artifact.StageKind, raw []byte) (any, error) {
	switch kind {
	case artifact.StageCarousel:
		var doc artifact.CarouselSpec
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("decode carousel: %w", err)
		}
		return &doc, doc.Validate()
	case artifact.StageVideoScripts:
		var doc artifact.VideoScriptSet
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("decode video scripts: %w", err)
		}
		return &doc, doc.Validate()
	case artifact.StageImagePrompts, artifact.StageThumbnailPrompts:
		var doc artifact.PromptSet
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("decode %s: %w", kind, err)
		}
		return &doc, doc.Validate()
	}
	return nil, fmt.Errorf("no artifact type for stage %q", kind)
}

// creativeGrounding serializes the research profile for embedding into
// creative prompts, trimmed to the top-ranked angles so every stage works
// from the same, focused grounding.
func creativeGrounding(profile *research.Profile, topAngles int) (string, error) {
	trimmed := *profile
	if topAngles > 0 {
		trimmed.Angles = profile.TopAngles(topAngles)
	}
	data, err := json.MarshalIndent(&trimmed, "", "    ")
	if err != nil {
		return "", fmt.Errorf("serialize research grounding: %w", err)
	}
	return string(data), nil
}
