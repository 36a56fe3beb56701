// Package prompt builds the model prompts for every pipeline stage from
// embedded templates. Templates use {{PLACEHOLDER}} markers filled in with
// simple string replacement.
package prompt

import (
	"fmt"
	"strings"

	"github.com/adforgehq/adgen/internal/artifact"
	"github.com/adforgehq/adgen/internal/product"
)

// BuildResearch constructs the market research prompt. The product name and
// description are embedded verbatim.
func BuildResearch(p product.Product) string {
	out := ResearchTemplate
	out = strings.ReplaceAll(out, "{{PRODUCT_NAME}}", p.Name)
	out = strings.ReplaceAll(out, "{{PRODUCT_DESCRIPTION}}", p.Description)
	return out
}

// BuildCreative constructs the prompt for one creative stage. researchJSON is
// the serialized research profile, embedded verbatim so every creative stage
// works from the same grounding.
func BuildCreative(kind artifact.StageKind, p product.Product, researchJSON string) (string, error) {
	var tmpl string
	switch kind {
	case artifact.StageCarousel:
		tmpl = CarouselTemplate
	case artifact.StageImagePrompts:
		tmpl = ImagePromptsTemplate
	case artifact.StageVideoScripts:
		tmpl = VideoScriptsTemplate
	case artifact.StageThumbnailPrompts:
		tmpl = ThumbnailPromptsTemplate
	default:
		return "", fmt.Errorf("no creative template for stage %q", kind)
	}

	out := tmpl
	out = strings.ReplaceAll(out, "{{PRODUCT_NAME}}", p.Name)
	out = strings.ReplaceAll(out, "{{PRODUCT_DESCRIPTION}}", p.Description)
	out = strings.ReplaceAll(out, "{{RESEARCH_JSON}}", researchJSON)
	return out, nil
}
