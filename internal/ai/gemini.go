package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/adforgehq/adgen/internal/model"
)

// GeminiImageInvoker implements ImageInvoker against the Gemini
// generate-content endpoint with inline reference images.
type GeminiImageInvoker struct {
	client *genai.Client
	model  string
}

// NewGeminiImageInvoker creates a Gemini-backed image invoker.
func NewGeminiImageInvoker(ctx context.Context, apiKey, modelName string) (*GeminiImageInvoker, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiImageInvoker{
		client: client,
		model:  model.NormalizeGeminiModel(modelName),
	}, nil
}

// GenerateImage sends one multimodal request (prompt text plus reference
// image bytes) and returns the generated image bytes.
func (g *GeminiImageInvoker) GenerateImage(ctx context.Context, req ImageRequest) ([]byte, error) {
	parts := make([]*genai.Part, 0, 2+len(req.References))
	if s := strings.TrimSpace(req.Prompt); s != "" {
		parts = append(parts, genai.NewPartFromText(s))
	}
	if s := strings.TrimSpace(req.Negative); s != "" {
		parts = append(parts, genai.NewPartFromText("AVOID: "+s))
	}
	for _, ref := range req.References {
		if len(ref.Data) == 0 {
			continue
		}
		parts = append(parts, &genai.Part{InlineData: &genai.Blob{MIMEType: ref.MIME, Data: ref.Data}})
	}
	if len(parts) == 0 {
		return nil, &FatalError{Category: "image", UnderlyingErr: fmt.Errorf("empty image request")}
	}

	var config *genai.GenerateContentConfig
	if req.AspectRatio != "" || req.Resolution != "" {
		config = &genai.GenerateContentConfig{
			ImageConfig: &genai.ImageConfig{
				AspectRatio: req.AspectRatio,
				ImageSize:   req.Resolution,
			},
		}
	}

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	res, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return nil, Classify(apiErr.Code, "image", err)
		}
		return nil, &RateLimitError{UnderlyingErr: err}
	}

	return extractImageBytes(res, g.model)
}

// extractImageBytes pulls the first inline image out of a generate-content
// response. When the model answered with text only, that text is surfaced in
// the error so refusals are visible to the operator.
func extractImageBytes(res *genai.GenerateContentResponse, modelName string) ([]byte, error) {
	var textOut strings.Builder
	if len(res.Candidates) > 0 && res.Candidates[0].Content != nil {
		for _, part := range res.Candidates[0].Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data, nil
			}
			if part.Text != "" {
				textOut.WriteString(part.Text)
			}
		}
	}
	if s := strings.TrimSpace(textOut.String()); s != "" {
		if len(s) > 512 {
			s = s[:512] + "..."
		}
		return nil, &FatalError{Category: "image", UnderlyingErr: fmt.Errorf("no image returned by %s: %s", modelName, s)}
	}
	return nil, &FatalError{Category: "image", UnderlyingErr: fmt.Errorf("no image returned by %s", modelName)}
}
