// Package ai provides the model invokers for the adgen pipeline and the
// retry/backoff wrapper that guards every quota-limited call.
//
// Invokers perform exactly one outbound request per call and never retry
// internally; retry policy lives in RetryWithBackoff so that mechanism and
// policy stay separate and independently testable.
package ai

import "context"

// TextInvoker sends a prompt to a text-generation endpoint and returns the
// raw model output.
type TextInvoker interface {
	Invoke(ctx context.Context, prompt string) (string, error)
}

// Reference carries the bytes of one operator-supplied reference image.
type Reference struct {
	MIME string
	Data []byte
}

// ImageRequest describes one multimodal image-generation call.
type ImageRequest struct {
	Prompt      string
	Negative    string
	AspectRatio string
	Resolution  string
	References  []Reference
}

// ImageInvoker sends an image request to an image-generation endpoint and
// returns the raw image bytes.
type ImageInvoker interface {
	GenerateImage(ctx context.Context, req ImageRequest) ([]byte, error)
}

// TextInvokerFunc adapts a function to the TextInvoker interface.
type TextInvokerFunc func(ctx context.Context, prompt string) (string, error)

// Invoke calls f.
func (f TextInvokerFunc) Invoke(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
