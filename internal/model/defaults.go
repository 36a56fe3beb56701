// Package model provides model-name helpers for the adgen CLI.
//
// It centralises default model names per endpoint family and validation
// that a requested model is compatible with the endpoint it is used
// against (OpenAI text vs Gemini image).
package model

import "strings"

// Endpoint family identifiers used throughout the CLI.
const (
	Text  = "text"
	Image = "image"
)

// Default model names.
const (
	DefaultTextModel  = "gpt-4o"
	DefaultImageModel = "gemini-2.5-flash-image-preview"
)

// DefaultFor returns the default model for the given endpoint family.
func DefaultFor(family string) string {
	if family == Image {
		return DefaultImageModel
	}
	return DefaultTextModel
}

// NormalizeGeminiModel normalizes model names for the Gemini API.
// Accepts inputs like:
//   - "gemini-2.5-flash-image-preview"
//   - "google/gemini-2.5-flash-image-preview:free"
//   - "models/gemini-2.5-flash-image-preview"
//
// and returns a resource name like:
//   - "models/gemini-2.5-flash-image-preview"
func NormalizeGeminiModel(name string) string {
	m := strings.TrimSpace(name)
	if m == "" {
		return "models/" + DefaultImageModel
	}
	if strings.HasPrefix(m, "models/") {
		return m
	}
	// strip provider namespace if present
	m = strings.TrimPrefix(m, "google/")
	// drop any trailing ":..." variant suffix
	if i := strings.IndexByte(m, ':'); i >= 0 {
		m = m[:i]
	}
	return "models/" + m
}
