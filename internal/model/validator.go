package model

import (
	"fmt"
	"regexp"
	"strings"
)

// openAIModelRe matches OpenAI-family model prefixes: o1, o3, gpt-*, etc.
var openAIModelRe = regexp.MustCompile(`^(o[0-9]|gpt|chatgpt|text|ft)`)

// geminiModelHints are lower-cased prefixes that strongly indicate a
// Gemini-family model.
var geminiModelHints = []string{"gemini", "imagen", "models/gemini", "models/imagen", "google/"}

// ValidateModelFamily checks whether name is plausible for the given
// endpoint family. label is a human-readable flag name used in error
// messages (e.g. "text-model", "image-model").
//
// Rules:
//   - Empty name is always allowed (the caller will apply defaults).
//   - Gemini-style hints are invalid for the text endpoint.
//   - OpenAI-style hints are invalid for the image endpoint.
//   - Anything else is accepted without opinion.
func ValidateModelFamily(family, name, label string) error {
	if name == "" {
		return nil
	}

	if family == Text && IsGeminiModelHint(name) {
		return fmt.Errorf("%s %q looks like a Gemini model but the text endpoint is OpenAI", label, name)
	}
	if family == Image && IsOpenAIModelHint(name) {
		return fmt.Errorf("%s %q looks like an OpenAI model but the image endpoint is Gemini", label, name)
	}
	return nil
}

// IsGeminiModelHint returns true when name appears to target a Gemini
// backend (gemini-*, imagen-*, models/*, or google/* prefix).
func IsGeminiModelHint(name string) bool {
	lower := strings.ToLower(name)
	for _, hint := range geminiModelHints {
		if strings.HasPrefix(lower, hint) {
			return true
		}
	}
	return false
}

// IsOpenAIModelHint returns true when name appears to target an OpenAI
// backend (o1, o3, gpt-*, chatgpt-*, etc.).
func IsOpenAIModelHint(name string) bool {
	return openAIModelRe.MatchString(strings.ToLower(name))
}
