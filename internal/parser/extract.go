// Package parser pulls structured JSON artifacts out of free-form model
// output. Models wrap their JSON in prose, markdown fences, or both, so
// extraction is anchored on a key the artifact is known to contain.
package parser

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractObject searches text for the JSON object that contains key and
// returns its raw bytes, ready to unmarshal into a typed artifact.
//
// Strategy:
//  1. Look for a ```json fenced code block containing key.
//  2. Fall back to bracket matching: find a '{' enclosing or following key
//     and walk forward tracking nesting depth, respecting string literals.
//
// If key appears nowhere in text the function returns (nil, nil); the caller
// decides whether that is a stage failure. Found-but-malformed JSON returns a
// non-nil error.
func ExtractObject(text, key string) ([]byte, error) {
	if text == "" || !strings.Contains(text, key) {
		return nil, nil
	}

	if raw, err := extractFromCodeBlock(text, key); raw != nil || err != nil {
		return raw, err
	}

	return extractByBracketMatch(text, key)
}

// extractFromCodeBlock scans ```json ... ``` blocks for one containing key.
func extractFromCodeBlock(text, key string) ([]byte, error) {
	const fence = "```"
	remaining := text

	for {
		openIdx := strings.Index(remaining, fence+"json")
		if openIdx == -1 {
			break
		}

		blockStart := openIdx + len(fence+"json")
		if blockStart < len(remaining) && remaining[blockStart] == '\n' {
			blockStart++
		}

		closeIdx := strings.Index(remaining[blockStart:], fence)
		if closeIdx == -1 {
			break
		}

		block := remaining[blockStart : blockStart+closeIdx]
		if strings.Contains(block, key) {
			trimmed := strings.TrimSpace(block)
			if err := validateObject([]byte(trimmed)); err != nil {
				return nil, fmt.Errorf("json in code block: %w", err)
			}
			return []byte(trimmed), nil
		}

		remaining = remaining[blockStart+closeIdx+len(fence):]
	}

	return nil, nil
}

// extractByBracketMatch isolates the object enclosing key, looking backward
// from the key for an opening brace first and forward second.
func extractByBracketMatch(text, key string) ([]byte, error) {
	keyIdx := strings.Index(text, key)
	if keyIdx == -1 {
		return nil, nil
	}

	if braceStart := strings.LastIndex(text[:keyIdx], "{"); braceStart >= 0 {
		raw := text[braceStart:]
		if end, ok := matchBraces(raw); ok {
			obj := raw[:end+1]
			if strings.Contains(obj, key) && validateObject([]byte(obj)) == nil {
				return []byte(obj), nil
			}
		}
	}

	braceStart := strings.Index(text[keyIdx:], "{")
	if braceStart == -1 {
		return nil, nil
	}
	braceStart += keyIdx

	raw := text[braceStart:]
	end, ok := matchBraces(raw)
	if !ok {
		return nil, fmt.Errorf("unmatched braces after key %q", key)
	}

	obj := raw[:end+1]
	if err := validateObject([]byte(obj)); err != nil {
		return nil, fmt.Errorf("bracket-matched json: %w", err)
	}
	return []byte(obj), nil
}

// validateObject checks that data parses as a JSON object.
func validateObject(data []byte) error {
	var obj map[string]json.RawMessage
	return json.Unmarshal(data, &obj)
}

// matchBraces returns the index of the '}' matching the '{' at position 0.
// String literals (with escaped quotes) are skipped, and square-bracket
// depth is tracked separately so arrays never unbalance the object match.
func matchBraces(s string) (int, bool) {
	if len(s) == 0 || s[0] != '{' {
		return 0, false
	}

	braceDepth := 0
	bracketDepth := 0
	inString := false
	i := 0

	for i < len(s) {
		ch := s[i]

		if inString {
			if ch == '\\' {
				i += 2
				continue
			}
			if ch == '"' {
				inString = false
			}
			i++
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			braceDepth++
		case '}':
			braceDepth--
			if braceDepth == 0 && bracketDepth == 0 {
				return i, true
			}
		case '[':
			bracketDepth++
		case ']':
			bracketDepth--
		}
		i++
	}

	return 0, false
}
