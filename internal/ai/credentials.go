package ai

import (
	"fmt"
	"os"
	"strings"
)

// Environment variables holding the two endpoint credentials.
const (
	TextKeyEnv  = "OPENAI_API_KEY"
	ImageKeyEnv = "GEMINI_API_KEY"
)

// AuthError reports a missing credential. It is fatal and aborts the run
// before any stage executes.
type AuthError struct {
	Env string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s is not set; export it (or add it to .env) before running", e.Env)
}

// CheckCredentials verifies that the credentials for the requested
// endpoints are present in the environment. needImages is false for
// copy-only invocations (e.g. running a single text stage).
func CheckCredentials(needText, needImages bool) error {
	if needText {
		if strings.TrimSpace(os.Getenv(TextKeyEnv)) == "" {
			return &AuthError{Env: TextKeyEnv}
		}
	}
	if needImages {
		if strings.TrimSpace(os.Getenv(ImageKeyEnv)) == "" {
			return &AuthError{Env: ImageKeyEnv}
		}
	}
	return nil
}
