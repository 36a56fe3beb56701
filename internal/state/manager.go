package state

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const stateFileName = "run-state.json"

// NewRunState initializes state for a fresh run.
func NewRunState(runID, productName, slug, fingerprint, textModel, imageModel string) *RunState {
	now := time.Now().UTC().Format(time.RFC3339)
	return &RunState{
		SchemaVersion:      CurrentSchemaVersion,
		RunID:              runID,
		StartedAt:          now,
		LastUpdated:        now,
		Status:             StatusInProgress,
		ProductName:        productName,
		ProductSlug:        slug,
		ProductFingerprint: fingerprint,
		TextModel:          textModel,
		ImageModel:         imageModel,
		Stages:             make(map[string]StageRecord),
	}
}

// Fingerprint returns a stable hash of the product inputs. A changed
// fingerprint means existing artifacts were built from different inputs.
func Fingerprint(name, description string) string {
	sum := sha256.Sum256([]byte(name + "\x00" + description))
	return hex.EncodeToString(sum[:])
}

// SetStage records a stage outcome and bumps the update timestamp.
func (s *RunState) SetStage(stage string, rec StageRecord) {
	if s.Stages == nil {
		s.Stages = make(map[string]StageRecord)
	}
	s.Stages[stage] = rec
	s.LastUpdated = time.Now().UTC().Format(time.RFC3339)
}

// Save persists the run state as indented JSON under dir.
func Save(s *RunState, dir string) error {
	data, err := json.MarshalIndent(s, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	path := filepath.Join(dir, stateFileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}

	return nil
}

// Load reads and parses the run state from dir.
func Load(dir string) (*RunState, error) {
	path := filepath.Join(dir, stateFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}

	var s RunState
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal state: %w", err)
	}

	return &s, nil
}

// Exists reports whether a state file is present under dir.
func Exists(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, stateFileName))
	return err == nil && !info.IsDir()
}

// Validate checks that saved state matches the current product inputs. A
// fingerprint mismatch means the operator changed the product config after
// artifacts were written; resuming would mix research from different inputs.
func Validate(s *RunState, fingerprint string) error {
	if s.ProductFingerprint != "" && s.ProductFingerprint != fingerprint {
		return fmt.Errorf("product config changed since run %s started (use a clean output dir or run clean)", s.RunID)
	}
	return nil
}
