package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SaveJSON persists v as indented JSON at path, creating parent directories
// as needed. Each stage writes its artifact exactly once, so completed work
// stays durable across crashes.
func SaveJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal artifact: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	return nil
}

// LoadJSON reads the JSON artifact at path into v.
func LoadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read artifact: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("unmarshal artifact %s: %w", filepath.Base(path), err)
	}
	return nil
}

// Exists reports whether an artifact file is already on disk. A present
// artifact lets the pipeline skip the stage that produces it.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
