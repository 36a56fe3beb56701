// Package materialize turns prompt-set artifacts into image files on disk.
//
// Each prompt entry is one image-generation call. Entries are isolated: a
// failed entry is recorded and the remaining entries still run, so a partial
// prompt set still yields partial assets.
package materialize

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adforgehq/adgen/internal/ai"
	"github.com/adforgehq/adgen/internal/artifact"
	"github.com/adforgehq/adgen/internal/logging"
)

// Materializer generates image files from a prompt set.
type Materializer struct {
	Invoker ai.ImageInvoker

	// Resolution is passed through to every request ("1K", "2K", "4K").
	Resolution string

	// MaxReferences caps how many reference images are attached per call.
	MaxReferences int

	// SkipExisting leaves already-generated files untouched.
	SkipExisting bool
}

// EntryResult records the outcome of one prompt entry.
type EntryResult struct {
	EntryID string
	Path    string
	Skipped bool
	Err     error
}

// Report aggregates the per-entry outcomes of one materialization pass.
type Report struct {
	Results []EntryResult
}

// Succeeded counts entries that produced (or already had) a file.
func (r Report) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.Err == nil {
			n++
		}
	}
	return n
}

// Failed counts entries that produced no file.
func (r Report) Failed() int {
	return len(r.Results) - r.Succeeded()
}

// Run materializes every entry of the prompt set for the given stage,
// writing PNG files under the layout's generated directory. References are
// loaded once and shared across entries.
func (m *Materializer) Run(ctx context.Context, layout artifact.Layout, kind artifact.StageKind, set *artifact.PromptSet) (Report, error) {
	outDir := layout.GeneratedDir(kind)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return Report{}, fmt.Errorf("create output dir: %w", err)
	}

	refs, err := LoadReferences(layout.ReferenceImagesDir(), m.MaxReferences)
	if err != nil {
		return Report{}, err
	}
	if len(refs) > 0 {
		logging.Info(fmt.Sprintf("Attaching %d reference image(s)", len(refs)))
	}

	var report Report
	for _, entry := range set.Entries {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Results = append(report.Results, m.materializeEntry(ctx, outDir, entry, refs))
	}
	return report, nil
}

func (m *Materializer) materializeEntry(ctx context.Context, outDir string, entry artifact.PromptEntry, refs []ai.Reference) EntryResult {
	path := filepath.Join(outDir, FileName(entry))

	if m.SkipExisting && artifact.Exists(path) {
		logging.Debug(fmt.Sprintf("Skipping %s (already generated)", entry.ID))
		return EntryResult{EntryID: entry.ID, Path: path, Skipped: true}
	}

	data, err := m.Invoker.GenerateImage(ctx, ai.ImageRequest{
		Prompt:      entry.Prompt,
		Negative:    entry.NegativePrompt,
		AspectRatio: entry.AspectRatio,
		Resolution:  m.Resolution,
		References:  refs,
	})
	if err != nil {
		logging.Error(fmt.Sprintf("Entry %s failed: %v", entry.ID, err))
		return EntryResult{EntryID: entry.ID, Err: err}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return EntryResult{EntryID: entry.ID, Err: fmt.Errorf("write image: %w", err)}
	}

	logging.Success(fmt.Sprintf("Generated %s", filepath.Base(path)))
	return EntryResult{EntryID: entry.ID, Path: path}
}

// FileName returns the deterministic output name for a prompt entry: the
// entry ID plus a short hash of the prompt text, so a reworded prompt gets a
// fresh file instead of silently reusing a stale one.
func FileName(entry artifact.PromptEntry) string {
	sum := sha256.Sum256([]byte(entry.Prompt))
	return fmt.Sprintf("%s_%s.png", entry.ID, hex.EncodeToString(sum[:])[:8])
}

// referenceMIMEs maps accepted reference image extensions to MIME types.
var referenceMIMEs = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// LoadReferences reads up to max operator-supplied reference images from dir
// in sorted name order. A missing directory simply means no references.
func LoadReferences(dir string, max int) ([]ai.Reference, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read reference dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := referenceMIMEs[strings.ToLower(filepath.Ext(e.Name()))]; ok {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	if max > 0 && len(names) > max {
		names = names[:max]
	}

	var refs []ai.Reference
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read reference %s: %w", name, err)
		}
		refs = append(refs, ai.Reference{
			MIME: referenceMIMEs[strings.ToLower(filepath.Ext(name))],
			Data: data,
		})
	}
	return refs, nil
}
