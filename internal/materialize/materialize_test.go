package materialize

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adforgehq/adgen/internal/ai"
	"github.com/adforgehq/adgen/internal/artifact"
)

// fakeImageInvoker returns canned bytes per prompt, or an error for prompts
// listed in fail.
type fakeImageInvoker struct {
	calls []ai.ImageRequest
	fail  map[string]error
}

func (f *fakeImageInvoker) GenerateImage(_ context.Context, req ai.ImageRequest) ([]byte, error) {
	f.calls = append(f.calls, req)
	if err, ok := f.fail[req.Prompt]; ok {
		return nil, err
	}
	return []byte("png:" + req.Prompt), nil
}

func testSet() *artifact.PromptSet {
	return &artifact.PromptSet{Entries: []artifact.PromptEntry{
		{ID: "hero", Prompt: "hero shot", AspectRatio: "1:1"},
		{ID: "lifestyle", Prompt: "lifestyle shot"},
		{ID: "detail", Prompt: "detail shot"},
	}}
}

func TestRun(t *testing.T) {
	t.Run("failed entry does not stop the rest", func(t *testing.T) {
		layout := artifact.NewLayout(t.TempDir(), "bee_venom_bswell")
		inv := &fakeImageInvoker{fail: map[string]error{
			"lifestyle shot": &ai.FatalError{Status: 400, Category: "image", UnderlyingErr: fmt.Errorf("blocked")},
		}}
		m := &Materializer{Invoker: inv, Resolution: "4K", SkipExisting: true}

		report, err := m.Run(context.Background(), layout, artifact.StageImagePrompts, testSet())
		require.NoError(t, err)
		assert.Equal(t, 2, report.Succeeded())
		assert.Equal(t, 1, report.Failed())

		files, err := os.ReadDir(layout.GeneratedDir(artifact.StageImagePrompts))
		require.NoError(t, err)
		assert.Len(t, files, 2)
	})

	t.Run("existing files are skipped", func(t *testing.T) {
		layout := artifact.NewLayout(t.TempDir(), "bee_venom_bswell")
		set := testSet()

		outDir := layout.GeneratedDir(artifact.StageImagePrompts)
		require.NoError(t, os.MkdirAll(outDir, 0755))
		existing := filepath.Join(outDir, FileName(set.Entries[0]))
		require.NoError(t, os.WriteFile(existing, []byte("old"), 0644))

		inv := &fakeImageInvoker{}
		m := &Materializer{Invoker: inv, SkipExisting: true}
		report, err := m.Run(context.Background(), layout, artifact.StageImagePrompts, set)
		require.NoError(t, err)

		assert.Equal(t, 3, report.Succeeded())
		assert.True(t, report.Results[0].Skipped)
		assert.Len(t, inv.calls, 2)

		// The skipped file keeps its original content.
		data, err := os.ReadFile(existing)
		require.NoError(t, err)
		assert.Equal(t, "old", string(data))
	})

	t.Run("request carries entry fields and resolution", func(t *testing.T) {
		layout := artifact.NewLayout(t.TempDir(), "p")
		inv := &fakeImageInvoker{}
		m := &Materializer{Invoker: inv, Resolution: "2K"}
		set := &artifact.PromptSet{Entries: []artifact.PromptEntry{
			{ID: "x", Prompt: "p1", NegativePrompt: "no text", AspectRatio: "9:16"},
		}}

		_, err := m.Run(context.Background(), layout, artifact.StageThumbnailPrompts, set)
		require.NoError(t, err)
		require.Len(t, inv.calls, 1)
		assert.Equal(t, "no text", inv.calls[0].Negative)
		assert.Equal(t, "9:16", inv.calls[0].AspectRatio)
		assert.Equal(t, "2K", inv.calls[0].Resolution)
	})

	t.Run("thumbnails land in their own directory", func(t *testing.T) {
		layout := artifact.NewLayout(t.TempDir(), "p")
		m := &Materializer{Invoker: &fakeImageInvoker{}}
		_, err := m.Run(context.Background(), layout, artifact.StageThumbnailPrompts, testSet())
		require.NoError(t, err)

		files, err := os.ReadDir(layout.GeneratedDir(artifact.StageThumbnailPrompts))
		require.NoError(t, err)
		assert.Len(t, files, 3)
	})

	t.Run("cancelled context stops the pass", func(t *testing.T) {
		layout := artifact.NewLayout(t.TempDir(), "p")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		m := &Materializer{Invoker: &fakeImageInvoker{}}
		_, err := m.Run(ctx, layout, artifact.StageImagePrompts, testSet())
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestFileName(t *testing.T) {
	a := artifact.PromptEntry{ID: "hero", Prompt: "hero shot"}
	b := artifact.PromptEntry{ID: "hero", Prompt: "reworded hero shot"}

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, FileName(a), FileName(a))
	})

	t.Run("prompt change yields new name", func(t *testing.T) {
		assert.NotEqual(t, FileName(a), FileName(b))
	})

	t.Run("shape", func(t *testing.T) {
		name := FileName(a)
		assert.Regexp(t, `^hero_[0-9a-f]{8}\.png$`, name)
	})
}

func TestLoadReferences(t *testing.T) {
	t.Run("missing dir means no references", func(t *testing.T) {
		refs, err := LoadReferences(filepath.Join(t.TempDir(), "nope"), 14)
		require.NoError(t, err)
		assert.Nil(t, refs)
	})

	t.Run("filters, sorts and caps", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{"b.png", "a.jpg", "c.webp", "notes.txt", "d.JPEG"} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0644))
		}

		refs, err := LoadReferences(dir, 3)
		require.NoError(t, err)
		require.Len(t, refs, 3)

		// Sorted by name: a.jpg, b.png, c.webp (d.JPEG sorts after lowercase c).
		assert.Equal(t, "image/jpeg", refs[0].MIME)
		assert.Equal(t, "a.jpg", string(refs[0].Data))
		assert.Equal(t, "image/png", refs[1].MIME)
		assert.Equal(t, "image/webp", refs[2].MIME)
	})
}
