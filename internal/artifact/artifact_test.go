package artifact

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStageKind(t *testing.T) {
	t.Run("accepts known kinds", func(t *testing.T) {
		for _, s := range []string{"research", "carousel", "image-prompts", "video-scripts", "thumbnail-prompts"} {
			kind, err := ParseStageKind(s)
			require.NoError(t, err)
			assert.Equal(t, StageKind(s), kind)
		}
	})

	t.Run("rejects unknown kinds", func(t *testing.T) {
		_, err := ParseStageKind("banner")
		assert.Error(t, err)
	})
}

func TestLayout(t *testing.T) {
	l := NewLayout("output", "bee_venom_bswell")

	t.Run("product-scoped namespace", func(t *testing.T) {
		assert.Equal(t, filepath.Join("output", "bee_venom_bswell"), l.ProductDir())
		assert.Equal(t,
			filepath.Join("output", "bee_venom_bswell", "market_research_min.json"),
			l.ArtifactPath(StageResearch))
		assert.Equal(t,
			filepath.Join("output", "bee_venom_bswell", "carousel.json"),
			l.ArtifactPath(StageCarousel))
	})

	t.Run("thumbnails get their own generated dir", func(t *testing.T) {
		assert.Equal(t,
			filepath.Join("output", "bee_venom_bswell", "generated_thumbnails"),
			l.GeneratedDir(StageThumbnailPrompts))
		assert.Equal(t,
			filepath.Join("output", "bee_venom_bswell", "generated_images"),
			l.GeneratedDir(StageImagePrompts))
	})
}

func TestSaveLoadJSON(t *testing.T) {
	t.Run("roundtrip through nested directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "deep", "dir", "carousel.json")
		in := CarouselSpec{Slides: []CarouselSlide{{Index: 1, Hook: "h", Copy: "c"}}}

		require.NoError(t, SaveJSON(path, &in))
		assert.True(t, Exists(path))

		var out CarouselSpec
		require.NoError(t, LoadJSON(path, &out))
		assert.Equal(t, in, out)
	})

	t.Run("missing file does not exist", func(t *testing.T) {
		assert.False(t, Exists(filepath.Join(t.TempDir(), "nope.json")))
	})
}

func TestValidate(t *testing.T) {
	t.Run("empty carousel rejected", func(t *testing.T) {
		c := CarouselSpec{}
		assert.Error(t, c.Validate())
	})

	t.Run("script without beats rejected", func(t *testing.T) {
		v := VideoScriptSet{Scripts: []VideoScript{{Title: "t"}}}
		assert.Error(t, v.Validate())
	})

	t.Run("prompt set backfills missing ids", func(t *testing.T) {
		p := PromptSet{Entries: []PromptEntry{{Prompt: "a"}, {ID: "hero", Prompt: "b"}}}
		require.NoError(t, p.Validate())
		assert.Equal(t, "entry_01", p.Entries[0].ID)
		assert.Equal(t, "hero", p.Entries[1].ID)
	})

	t.Run("prompt entry without text rejected", func(t *testing.T) {
		p := PromptSet{Entries: []PromptEntry{{ID: "x"}}}
		assert.Error(t, p.Validate())
	})
}
