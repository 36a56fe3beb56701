package artifact

import "path/filepath"

// Subdirectories inside a product directory.
const (
	referenceImagesDir = "product_images"
	generatedImagesDir = "generated_images"
	generatedThumbsDir = "generated_thumbnails"
	runStateDir        = ".adgen"
)

// Layout resolves paths inside one product-scoped namespace.
type Layout struct {
	OutputRoot string
	Slug       string
}

// NewLayout builds the layout for a product slug under outputRoot.
func NewLayout(outputRoot, slug string) Layout {
	return Layout{OutputRoot: outputRoot, Slug: slug}
}

// ProductDir is the root of the product-scoped namespace.
func (l Layout) ProductDir() string {
	return filepath.Join(l.OutputRoot, l.Slug)
}

// ArtifactPath returns the JSON artifact path for a stage.
func (l Layout) ArtifactPath(kind StageKind) string {
	return filepath.Join(l.ProductDir(), kind.FileName())
}

// ReferenceImagesDir holds operator-supplied reference images.
func (l Layout) ReferenceImagesDir() string {
	return filepath.Join(l.ProductDir(), referenceImagesDir)
}

// GeneratedDir returns the output directory for materialized assets of the
// given prompt-set stage.
func (l Layout) GeneratedDir(kind StageKind) string {
	if kind == StageThumbnailPrompts {
		return filepath.Join(l.ProductDir(), generatedThumbsDir)
	}
	return filepath.Join(l.ProductDir(), generatedImagesDir)
}

// StateDir holds the run state for resume/status.
func (l Layout) StateDir() string {
	return filepath.Join(l.ProductDir(), runStateDir)
}
