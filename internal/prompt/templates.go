package prompt

import _ "embed"

// Template files embedded at compile time
var (
	//go:embed templates/research.txt
	ResearchTemplate string

	//go:embed templates/carousel.txt
	CarouselTemplate string

	//go:embed templates/image-prompts.txt
	ImagePromptsTemplate string

	//go:embed templates/video-scripts.txt
	VideoScriptsTemplate string

	//go:embed templates/thumbnail-prompts.txt
	ThumbnailPromptsTemplate string
)
