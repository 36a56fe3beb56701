package artifact

import "fmt"

// CarouselSlide is one card of a carousel ad.
type CarouselSlide struct {
	Index int    `json:"index"`
	Angle string `json:"angle,omitempty"`
	Hook  string `json:"hook"`
	Copy  string `json:"copy"`
	CTA   string `json:"cta,omitempty"`
}

// CarouselSpec is the carousel ad copy artifact. Terminal: consumed by a
// human operator, not by the materializer.
type CarouselSpec struct {
	Slides []CarouselSlide `json:"slides"`
}

// Validate rejects structurally empty carousel output.
func (c *CarouselSpec) Validate() error {
	if len(c.Slides) == 0 {
		return fmt.Errorf("carousel has no slides")
	}
	for i, s := range c.Slides {
		if s.Hook == "" && s.Copy == "" {
			return fmt.Errorf("carousel slide %d is empty", i)
		}
	}
	return nil
}

// ScriptBeat is one timed beat of a video script.
type ScriptBeat struct {
	Timecode  string `json:"timecode"`
	Voiceover string `json:"voiceover"`
	Visual    string `json:"visual"`
}

// VideoScript is one complete script for one marketing angle.
type VideoScript struct {
	Angle string       `json:"angle,omitempty"`
	Title string       `json:"title"`
	Beats []ScriptBeat `json:"beats"`
}

// VideoScriptSet is the video-script artifact. Terminal, like the carousel.
type VideoScriptSet struct {
	Scripts []VideoScript `json:"scripts"`
}

// Validate rejects structurally empty script output.
func (v *VideoScriptSet) Validate() error {
	if len(v.Scripts) == 0 {
		return fmt.Errorf("video script set has no scripts")
	}
	for i, s := range v.Scripts {
		if len(s.Beats) == 0 {
			return fmt.Errorf("video script %d has no beats", i)
		}
	}
	return nil
}

// PromptEntry is one structured image-generation prompt.
type PromptEntry struct {
	ID             string `json:"id"`
	Angle          string `json:"angle,omitempty"`
	Prompt         string `json:"prompt"`
	NegativePrompt string `json:"negative_prompt,omitempty"`
	AspectRatio    string `json:"aspect_ratio,omitempty"`
}

// PromptSet is the artifact shape shared by the image-prompt and
// thumbnail-prompt stages; it is the materializer's input.
type PromptSet struct {
	Entries []PromptEntry `json:"entries"`
}

// Validate rejects empty prompt sets and entries with no prompt text, and
// backfills missing entry IDs so generated assets get deterministic names.
func (p *PromptSet) Validate() error {
	if len(p.Entries) == 0 {
		return fmt.Errorf("prompt set has no entries")
	}
	for i := range p.Entries {
		if p.Entries[i].Prompt == "" {
			return fmt.Errorf("prompt entry %d has no prompt text", i)
		}
		if p.Entries[i].ID == "" {
			p.Entries[i].ID = fmt.Sprintf("entry_%02d", i+1)
		}
	}
	return nil
}
