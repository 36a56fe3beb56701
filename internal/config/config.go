// Package config defines the adgen configuration model and default values.
//
// Configuration is assembled from multiple sources with a strict precedence
// chain: built-in defaults < global config file < project config file <
// explicit config file < CLI flag overrides. API keys never travel through
// config files; they come from the environment (see the ai package), with
// .env loading as a convenience.
package config

import "github.com/adforgehq/adgen/internal/model"

// WhitelistedVars lists every configuration variable name that may appear in
// config files. Variables not in this list are silently ignored during loading.
var WhitelistedVars = []string{
	"PRODUCT_NAME",
	"PRODUCT_DESCRIPTION",
	"OUTPUT_DIR",
	"TEXT_MODEL",
	"IMAGE_MODEL",
	"MAX_ATTEMPTS",
	"BASE_DELAY_SECONDS",
	"MAX_DELAY_SECONDS",
	"MAX_CONCURRENT",
	"IMAGE_RESOLUTION",
	"TOP_ANGLES",
	"MAX_REFERENCE_IMAGES",
	"SKIP_EXISTING",
	"NOTIFY_WEBHOOK",
	"VERBOSE",
}

// Config holds every configuration field for the adgen CLI.
type Config struct {
	// Product under generation.
	ProductName        string
	ProductDescription string

	// Output layout.
	OutputDir string

	// Model selection.
	TextModel  string
	ImageModel string

	// Rate-limit retry policy.
	MaxAttempts      int
	BaseDelaySeconds int
	MaxDelaySeconds  int

	// Creative fan-out.
	MaxConcurrent int
	TopAngles     int

	// Image materialization.
	ImageResolution    string
	MaxReferenceImages int

	// Resumability.
	SkipExisting bool

	// Notification settings.
	NotifyWebhook string

	// Runtime flags.
	Verbose bool

	// CLI-only flags (not loaded from config files).
	ConfigFile string
	Force      bool
}

// NewDefaultConfig returns a Config populated with all built-in default values.
func NewDefaultConfig() *Config {
	return &Config{
		OutputDir:          "output",
		TextModel:          model.DefaultTextModel,
		ImageModel:         model.DefaultImageModel,
		MaxAttempts:        6,
		BaseDelaySeconds:   5,
		MaxDelaySeconds:    120,
		MaxConcurrent:      2,
		TopAngles:          3,
		ImageResolution:    "4K",
		MaxReferenceImages: 14,
		SkipExisting:       true,
	}
}
