// Package cli provides flag binding and validation for the adgen CLI.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/adforgehq/adgen/internal/config"
	"github.com/adforgehq/adgen/internal/model"
)

// BindFlags registers the shared CLI flags on the given cobra command.
// The flags directly modify fields in the provided config pointer.
// Call ValidateFlags after parsing to check flag combinations.
func BindFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.PersistentFlags()

	// Product
	flags.StringVarP(&cfg.ProductName, "product", "p", "", "Product name (required unless set in a config file)")
	flags.StringVarP(&cfg.ProductDescription, "description", "d", "", "Product description")

	// Output
	flags.StringVarP(&cfg.OutputDir, "output-dir", "o", cfg.OutputDir, "Root directory for generated artifacts")

	// Models
	flags.StringVar(&cfg.TextModel, "text-model", cfg.TextModel, "OpenAI model for the text stages")
	flags.StringVar(&cfg.ImageModel, "image-model", cfg.ImageModel, "Gemini model for image materialization")

	// Retry policy
	flags.IntVar(&cfg.MaxAttempts, "max-attempts", cfg.MaxAttempts, "Max attempts per rate-limited call")
	flags.IntVar(&cfg.BaseDelaySeconds, "base-delay", cfg.BaseDelaySeconds, "Initial retry delay in seconds")
	flags.IntVar(&cfg.MaxDelaySeconds, "max-delay", cfg.MaxDelaySeconds, "Retry delay cap in seconds")

	// Creative fan-out
	flags.IntVar(&cfg.MaxConcurrent, "max-concurrent", cfg.MaxConcurrent, "Max creative stages running at once")
	flags.IntVar(&cfg.TopAngles, "top-angles", cfg.TopAngles, "How many ranked angles feed the creative stages")

	// Image materialization
	flags.StringVar(&cfg.ImageResolution, "resolution", cfg.ImageResolution, "Generated image resolution: 1K, 2K or 4K")
	flags.IntVar(&cfg.MaxReferenceImages, "max-reference-images", cfg.MaxReferenceImages, "Max reference images attached per call")

	// Resumability
	var noSkipExisting bool
	flags.BoolVar(&noSkipExisting, "no-skip-existing", false, "Regenerate artifacts even when already present")
	flags.BoolVar(&cfg.Force, "force", false, "Ignore stale run state from a changed product config")

	// Notifications
	flags.StringVar(&cfg.NotifyWebhook, "notify-webhook", "", "Webhook URL for run lifecycle events")

	// Runtime
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable debug output")
	flags.StringVar(&cfg.ConfigFile, "config", "", "Path to additional config file")
}

// ValidateFlags checks for invalid flag values after parsing.
// Must be called after cmd.Execute() or cmd.ParseFlags().
func ValidateFlags(cmd *cobra.Command, cfg *config.Config) error {
	if cfg.ConfigFile != "" {
		if _, err := os.Stat(cfg.ConfigFile); err != nil {
			return fmt.Errorf("--config: %w", err)
		}
	}

	if err := model.ValidateModelFamily(model.Text, cfg.TextModel, "text-model"); err != nil {
		return err
	}
	if err := model.ValidateModelFamily(model.Image, cfg.ImageModel, "image-model"); err != nil {
		return err
	}

	switch cfg.ImageResolution {
	case "1K", "2K", "4K":
	default:
		return fmt.Errorf("--resolution must be 1K, 2K or 4K, got: %s", cfg.ImageResolution)
	}

	if cfg.MaxConcurrent < 1 {
		return fmt.Errorf("--max-concurrent must be at least 1, got: %d", cfg.MaxConcurrent)
	}
	if cfg.MaxAttempts < 1 {
		return fmt.Errorf("--max-attempts must be at least 1, got: %d", cfg.MaxAttempts)
	}

	// Handle negation flag via Changed detection
	if cmd.PersistentFlags().Changed("no-skip-existing") {
		cfg.SkipExisting = false
	}

	return nil
}
