package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/adforgehq/adgen/internal/ai"
	"github.com/adforgehq/adgen/internal/artifact"
	"github.com/adforgehq/adgen/internal/banner"
	"github.com/adforgehq/adgen/internal/cli"
	"github.com/adforgehq/adgen/internal/config"
	"github.com/adforgehq/adgen/internal/exitcode"
	"github.com/adforgehq/adgen/internal/logging"
	"github.com/adforgehq/adgen/internal/pipeline"
	sighandler "github.com/adforgehq/adgen/internal/signal"
)

// version vars injected via ldflags at build time
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// exitCode is set by subcommand handlers and applied after Execute so
// deferred cleanup still runs.
var exitCode = exitcode.Success

func main() {
	cfg := config.NewDefaultConfig()

	rootCmd := &cobra.Command{
		Use:     "adgen",
		Short:   "Ad creative generation pipeline",
		Long:    "adgen turns a product name and description into market research, carousel copy, video scripts, and image prompts, then materializes the prompts into images.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.ValidateFlags(cmd.Root(), cfg)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cli.BindFlags(rootCmd, cfg)

	rootCmd.AddCommand(
		newRunCmd(rootCmd, cfg),
		newStageCmd(rootCmd, cfg),
		newImagesCmd(rootCmd, cfg, artifact.StageImagePrompts, "images", "Materialize the image-prompts artifact into images"),
		newImagesCmd(rootCmd, cfg, artifact.StageThumbnailPrompts, "thumbnails", "Materialize the thumbnail-prompts artifact into thumbnails"),
		newStatusCmd(rootCmd, cfg),
		newCleanCmd(rootCmd, cfg),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitcode.Error)
	}
	os.Exit(exitCode)
}

// resolveConfig loads file-based configs with the precedence chain, keeping
// CLI flags the operator actually set as the top layer.
func resolveConfig(root *cobra.Command, cfg *config.Config) (*config.Config, error) {
	config.LoadDotenv()

	finalCfg, err := config.LoadWithPrecedence("", "", cfg.ConfigFile, buildCLIOverrides(root, cfg))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// CLI-only flags are not part of the precedence chain.
	finalCfg.ConfigFile = cfg.ConfigFile
	finalCfg.Force = cfg.Force
	if root.PersistentFlags().Changed("no-skip-existing") {
		finalCfg.SkipExisting = false
	}

	logging.SetVerbose(finalCfg.Verbose)
	return finalCfg, nil
}

// buildCLIOverrides creates a map of CLI flag overrides from the config.
// Uses Changed() so flags left at their defaults never shadow config files.
func buildCLIOverrides(root *cobra.Command, cfg *config.Config) map[string]string {
	overrides := make(map[string]string)
	flags := root.PersistentFlags()

	stringFlags := map[string]struct {
		key string
		val string
	}{
		"product":        {"PRODUCT_NAME", cfg.ProductName},
		"description":    {"PRODUCT_DESCRIPTION", cfg.ProductDescription},
		"output-dir":     {"OUTPUT_DIR", cfg.OutputDir},
		"text-model":     {"TEXT_MODEL", cfg.TextModel},
		"image-model":    {"IMAGE_MODEL", cfg.ImageModel},
		"resolution":     {"IMAGE_RESOLUTION", cfg.ImageResolution},
		"notify-webhook": {"NOTIFY_WEBHOOK", cfg.NotifyWebhook},
	}
	for flag, mapping := range stringFlags {
		if flags.Changed(flag) {
			overrides[mapping.key] = mapping.val
		}
	}

	intFlags := map[string]struct {
		key string
		val int
	}{
		"max-attempts":         {"MAX_ATTEMPTS", cfg.MaxAttempts},
		"base-delay":           {"BASE_DELAY_SECONDS", cfg.BaseDelaySeconds},
		"max-delay":            {"MAX_DELAY_SECONDS", cfg.MaxDelaySeconds},
		"max-concurrent":       {"MAX_CONCURRENT", cfg.MaxConcurrent},
		"top-angles":           {"TOP_ANGLES", cfg.TopAngles},
		"max-reference-images": {"MAX_REFERENCE_IMAGES", cfg.MaxReferenceImages},
	}
	for flag, mapping := range intFlags {
		if flags.Changed(flag) {
			overrides[mapping.key] = fmt.Sprintf("%d", mapping.val)
		}
	}

	if flags.Changed("verbose") {
		overrides["VERBOSE"] = fmt.Sprintf("%t", cfg.Verbose)
	}

	return overrides
}

// runContext returns a context canceled on SIGINT/SIGTERM.
func runContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sighandler.SetupSignalHandler(ctx, cancel, func() {
		banner.PrintInterruptedBanner()
	})
	return ctx, cancel
}

func newRunCmd(root *cobra.Command, cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline: research plus all creative stages",
		RunE: func(cmd *cobra.Command, args []string) error {
			finalCfg, err := resolveConfig(root, cfg)
			if err != nil {
				return err
			}

			ctx, cancel := runContext()
			defer cancel()

			exitCode = pipeline.New(finalCfg).Run(ctx)
			return nil
		},
	}
}

func newStageCmd(root *cobra.Command, cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "stage <research|carousel|image-prompts|video-scripts|thumbnail-prompts>",
		Short: "Run exactly one pipeline stage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := artifact.ParseStageKind(args[0])
			if err != nil {
				return err
			}

			finalCfg, err := resolveConfig(root, cfg)
			if err != nil {
				return err
			}

			ctx, cancel := runContext()
			defer cancel()

			p := pipeline.New(finalCfg)
			p.ShowBanner = false
			exitCode = p.RunStage(ctx, kind)
			return nil
		},
	}
}

func newImagesCmd(root *cobra.Command, cfg *config.Config, kind artifact.StageKind, use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			finalCfg, err := resolveConfig(root, cfg)
			if err != nil {
				return err
			}

			ctx, cancel := runContext()
			defer cancel()

			// Check the credential before building the client so a missing
			// key yields the taxonomy error, not an SDK one.
			if err := ai.CheckCredentials(false, true); err != nil {
				logging.Error(err.Error())
				exitCode = exitcode.AuthFailure
				return nil
			}

			invoker, err := ai.NewGeminiImageInvoker(ctx, os.Getenv(ai.ImageKeyEnv), finalCfg.ImageModel)
			if err != nil {
				return err
			}
			retrying := &ai.RetryImageInvoker{
				Inner:  invoker,
				Policy: pipeline.BackoffFromConfig(finalCfg),
			}

			p := pipeline.New(finalCfg)
			p.ShowBanner = false
			exitCode = p.MaterializeAssets(ctx, kind, retrying)
			return nil
		},
	}
}

func newStatusCmd(root *cobra.Command, cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the persisted run state for the product",
		RunE: func(cmd *cobra.Command, args []string) error {
			finalCfg, err := resolveConfig(root, cfg)
			if err != nil {
				return err
			}
			exitCode = pipeline.New(finalCfg).Status()
			return nil
		},
	}
}

func newCleanCmd(root *cobra.Command, cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove the product's run state (artifacts are kept)",
		RunE: func(cmd *cobra.Command, args []string) error {
			finalCfg, err := resolveConfig(root, cfg)
			if err != nil {
				return err
			}
			exitCode = pipeline.New(finalCfg).Clean()
			return nil
		},
	}
}
