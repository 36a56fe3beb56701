package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adforgehq/adgen/internal/config"
)

func parse(t *testing.T, args ...string) (*cobra.Command, *config.Config, error) {
	t.Helper()
	cfg := config.NewDefaultConfig()
	cmd := &cobra.Command{Use: "adgen"}
	BindFlags(cmd, cfg)
	err := cmd.ParseFlags(args)
	require.NoError(t, err)
	return cmd, cfg, ValidateFlags(cmd, cfg)
}

func TestBindFlags(t *testing.T) {
	t.Run("flags update config", func(t *testing.T) {
		_, cfg, err := parse(t,
			"-p", "Bee Venom BSwell",
			"-d", "joint cream",
			"-o", "out",
			"--max-concurrent", "3",
			"--resolution", "2K",
			"-v",
		)
		require.NoError(t, err)
		assert.Equal(t, "Bee Venom BSwell", cfg.ProductName)
		assert.Equal(t, "joint cream", cfg.ProductDescription)
		assert.Equal(t, "out", cfg.OutputDir)
		assert.Equal(t, 3, cfg.MaxConcurrent)
		assert.Equal(t, "2K", cfg.ImageResolution)
		assert.True(t, cfg.Verbose)
	})

	t.Run("defaults survive when flags untouched", func(t *testing.T) {
		_, cfg, err := parse(t)
		require.NoError(t, err)
		assert.Equal(t, "output", cfg.OutputDir)
		assert.True(t, cfg.SkipExisting)
	})
}

func TestValidateFlags(t *testing.T) {
	t.Run("gemini model rejected for text endpoint", func(t *testing.T) {
		_, _, err := parse(t, "--text-model", "gemini-2.5-pro")
		assert.Error(t, err)
	})

	t.Run("openai model rejected for image endpoint", func(t *testing.T) {
		_, _, err := parse(t, "--image-model", "gpt-4o")
		assert.Error(t, err)
	})

	t.Run("bad resolution rejected", func(t *testing.T) {
		_, _, err := parse(t, "--resolution", "8K")
		assert.Error(t, err)
	})

	t.Run("zero concurrency rejected", func(t *testing.T) {
		_, _, err := parse(t, "--max-concurrent", "0")
		assert.Error(t, err)
	})

	t.Run("missing config file rejected", func(t *testing.T) {
		_, _, err := parse(t, "--config", "/nonexistent/adgen.conf")
		assert.Error(t, err)
	})

	t.Run("existing config file accepted", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "adgen.conf")
		require.NoError(t, os.WriteFile(path, []byte("OUTPUT_DIR=out\n"), 0644))
		_, _, err := parse(t, "--config", path)
		assert.NoError(t, err)
	})

	t.Run("no-skip-existing flips the default", func(t *testing.T) {
		_, cfg, err := parse(t, "--no-skip-existing")
		require.NoError(t, err)
		assert.False(t, cfg.SkipExisting)
	})
}
