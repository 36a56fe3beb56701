// Package banner provides colored banner display functions for the adgen CLI.
//
// All banner functions write formatted output to stdout with color-coded
// headers and separators. They mark the major transitions of a pipeline run:
// startup, completion, and failure.
package banner

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/adforgehq/adgen/internal/logging"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold).SprintFunc()
	successColor = color.New(color.FgGreen, color.Bold).SprintFunc()
	errorColor   = color.New(color.FgRed, color.Bold).SprintFunc()
	warnColor    = color.New(color.FgYellow, color.Bold).SprintFunc()
)

const sepLine = "═══════════════════════════════════════════════════"

// PrintStartupBanner displays the startup banner with run info.
//
// Example output:
//
//	═══════════════════════════════════════════════════
//	  adgen - Ad Creative Generation Pipeline
//	═══════════════════════════════════════════════════
//	  Run:         9f1c2d3e
//	  Product:     Bee Venom BSwell
//	  Text model:  gpt-4o
//	  Image model: gemini-2.5-flash-image-preview
//	  Output:      output/bee_venom_bswell
//	═══════════════════════════════════════════════════
func PrintStartupBanner(runID, productName, textModel, imageModel, outputDir string) {
	sep := headerColor(sepLine)
	fmt.Println(sep)
	fmt.Println(headerColor("  adgen - Ad Creative Generation Pipeline"))
	fmt.Println(sep)
	fmt.Printf("  Run:         %s\n", runID)
	fmt.Printf("  Product:     %s\n", productName)
	fmt.Printf("  Text model:  %s\n", textModel)
	fmt.Printf("  Image model: %s\n", imageModel)
	fmt.Printf("  Output:      %s\n", outputDir)
	fmt.Println(sep)
}

// PrintCompletionBanner displays the completion banner with stage counts.
func PrintCompletionBanner(completed, skipped int, durationSecs int) {
	sep := successColor(sepLine)
	fmt.Println(sep)
	fmt.Println(successColor("  ✓ All stages completed successfully!"))
	fmt.Printf("  Completed:  %d\n", completed)
	if skipped > 0 {
		fmt.Printf("  Skipped:    %d (artifacts already present)\n", skipped)
	}
	fmt.Printf("  Duration:   %s (%ds)\n", logging.FormatDuration(durationSecs), durationSecs)
	fmt.Println(sep)
}

// PrintPartialFailureBanner displays the banner for a run where some creative
// stages failed but others produced artifacts.
func PrintPartialFailureBanner(completed, failed int, failures []string) {
	sep := warnColor(sepLine)
	fmt.Println(sep)
	fmt.Println(warnColor("  ⚠ Run finished with stage failures"))
	fmt.Printf("  Completed:  %d\n", completed)
	fmt.Printf("  Failed:     %d\n", failed)
	fmt.Println("  Failures:")
	for _, f := range failures {
		fmt.Printf("    - %s\n", f)
	}
	fmt.Println(sep)
}

// PrintFailureBanner displays the banner for a run that produced nothing.
func PrintFailureBanner(reason string) {
	sep := errorColor(sepLine)
	fmt.Println(sep)
	fmt.Println(errorColor("  ✗ Run failed"))
	fmt.Println(sep)
	fmt.Println("  Reason:")
	fmt.Printf("  %s\n", reason)
	fmt.Println(sep)
}

// PrintInterruptedBanner displays the banner shown on SIGINT/SIGTERM.
func PrintInterruptedBanner() {
	sep := warnColor(sepLine)
	fmt.Println(sep)
	fmt.Println(warnColor("  ⏸ Run interrupted - completed artifacts were kept"))
	fmt.Println("  Re-run the same command to resume from where it stopped.")
	fmt.Println(sep)
}
