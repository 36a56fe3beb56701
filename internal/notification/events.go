// Package notification posts run lifecycle events to an operator-configured
// webhook. Delivery is fire-and-forget: a dead webhook must never fail a run
// that already produced artifacts.
package notification

import "fmt"

// Event types emitted by the pipeline.
const (
	EventCompleted   = "completed"
	EventPartial     = "partial"
	EventFailed      = "failed"
	EventInterrupted = "interrupted"
	EventRateLimited = "rate_limited"
)

// FormatEvent creates a notification message for the given event.
func FormatEvent(event, productName, runID string, failedStages int, exitCode int) string {
	switch event {
	case EventCompleted:
		return fmt.Sprintf("✅ %s [%s] all stages completed (exit %d)", productName, runID, exitCode)
	case EventPartial:
		return fmt.Sprintf("⚠️ %s [%s] finished with %d failed stage(s) (exit %d)", productName, runID, failedStages, exitCode)
	case EventFailed:
		return fmt.Sprintf("❌ %s [%s] run failed (exit %d)", productName, runID, exitCode)
	case EventInterrupted:
		return fmt.Sprintf("⏸️ %s [%s] interrupted - completed artifacts kept (exit %d)", productName, runID, exitCode)
	case EventRateLimited:
		return fmt.Sprintf("⏳ %s [%s] rate limit retries exhausted", productName, runID)
	default:
		return fmt.Sprintf("ℹ️ %s [%s] event: %s (exit %d)", productName, runID, event, exitCode)
	}
}
