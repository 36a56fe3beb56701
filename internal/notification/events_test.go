package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatEvent(t *testing.T) {
	tests := []struct {
		name     string
		event    string
		contains []string
	}{
		{"completed", EventCompleted, []string{"✅", "Bee Venom BSwell", "run-1", "exit 0"}},
		{"partial", EventPartial, []string{"⚠️", "2 failed stage(s)"}},
		{"failed", EventFailed, []string{"❌", "run failed"}},
		{"interrupted", EventInterrupted, []string{"⏸️", "artifacts kept"}},
		{"rate limited", EventRateLimited, []string{"⏳", "retries exhausted"}},
		{"unknown falls back", "mystery", []string{"ℹ️", "event: mystery"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := FormatEvent(tt.event, "Bee Venom BSwell", "run-1", 2, 0)
			for _, want := range tt.contains {
				assert.Contains(t, msg, want)
			}
		})
	}
}
