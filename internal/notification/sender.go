package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// sendTimeout bounds how long a notification may hold up process exit.
const sendTimeout = 10 * time.Second

// SendNotification posts message to the webhook as a JSON payload.
// Fire-and-forget: never blocks the pipeline, silent on failure.
// No-op when webhook is empty.
func SendNotification(webhook, message string) {
	if webhook == "" {
		return
	}

	payload, err := json.Marshal(map[string]string{"text": message})
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhook, bytes.NewReader(payload))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return
	}
	resp.Body.Close()
}
