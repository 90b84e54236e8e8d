package utils

import (
	"log"
	"skillforge/config"
	"time"

	"github.com/go-resty/resty/v2"
)

// NotifyEvent posts a platform event to the configured webhook. Delivery is
// best effort: failures are logged and never surfaced to the caller, and
// the call is a no-op when no webhook is configured.
func NotifyEvent(event string, payload map[string]interface{}) {
	url := config.AppConfig.EventWebhookURL
	if url == "" {
		return
	}

	client := resty.New().SetTimeout(5 * time.Second)
	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"event":       event,
			"occurred_at": time.Now().UTC().Format(time.RFC3339),
			"data":        payload,
		}).
		Post(url)
	if err != nil {
		log.Printf("Failed to deliver %s event: %v", event, err)
		return
	}
	if resp.StatusCode() >= 400 {
		log.Printf("Webhook rejected %s event: %d", event, resp.StatusCode())
	}
}
