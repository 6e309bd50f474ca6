// Package notify publishes one message per stock lookup to a Redis channel
// and/or a webhook.
package notify

import (
	"os"
	"time"
)

// Config holds notification settings. Empty fields disable that sink.
type Config struct {
	Channel    string        // Redis PUBLISH channel
	WebhookURL string        // POST target; empty disables the webhook
	Timeout    time.Duration // webhook request timeout
}

// LoadConfig loads notification configuration from environment variables.
func LoadConfig() Config {
	ch := os.Getenv("NOTIFY_CHANNEL")
	if ch == "" {
		ch = "quikstox:lookups"
	}
	return Config{
		Channel:    ch,
		WebhookURL: os.Getenv("NOTIFY_WEBHOOK_URL"),
		Timeout:    5 * time.Second,
	}
}
