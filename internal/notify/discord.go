package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Discord posts the report body to a webhook.
type Discord struct {
	webhookURL string
	active     bool
	client     *http.Client
}

func NewDiscord(webhookURL string, active bool) *Discord {
	return &Discord{
		webhookURL: webhookURL,
		active:     active,
		client:     &http.Client{Timeout: 30 * time.Second},
	}
}

func (d *Discord) Name() string { return "discord" }

func (d *Discord) Enabled() (bool, string) {
	if !d.active {
		return false, "channel not in NOTIFY_CHANNELS"
	}
	if d.webhookURL == "" {
		return false, "missing DISCORD_WEBHOOK_URL"
	}
	return true, ""
}

func (d *Discord) Send(_, body string) error {
	payload, err := json.Marshal(map[string]string{"content": body})
	if err != nil {
		return err
	}

	resp, err := d.client.Post(d.webhookURL, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("discord post: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("discord status %d: %s", resp.StatusCode, detail)
	}
	return nil
}
