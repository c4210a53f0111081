package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/farewatch/fare-cli/internal/config"
)

// Telegram posts the report body to a bot chat. Telegram has no subject
// concept, the body carries everything.
type Telegram struct {
	cfg    config.TelegramConfig
	active bool
	client *http.Client
	base   string
}

func NewTelegram(cfg *config.Config) *Telegram {
	return &Telegram{
		cfg:    cfg.Telegram,
		active: cfg.ChannelEnabled("telegram"),
		client: &http.Client{Timeout: 30 * time.Second},
		base:   "https://api.telegram.org",
	}
}

func (t *Telegram) Name() string { return "telegram" }

func (t *Telegram) Enabled() (bool, string) {
	if !t.active {
		return false, "channel not in NOTIFY_CHANNELS"
	}
	if t.cfg.BotToken == "" || t.cfg.ChatID == "" {
		return false, "missing TELEGRAM_BOT_TOKEN or TELEGRAM_CHAT_ID"
	}
	return true, ""
}

func (t *Telegram) Send(_, body string) error {
	payload, err := json.Marshal(map[string]string{
		"chat_id": t.cfg.ChatID,
		"text":    body,
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.base, t.cfg.BotToken)
	resp, err := t.client.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("telegram post: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("telegram status %d: %s", resp.StatusCode, detail)
	}
	return nil
}
