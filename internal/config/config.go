package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/farewatch/fare-cli/internal/core"
)

// Mode selects the offer source backing a run.
type Mode string

const (
	ModeMock Mode = "mock"
	ModeLive Mode = "live"
)

// AmadeusConfig holds the offer-source credentials.
type AmadeusConfig struct {
	APIKey    string `yaml:"-"`
	APISecret string `yaml:"-"`
	Env       string `yaml:"env,omitempty"` // "test" or "production"
}

// Host returns the API host for the configured environment.
func (a AmadeusConfig) Host() string {
	if strings.EqualFold(a.Env, "production") {
		return "https://api.amadeus.com"
	}
	return "https://test.api.amadeus.com"
}

// SMTPConfig configures the email channel.
type SMTPConfig struct {
	Host   string   `yaml:"host,omitempty"`
	Port   int      `yaml:"port,omitempty"`
	User   string   `yaml:"-"`
	Pass   string   `yaml:"-"`
	From   string   `yaml:"from,omitempty"`
	To     []string `yaml:"to,omitempty"`
	UseTLS bool     `yaml:"useTLS,omitempty"`
}

// TelegramConfig configures the chat-bot channel.
type TelegramConfig struct {
	BotToken string `yaml:"-"`
	ChatID   string `yaml:"chatId,omitempty"`
}

// Config is the full run configuration: the watched itineraries, the
// selection policy, the alert threshold, and every channel credential.
// Built once at process start; components receive it explicitly.
type Config struct {
	Mode        Mode                 `yaml:"mode,omitempty"`
	Currency    string               `yaml:"currency,omitempty"`
	Adults      int                  `yaml:"adults,omitempty"`
	MaxOffers   int                  `yaml:"maxOffers,omitempty"`
	Policy      core.SelectionPolicy `yaml:"policy,omitempty"`
	LegMatch    core.LegMatchMode    `yaml:"legMatch,omitempty"`
	StrictCabin bool                 `yaml:"strictCabin,omitempty"`
	Threshold   *float64             `yaml:"threshold,omitempty"`
	Subject     string               `yaml:"subject,omitempty"`
	StatePath   string               `yaml:"statePath,omitempty"`
	Itineraries []core.ItinerarySpec `yaml:"itineraries"`

	Channels []string       `yaml:"channels,omitempty"`
	Amadeus  AmadeusConfig  `yaml:"amadeus,omitempty"`
	SMTP     SMTPConfig     `yaml:"smtp,omitempty"`
	Telegram TelegramConfig `yaml:"telegram,omitempty"`

	DiscordWebhookURL string `yaml:"-"`
}

// Default returns the built-in defaults applied before the yaml file and
// environment overlay.
func Default() *Config {
	return &Config{
		Mode:      ModeMock,
		Currency:  "USD",
		Adults:    1,
		MaxOffers: 200,
		Policy:    core.PolicyPreferBrand,
		LegMatch:  core.LegMatchNonstop,
		Subject:   "farewatch price check",
		StatePath: "farewatch.db",
		SMTP:      SMTPConfig{Port: 587, UseTLS: true},
	}
}

// Load builds the configuration: .env file, then built-in defaults, then
// the yaml config file if present, then environment variables on top.
func Load(path string) *Config {
	godotenv.Load()

	cfg := Default()

	if path == "" {
		path = getEnv("FAREWATCH_CONFIG", "farewatch.yaml")
	}
	if data, err := os.ReadFile(path); err == nil {
		_ = yaml.Unmarshal(data, cfg)
	}

	if mode := os.Getenv("FAREWATCH_MODE"); mode != "" {
		cfg.WithMode(mode)
	}
	cfg.Currency = getEnv("CURRENCY", cfg.Currency)
	cfg.StatePath = getEnv("FAREWATCH_STATE", cfg.StatePath)
	if v, ok := getEnvAsFloat("PRICE_THRESHOLD"); ok {
		cfg.Threshold = &v
	}
	if raw := os.Getenv("NOTIFY_CHANNELS"); raw != "" {
		cfg.Channels = splitList(raw)
	}

	cfg.Amadeus.APIKey = getEnv("AMADEUS_API_KEY", cfg.Amadeus.APIKey)
	cfg.Amadeus.APISecret = getEnv("AMADEUS_API_SECRET", cfg.Amadeus.APISecret)
	cfg.Amadeus.Env = strings.ToLower(getEnv("AMADEUS_ENV", cfg.Amadeus.Env))

	cfg.SMTP.Host = getEnv("SMTP_HOST", cfg.SMTP.Host)
	cfg.SMTP.Port = getEnvAsInt("SMTP_PORT", cfg.SMTP.Port)
	cfg.SMTP.User = getEnv("SMTP_USER", cfg.SMTP.User)
	cfg.SMTP.Pass = getEnv("SMTP_PASS", cfg.SMTP.Pass)
	cfg.SMTP.From = getEnv("SMTP_FROM", cfg.SMTP.From)
	if raw := os.Getenv("SMTP_TO"); raw != "" {
		cfg.SMTP.To = splitList(raw)
	}
	cfg.SMTP.UseTLS = getEnvAsBool("SMTP_USE_TLS", cfg.SMTP.UseTLS)

	cfg.Telegram.BotToken = getEnv("TELEGRAM_BOT_TOKEN", cfg.Telegram.BotToken)
	cfg.Telegram.ChatID = getEnv("TELEGRAM_CHAT_ID", cfg.Telegram.ChatID)
	cfg.DiscordWebhookURL = getEnv("DISCORD_WEBHOOK_URL", cfg.DiscordWebhookURL)

	return cfg
}

// WithMode overrides the source mode, typically from a CLI flag.
func (c *Config) WithMode(mode string) *Config {
	switch strings.ToLower(mode) {
	case "mock":
		c.Mode = ModeMock
	case "live":
		c.Mode = ModeLive
	}
	return c
}

// Validate reports the startup-fatal conditions: no itineraries, or live
// mode without search credentials. Channel problems are never fatal.
func (c *Config) Validate() error {
	if len(c.Itineraries) == 0 {
		return fmt.Errorf("no itineraries configured")
	}
	for i, it := range c.Itineraries {
		if len(it.Legs) == 0 {
			return fmt.Errorf("itinerary %d has no legs", i+1)
		}
	}
	if c.Mode == ModeLive && (c.Amadeus.APIKey == "" || c.Amadeus.APISecret == "") {
		return fmt.Errorf("live mode requires AMADEUS_API_KEY and AMADEUS_API_SECRET")
	}
	return nil
}

// ChannelEnabled reports whether a notification channel is switched on.
func (c *Config) ChannelEnabled(name string) bool {
	for _, ch := range c.Channels {
		if strings.EqualFold(ch, name) {
			return true
		}
	}
	return false
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if v, err := strconv.ParseBool(strings.ToLower(os.Getenv(key))); err == nil {
		return v
	}
	return defaultValue
}

func getEnvAsFloat(key string) (float64, bool) {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
