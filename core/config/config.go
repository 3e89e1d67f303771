package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	OTel   OTelConfig
	GitHub GitHubConfig
	Traq   TraqConfig
	Env    string
	Port   string
}

type OTelConfig struct {
	Endpoint       string
	Headers        string
	ServiceName    string
	ServiceVersion string
}

// GitHubConfig holds the inbound webhook verification secret. GitHub signs
// each delivery with HMAC-SHA256 over the raw body using this secret.
type GitHubConfig struct {
	WebhookSecret string
}

// TraqConfig holds the outbound leg: the traQ origin, the webhook ID that
// parameterizes the endpoint URL, and the secret used to sign relayed
// messages.
type TraqConfig struct {
	Origin        string
	WebhookID     string
	WebhookSecret string
}

// Load loads configuration from environment variables.
// In development it also reads a local .env file if present.
func Load() (Config, error) {
	if getEnv("RELAY_ENV", "development") == "development" {
		_ = godotenv.Load(".env")
	}

	cfg := Config{
		Env:  getEnv("RELAY_ENV", "development"),
		Port: getEnv("PORT", "8080"),
		OTel: OTelConfig{
			Endpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Headers:        getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""),
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "github-relay"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "dev"),
		},
		GitHub: GitHubConfig{
			WebhookSecret: getEnv("GITHUB_WEBHOOK_SECRET", ""),
		},
		Traq: TraqConfig{
			Origin:        getEnv("TRAQ_ORIGIN", "https://q.trap.jp"),
			WebhookID:     getEnv("TRAQ_WEBHOOK_ID", ""),
			WebhookSecret: getEnv("TRAQ_WEBHOOK_SECRET", ""),
		},
	}

	if cfg.GitHub.WebhookSecret == "" {
		return Config{}, fmt.Errorf("GITHUB_WEBHOOK_SECRET is required")
	}
	if cfg.Traq.WebhookID == "" || cfg.Traq.WebhookSecret == "" {
		return Config{}, fmt.Errorf("TRAQ_WEBHOOK_ID and TRAQ_WEBHOOK_SECRET are required")
	}

	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c OTelConfig) Enabled() bool {
	return c.Endpoint != ""
}

// WebhookURL returns the full traQ endpoint for this webhook ID.
func (c TraqConfig) WebhookURL() string {
	return fmt.Sprintf("%s/api/v3/webhooks/%s", c.Origin, c.WebhookID)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
