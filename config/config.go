// Package config loads dashboard settings from the environment.
// File: config/config.go
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const devSessionSecret = "civil-quest-dev-session-secret"

// minCollectionTTL keeps the janitor interval (ttl/2) usable.
const minCollectionTTL = time.Second

// Config holds every runtime setting of the dashboard.
type Config struct {
	Env            string
	ListenAddr     string
	ApplicationURL string
	APIBaseURL     string
	APITimeout     time.Duration
	GeocodeURL     string
	SessionSecret  string
	SessionSecure  bool
	LogDir         string
	DefaultLocale  string
	MetricsEnabled bool
	MetricsNS      string
	TracingEnabled bool
	MobileDeepLink string
	CollectionTTL  time.Duration
}

// Load reads an optional .env file, then the process environment, and validates the result.
func Load() (*Config, error) {
	// .env is optional when variables come from the environment (Docker, CI, ...).
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function. Tests pass a map-backed getenv.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Env:            valueOr(getenv("APP_ENV"), "development"),
		ListenAddr:     valueOr(getenv("LISTEN_ADDR"), ":8080"),
		ApplicationURL: valueOr(getenv("APPLICATION_URL"), "http://localhost:8080"),
		APIBaseURL:     strings.TrimRight(strings.TrimSpace(getenv("API_BASE_URL")), "/"),
		GeocodeURL:     strings.TrimRight(valueOr(getenv("GEOCODE_URL"), "https://nominatim.openstreetmap.org"), "/"),
		SessionSecret:  getenv("SESSION_SECRET"),
		LogDir:         valueOr(getenv("LOG_DIR"), "./logs"),
		DefaultLocale:  valueOr(getenv("DEFAULT_LOCALE"), "en"),
		MetricsNS:      valueOr(getenv("METRICS_NAMESPACE"), "CivilQuestAdmin"),
		MobileDeepLink: strings.TrimRight(valueOr(getenv("MOBILE_DEEP_LINK"), "civilquest://events"), "/"),
	}

	var err error
	if cfg.APITimeout, err = durationOr(getenv("API_TIMEOUT"), 15*time.Second); err != nil {
		return nil, fmt.Errorf("config: API_TIMEOUT invalid: %w", err)
	}
	if cfg.CollectionTTL, err = durationOr(getenv("COLLECTION_TTL"), 30*time.Minute); err != nil {
		return nil, fmt.Errorf("config: COLLECTION_TTL invalid: %w", err)
	}
	if cfg.SessionSecure, err = boolOr(getenv("SESSION_SECURE"), false); err != nil {
		return nil, fmt.Errorf("config: SESSION_SECURE invalid: %w", err)
	}
	if cfg.MetricsEnabled, err = boolOr(getenv("METRICS_ENABLED"), false); err != nil {
		return nil, fmt.Errorf("config: METRICS_ENABLED invalid: %w", err)
	}
	if cfg.TracingEnabled, err = boolOr(getenv("TRACING_ENABLED"), false); err != nil {
		return nil, fmt.Errorf("config: TRACING_ENABLED invalid: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsProduction reports whether the dashboard runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// validate applies the rules on the loaded configuration.
func (c *Config) validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("config: API_BASE_URL is required")
	}
	if err := requireHTTPURL("API_BASE_URL", c.APIBaseURL); err != nil {
		return err
	}
	if err := requireHTTPURL("GEOCODE_URL", c.GeocodeURL); err != nil {
		return err
	}

	if strings.TrimSpace(c.SessionSecret) == "" {
		if c.IsProduction() {
			return fmt.Errorf("config: SESSION_SECRET is required in production")
		}
		c.SessionSecret = devSessionSecret
	}
	if len(c.SessionSecret) < 16 {
		return fmt.Errorf("config: SESSION_SECRET must be at least 16 bytes")
	}

	if c.APITimeout <= 0 {
		return fmt.Errorf("config: API_TIMEOUT must be positive")
	}
	if c.CollectionTTL < minCollectionTTL {
		return fmt.Errorf("config: COLLECTION_TTL must be at least %v", minCollectionTTL)
	}
	return nil
}

func requireHTTPURL(name, raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("config: %s invalid (%q): %w", name, raw, err)
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("config: %s invalid (%q): scheme or host missing", name, raw)
	}
	return nil
}

func valueOr(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return strings.TrimSpace(v)
}

func durationOr(v string, def time.Duration) (time.Duration, error) {
	if strings.TrimSpace(v) == "" {
		return def, nil
	}
	return time.ParseDuration(strings.TrimSpace(v))
}

func boolOr(v string, def bool) (bool, error) {
	if strings.TrimSpace(v) == "" {
		return def, nil
	}
	return strconv.ParseBool(strings.TrimSpace(v))
}
