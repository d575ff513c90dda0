package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds application configuration
type Config struct {
	APIURL          string        `toml:"api_url"`
	APIToken        string        `toml:"api_token"`
	UserID          string        `toml:"user_id"`
	LogLevel        string        `toml:"log_level"`
	RequestTimeout  time.Duration `toml:"-"`
	RefreshSchedule string        `toml:"refresh_schedule"`
	SMTPHost        string        `toml:"smtp_host"`
	SMTPPort        string        `toml:"smtp_port"`
	SMTPUsername    string        `toml:"smtp_username"`
	SMTPPassword    string        `toml:"smtp_password"`
	SenderEmail     string        `toml:"sender_email"`

	// Timeout is the TOML spelling of RequestTimeout, e.g. "15s"
	Timeout string `toml:"request_timeout"`
}

// NewConfig loads configuration from environment variables, layered over the
// TOML file named by MFDASH_CONFIG when it is set
func NewConfig() (*Config, error) {
	return Load(os.Getenv("MFDASH_CONFIG"))
}

// Load reads the TOML file at path (skipped when path is empty) and applies
// environment overrides on top of it
func Load(path string) (*Config, error) {
	cfg := defaults()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg.APIURL = getEnv("API_URL", cfg.APIURL)
	cfg.APIToken = getEnv("API_TOKEN", cfg.APIToken)
	cfg.UserID = getEnv("USER_ID", cfg.UserID)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.RefreshSchedule = getEnv("REFRESH_SCHEDULE", cfg.RefreshSchedule)
	cfg.SMTPHost = getEnv("SMTP_HOST", cfg.SMTPHost)
	cfg.SMTPPort = getEnv("SMTP_PORT", cfg.SMTPPort)
	cfg.SMTPUsername = getEnv("SMTP_USERNAME", cfg.SMTPUsername)
	cfg.SMTPPassword = getEnv("SMTP_PASSWORD", cfg.SMTPPassword)
	cfg.SenderEmail = getEnv("SENDER_EMAIL", cfg.SenderEmail)
	cfg.Timeout = getEnv("REQUEST_TIMEOUT", cfg.Timeout)

	timeout, err := time.ParseDuration(cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid REQUEST_TIMEOUT %q: %w", cfg.Timeout, err)
	}
	if timeout < 0 {
		return nil, fmt.Errorf("REQUEST_TIMEOUT must not be negative")
	}
	cfg.RequestTimeout = timeout

	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	if cfg.APIURL == "" {
		return nil, fmt.Errorf("API_URL is required")
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		APIURL:          "http://localhost:5000/api",
		LogLevel:        "INFO",
		Timeout:         "30s",
		RefreshSchedule: "@every 30s",
		SMTPPort:        "587",
	}
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
