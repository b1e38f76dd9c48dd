package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/meliview/meli_api/pkg/meli"
)

// Config holds all application configuration loaded from environment
// variables. It is the single source of truth for runtime parameters.
type Config struct {
	Port       string
	Env        string
	MaxHistory int

	Meli MeliConfig
}

// MeliConfig contains Mercado Livre API credentials and connection settings.
// Every credential is independently optional; only the base URL is required.
type MeliConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	AccessToken  string
	RefreshToken string
	Timeout      time.Duration
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it will be loaded first. It returns a populated
// Config or an error with a human-friendly message.
func Load() (*Config, error) {
	// Load .env if present; ignore error if file is missing so that production
	// environments relying solely on real environment variables keep working.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("ENV", "development")
	cfg.MaxHistory = getEnvInt("MAX_HISTORY", 50)

	// Mercado Livre
	cfg.Meli = MeliConfig{
		BaseURL:      getEnv("MELI_BASE_URL", meli.DefaultBaseURL),
		ClientID:     getEnv("MELI_CLIENT_ID", ""),
		ClientSecret: getEnv("MELI_CLIENT_SECRET", ""),
		AccessToken:  getEnv("MELI_ACCESS_TOKEN", ""),
		RefreshToken: getEnv("MELI_REFRESH_TOKEN", ""),
	}

	var err error
	if cfg.Meli.Timeout, err = parseDurationEnv("MELI_HTTP_TIMEOUT", "10s"); err != nil {
		return nil, fmt.Errorf("invalid MELI_HTTP_TIMEOUT: %w", err)
	}

	if cfg.Meli.BaseURL == "" {
		return nil, errors.New("MELI_BASE_URL must not be empty")
	}
	if cfg.MaxHistory <= 0 {
		return nil, errors.New("MAX_HISTORY must be a positive integer")
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the value of an environment variable as an integer or a default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// parseDurationEnv reads an environment variable and parses it as time.Duration.
// If the variable is empty, it falls back to the provided default value.
func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be > 0")
	}
	return d, nil
}
