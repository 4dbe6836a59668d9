package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultListenAddr    = ":3000"
	defaultDatabaseDSN   = "userboard.db"
	defaultAccessTTL     = "15m"
	defaultRefreshTTL    = "168h"
	defaultCookieSecure  = "false"
	defaultAccessSecret  = "change-me-access-secret"
	defaultRefreshSecret = "change-me-refresh-secret"
)

type Config struct {
	AppEnv        string
	ListenAddr    string
	DatabaseDSN   string
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	CookieSecure  bool
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.ListenAddr = strings.TrimSpace(getEnv("LISTEN_ADDR", defaultListenAddr))
	cfg.DatabaseDSN = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseDSN))
	cfg.AccessSecret = strings.TrimSpace(getEnv("ACCESS_TOKEN_SECRET", defaultAccessSecret))
	cfg.RefreshSecret = strings.TrimSpace(getEnv("REFRESH_TOKEN_SECRET", defaultRefreshSecret))

	var err error
	cfg.AccessTTL, err = parseDurationEnv("ACCESS_TOKEN_TTL", defaultAccessTTL)
	if err != nil {
		return nil, err
	}

	cfg.RefreshTTL, err = parseDurationEnv("REFRESH_TOKEN_TTL", defaultRefreshTTL)
	if err != nil {
		return nil, err
	}

	cfg.CookieSecure = parseBoolEnv("COOKIE_SECURE", defaultCookieSecure)

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.AccessTTL <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_TTL must be > 0")
	}
	if cfg.RefreshTTL <= 0 {
		return fmt.Errorf("REFRESH_TOKEN_TTL must be > 0")
	}
	if cfg.AccessSecret == cfg.RefreshSecret {
		return fmt.Errorf("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must differ")
	}
	if cfg.AppEnv == "prod" {
		if cfg.AccessSecret == defaultAccessSecret || cfg.RefreshSecret == defaultRefreshSecret {
			return fmt.Errorf("default token secrets are not allowed in prod")
		}
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDurationEnv(key, fallback string) (time.Duration, error) {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", key, raw, err)
	}
	return d, nil
}

func parseBoolEnv(key, fallback string) bool {
	v := strings.ToLower(strings.TrimSpace(getEnv(key, fallback)))
	return v == "true" || v == "1" || v == "yes"
}
