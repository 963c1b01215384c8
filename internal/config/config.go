package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	FeedURL             string
	BalancesURL         string
	DatabaseURL         string
	FeedRetryMax        int
	FeedRetryBaseDelay  time.Duration
	FeedRefreshInterval time.Duration
	SnapshotInterval    time.Duration
	HTTPPort            string
	AdminAPIKey         string
	SheetsSpreadsheetID string
	GoogleCredsJSON     string
	ExportXLSXPath      string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		FeedURL:             envOrDefault("FEED_URL", "https://feeds.tokenfolio.io/prices.json"),
		BalancesURL:         envOrDefaultWarn("BALANCES_URL", ""),
		DatabaseURL:         envOrDefaultWarn("DATABASE_URL", ""),
		FeedRetryMax:        envOrDefaultInt("FEED_RETRY_MAX", 5),
		FeedRetryBaseDelay:  envOrDefaultDuration("FEED_RETRY_BASE_DELAY", 2*time.Second),
		FeedRefreshInterval: envOrDefaultDuration("FEED_REFRESH_INTERVAL", 1*time.Minute),
		SnapshotInterval:    envOrDefaultDuration("SNAPSHOT_INTERVAL", 24*time.Hour),
		HTTPPort:            envOrDefault("HTTP_PORT", "8080"),
		AdminAPIKey:         envOrDefault("ADMIN_API_KEY", ""),
		SheetsSpreadsheetID: envOrDefault("SHEETS_SPREADSHEET_ID", ""),
		GoogleCredsJSON:     envOrDefault("GOOGLE_CREDENTIALS_JSON", ""),
		ExportXLSXPath:      envOrDefault("EXPORT_XLSX_PATH", "portfolio.xlsx"),
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envOrDefaultWarn(key, defaultVal string) string {
	v := envOrDefault(key, defaultVal)
	if v == "" {
		slog.Warn("required env var not set", "key", key)
	}
	return v
}

func envOrDefaultInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			slog.Warn("invalid integer env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return n
	}
	return defaultVal
}

func envOrDefaultDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return d
	}
	return defaultVal
}
