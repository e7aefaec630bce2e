package config

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LogConfig controls the structured logger.
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // text, json
}

// AppConfig configures the proxy gateway process.
type AppConfig struct {
	// OpenWeatherAPIKey is the upstream credential. It is read once and only
	// ever handed to the upstream client.
	OpenWeatherAPIKey string
	UpstreamBaseURL   string

	// HTTPTimeout bounds outbound calls. Zero leaves transport defaults.
	HTTPTimeout time.Duration

	Port string
	Log  LogConfig
}

// DashboardConfig configures the terminal dashboard.
type DashboardConfig struct {
	GatewayURL string

	// Geocoding stands in for device geolocation.
	GeocoderAPIKey string
	HomeAddress    string

	// Refresh re-runs the last action on this interval. Zero disables it.
	Refresh time.Duration

	Log LogConfig
}

// Load reads gateway configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	loadDotEnv()
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	if cfg.OpenWeatherAPIKey == "" {
		cfg.OpenWeatherAPIKey = os.Getenv("API_KEY")
	}
	cfg.UpstreamBaseURL = getenvDefault("UPSTREAM_BASE_URL", "https://api.openweathermap.org/data/2.5")

	timeout, err := time.ParseDuration(getenvDefault("HTTP_TIMEOUT", "0s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	if timeout < 0 {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: must not be negative")
	}
	cfg.HTTPTimeout = timeout

	cfg.Port = getenvDefault("PORT", "3000")
	cfg.Log = loadLogConfig()

	return cfg, nil
}

// LoadDashboard reads dashboard configuration from environment.
func LoadDashboard() (*DashboardConfig, error) {
	loadDotEnv()
	cfg := &DashboardConfig{}

	cfg.GatewayURL = strings.TrimRight(getenvDefault("GATEWAY_URL", "http://localhost:3000"), "/")
	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")
	cfg.HomeAddress = os.Getenv("DASHBOARD_HOME_ADDRESS")

	refresh, err := time.ParseDuration(getenvDefault("DASHBOARD_REFRESH", "0s"))
	if err != nil {
		return nil, fmt.Errorf("invalid DASHBOARD_REFRESH: %w", err)
	}
	cfg.Refresh = refresh
	cfg.Log = loadLogConfig()

	return cfg, nil
}

// NewLogger creates a slog.Logger writing to w.
func (c LogConfig) NewLogger(w io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(c.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(c.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

func loadDotEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
}

func loadLogConfig() LogConfig {
	return LogConfig{
		Level:  getenvDefault("LOG_LEVEL", "info"),
		Format: getenvDefault("LOG_FORMAT", "text"),
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
