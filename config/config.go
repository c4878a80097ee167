package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrInvalidConfig is returned for environment values that cannot be used.
var ErrInvalidConfig = errors.New("config: invalid value")

const (
	FormatTable = "table"
	FormatYAML  = "yaml"

	// ChartDisabled as CHART_PATH skips the chart.
	ChartDisabled = "-"
)

// Config holds all environment variables
type Config struct {
	TelegramBotToken string
	TelegramChatID   int64
	CronExpression   string
	Ephemeris        string
	OutputFormat     string
	ChartPath        string
	LogLevel         string
	Environment      string

	// Zero ReportYear means the current month.
	ReportYear  int
	ReportMonth time.Month

	HasLocation bool
	Latitude    float64
	Longitude   float64
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first; variables already set take precedence.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		TelegramBotToken: getEnv("TG_BOT_TOKEN", ""),
		CronExpression:   getEnv("CRON_EXPRESSION", ""),
		Ephemeris:        strings.ToLower(getEnv("EPHEMERIS", "suncalc")),
		OutputFormat:     strings.ToLower(getEnv("OUTPUT_FORMAT", FormatTable)),
		ChartPath:        getEnv("CHART_PATH", ""),
		LogLevel:         strings.ToLower(getEnv("LOG_LEVEL", "info")),
		Environment:      strings.ToLower(getEnv("ENVIRONMENT", "development")),
	}

	switch cfg.Ephemeris {
	case "suncalc", "mean":
	default:
		return Config{}, fmt.Errorf("%w: EPHEMERIS=%q, want suncalc or mean", ErrInvalidConfig, cfg.Ephemeris)
	}

	switch cfg.OutputFormat {
	case FormatTable, FormatYAML:
	default:
		return Config{}, fmt.Errorf("%w: OUTPUT_FORMAT=%q, want %s or %s", ErrInvalidConfig, cfg.OutputFormat, FormatTable, FormatYAML)
	}

	if month := getEnv("REPORT_MONTH", ""); month != "" {
		t, err := time.Parse("2006-01", month)
		if err != nil {
			return Config{}, fmt.Errorf("%w: REPORT_MONTH=%q, want YYYY-MM", ErrInvalidConfig, month)
		}
		cfg.ReportYear, cfg.ReportMonth = t.Year(), t.Month()
	}

	if err := cfg.loadLocation(); err != nil {
		return Config{}, err
	}

	if chatID := getEnv("CHAT_ID", ""); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("%w: CHAT_ID=%q is not an integer", ErrInvalidConfig, chatID)
		}
		cfg.TelegramChatID = id
	}
	if cfg.TelegramBotToken != "" && cfg.TelegramChatID == 0 {
		return Config{}, fmt.Errorf("%w: TG_BOT_TOKEN is set but CHAT_ID is not", ErrInvalidConfig)
	}

	return cfg, nil
}

// TelegramEnabled reports whether reports should also be sent to Telegram.
func (c Config) TelegramEnabled() bool {
	return c.TelegramBotToken != "" && c.TelegramChatID != 0
}

// ChartFile returns where the chart for year/month is written, or "" when
// the chart is disabled.
func (c Config) ChartFile(year int, month time.Month) string {
	switch c.ChartPath {
	case ChartDisabled:
		return ""
	case "":
		return fmt.Sprintf("moon-%04d-%02d.png", year, int(month))
	}
	return c.ChartPath
}

// loadLocation reads LAT and LON. Both must be set or neither.
func (c *Config) loadLocation() error {
	lat, lon := getEnv("LAT", ""), getEnv("LON", "")
	if lat == "" && lon == "" {
		return nil
	}
	if lat == "" || lon == "" {
		return fmt.Errorf("%w: LAT and LON must be set together", ErrInvalidConfig)
	}

	var err error
	if c.Latitude, err = strToFloat(lat); err != nil || c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("%w: LAT=%q, want -90..90", ErrInvalidConfig, lat)
	}
	if c.Longitude, err = strToFloat(lon); err != nil || c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("%w: LON=%q, want -180..180", ErrInvalidConfig, lon)
	}
	c.HasLocation = true
	return nil
}

// getEnv reads an environment variable or returns a default value when it is unset or empty
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

// strToFloat converts a string to float64
func strToFloat(input string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(input), 64)
}
