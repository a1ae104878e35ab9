package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Baseline names accepted by ROLLUP_BASELINE.
const (
	BaselineDemo = "demo"
	BaselineNone = "none"
)

type Config struct {
	// Storage
	DataBackend  string
	SQLiteDBPath string

	// Engine
	FiscalYear       int
	RollupBaseline   string
	SeedDemo         bool
	SnapshotCacheTTL time.Duration

	// AMQP (optional; empty URL disables change events)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Google Sheets mirror
	GoogleSpreadsheetID string
	GoogleSheetName     string
	ExportSchedule      string

	LogLevel string
}

func Load() *Config {
	return &Config{
		DataBackend:  getEnv("DATA_BACKEND", "sqlite"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/findash.db"),

		FiscalYear:       getEnvInt("FISCAL_YEAR", 0),
		RollupBaseline:   strings.ToLower(getEnv("ROLLUP_BASELINE", BaselineDemo)),
		SeedDemo:         getEnvBool("SEED_DEMO", true),
		SnapshotCacheTTL: getEnvDuration("SNAPSHOT_CACHE_TTL", time.Minute),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "findash"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "findash_changes"),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:     getEnv("GOOGLE_SHEET_NAME", "Dashboard"),
		ExportSchedule:      getEnv("EXPORT_SCHEDULE", "@every 15m"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	validBackends := []string{"memory", "sqlite"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.DataBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	if c.FiscalYear != 0 && (c.FiscalYear < 1900 || c.FiscalYear > 2999) {
		errors = append(errors, fmt.Sprintf("invalid fiscal year %d: must be 0 (current year) or between 1900 and 2999", c.FiscalYear))
	}

	if c.RollupBaseline != BaselineDemo && c.RollupBaseline != BaselineNone {
		errors = append(errors, fmt.Sprintf("invalid rollup baseline '%s': must be '%s' or '%s'", c.RollupBaseline, BaselineDemo, BaselineNone))
	}

	if c.SnapshotCacheTTL < 0 {
		errors = append(errors, fmt.Sprintf("invalid snapshot cache TTL %v: must not be negative", c.SnapshotCacheTTL))
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.ExportSchedule != "" {
		if _, err := cron.ParseStandard(c.ExportSchedule); err != nil {
			errors = append(errors, fmt.Sprintf("invalid export schedule '%s': %v", c.ExportSchedule, err))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// AMQPEnabled reports whether change events should be published.
func (c *Config) AMQPEnabled() bool {
	return c.AMQPURL != ""
}

// SheetsEnabled reports whether the sheet mirror is configured.
func (c *Config) SheetsEnabled() bool {
	return c.GoogleSpreadsheetID != ""
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(strings.TrimSpace(value)); err == nil {
			return d
		}
	}
	return defaultValue
}
