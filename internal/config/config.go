package config

import (
	"fmt"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Backends understood by the backend factory.
var validBackends = []string{"memory", "api"}

var validLogLevels = []string{"debug", "info", "warn", "warning", "error"}

type Config struct {
	// Backend selection
	DataBackend string
	SeedFile    string

	// Remote API
	APIURL      string
	APIToken    string
	APIEmail    string
	APIPassword string
	APITimeout  time.Duration

	// Query cache
	CacheTTL  time.Duration
	CacheSize int

	// Logging
	LogLevel  string
	LogFormat string

	// Dashboard
	RecentLimit int

	// Google Sheets export
	GoogleSpreadsheetID      string
	GoogleExportSheetName    string
	GoogleServiceAccountJSON string
	GoogleServiceAccountFile string
}

func Load() *Config {
	cfg := &Config{
		DataBackend: getEnv("FINBOARD_BACKEND", "memory"),
		SeedFile:    getEnv("FINBOARD_SEED_FILE", ""),

		APIURL:      getEnv("FINBOARD_API_URL", "http://localhost:8000/api"),
		APIToken:    getEnv("FINBOARD_API_TOKEN", ""),
		APIEmail:    getEnv("FINBOARD_API_EMAIL", ""),
		APIPassword: getEnv("FINBOARD_API_PASSWORD", ""),
		APITimeout:  getEnvDuration("FINBOARD_API_TIMEOUT", 15*time.Second),

		CacheTTL:  getEnvDuration("FINBOARD_CACHE_TTL", 5*time.Minute),
		CacheSize: getEnvInt("FINBOARD_CACHE_SIZE", 64),

		LogLevel:  getEnv("FINBOARD_LOG_LEVEL", "info"),
		LogFormat: getEnv("FINBOARD_LOG_FORMAT", "text"),

		RecentLimit: getEnvInt("FINBOARD_RECENT_LIMIT", 5),

		GoogleSpreadsheetID:      getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleExportSheetName:    getEnv("GOOGLE_EXPORT_SHEET_NAME", "Finboard"),
		GoogleServiceAccountJSON: getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", ""),
		GoogleServiceAccountFile: getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if !slices.Contains(validBackends, c.DataBackend) {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.DataBackend == "memory" && c.SeedFile != "" {
		if info, err := os.Stat(c.SeedFile); err == nil && info.IsDir() {
			errors = append(errors, fmt.Sprintf("seed file '%s' is a directory", c.SeedFile))
		}
	}

	if c.DataBackend == "api" {
		if c.APIURL == "" {
			errors = append(errors, "API URL cannot be empty when using api backend")
		} else if u, err := url.Parse(c.APIURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid API URL '%s': %v", c.APIURL, err))
		} else if u.Scheme != "http" && u.Scheme != "https" {
			errors = append(errors, fmt.Sprintf("invalid API URL scheme '%s': must be 'http' or 'https'", u.Scheme))
		}

		// Credentials come as a pair
		if (c.APIEmail == "") != (c.APIPassword == "") {
			errors = append(errors, "FINBOARD_API_EMAIL and FINBOARD_API_PASSWORD must be set together")
		}

		if c.APITimeout < time.Second {
			errors = append(errors, fmt.Sprintf("invalid API timeout %v: must be at least 1 second", c.APITimeout))
		} else if c.APITimeout > 5*time.Minute {
			errors = append(errors, fmt.Sprintf("invalid API timeout %v: must be at most 5 minutes", c.APITimeout))
		}
	}

	if c.CacheTTL < 0 {
		errors = append(errors, fmt.Sprintf("invalid cache TTL %v: must not be negative", c.CacheTTL))
	} else if c.CacheTTL > 24*time.Hour {
		errors = append(errors, fmt.Sprintf("invalid cache TTL %v: must be at most 24 hours", c.CacheTTL))
	}
	if c.CacheSize < 0 {
		errors = append(errors, fmt.Sprintf("invalid cache size %d: must not be negative", c.CacheSize))
	}

	if !slices.Contains(validLogLevels, strings.ToLower(c.LogLevel)) {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of %v", c.LogLevel, validLogLevels[:4]))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be 'text' or 'json'", c.LogFormat))
	}

	if c.RecentLimit < 1 {
		errors = append(errors, fmt.Sprintf("invalid recent limit %d: must be at least 1", c.RecentLimit))
	} else if c.RecentLimit > 100 {
		errors = append(errors, fmt.Sprintf("invalid recent limit %d: must be at most 100", c.RecentLimit))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// ValidateExport checks the settings the Sheets exporter needs. It is kept
// apart from Validate because export is optional.
func (c *Config) ValidateExport() error {
	var errors []string

	if c.GoogleSpreadsheetID == "" {
		errors = append(errors, "GOOGLE_SPREADSHEET_ID is required for export")
	}
	if c.GoogleExportSheetName == "" {
		errors = append(errors, "GOOGLE_EXPORT_SHEET_NAME cannot be empty")
	}

	hasJSON := c.GoogleServiceAccountJSON != ""
	hasFile := c.GoogleServiceAccountFile != ""
	if !hasJSON && !hasFile {
		errors = append(errors, "either GOOGLE_SERVICE_ACCOUNT_JSON or GOOGLE_SERVICE_ACCOUNT_FILE must be provided for export")
	}
	if !hasJSON && hasFile {
		if _, err := os.Stat(c.GoogleServiceAccountFile); os.IsNotExist(err) {
			errors = append(errors, fmt.Sprintf("Google service account file does not exist: %s", c.GoogleServiceAccountFile))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("export configuration invalid:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
