package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		DataBackend: "memory",
		APIURL:      "http://localhost:8000/api",
		APITimeout:  15 * time.Second,
		CacheTTL:    5 * time.Minute,
		CacheSize:   64,
		LogLevel:    "info",
		LogFormat:   "text",
		RecentLimit: 5,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errorString string
	}{
		{
			name:    "valid memory backend config",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name: "valid api backend with credentials",
			mutate: func(c *Config) {
				c.DataBackend = "api"
				c.APIEmail = "demo@example.com"
				c.APIPassword = "secret"
			},
			wantErr: false,
		},
		{
			name:        "invalid data backend",
			mutate:      func(c *Config) { c.DataBackend = "sqlite" },
			wantErr:     true,
			errorString: "invalid data backend 'sqlite': must be one of [memory api]",
		},
		{
			name: "api backend missing URL",
			mutate: func(c *Config) {
				c.DataBackend = "api"
				c.APIURL = ""
			},
			wantErr:     true,
			errorString: "API URL cannot be empty when using api backend",
		},
		{
			name: "api backend bad scheme",
			mutate: func(c *Config) {
				c.DataBackend = "api"
				c.APIURL = "ftp://example.com"
			},
			wantErr:     true,
			errorString: "invalid API URL scheme 'ftp': must be 'http' or 'https'",
		},
		{
			name: "api backend unparsable URL",
			mutate: func(c *Config) {
				c.DataBackend = "api"
				c.APIURL = "://nope"
			},
			wantErr:     true,
			errorString: "invalid API URL",
		},
		{
			name: "api email without password",
			mutate: func(c *Config) {
				c.DataBackend = "api"
				c.APIEmail = "demo@example.com"
			},
			wantErr:     true,
			errorString: "must be set together",
		},
		{
			name: "api timeout too short",
			mutate: func(c *Config) {
				c.DataBackend = "api"
				c.APITimeout = 500 * time.Millisecond
			},
			wantErr:     true,
			errorString: "invalid API timeout 500ms: must be at least 1 second",
		},
		{
			name: "api timeout ignored for memory backend",
			mutate: func(c *Config) {
				c.APITimeout = 0
			},
			wantErr: false,
		},
		{
			name:        "negative cache TTL",
			mutate:      func(c *Config) { c.CacheTTL = -time.Second },
			wantErr:     true,
			errorString: "invalid cache TTL -1s: must not be negative",
		},
		{
			name:    "zero cache TTL disables cache",
			mutate:  func(c *Config) { c.CacheTTL = 0 },
			wantErr: false,
		},
		{
			name:        "cache TTL too long",
			mutate:      func(c *Config) { c.CacheTTL = 25 * time.Hour },
			wantErr:     true,
			errorString: "invalid cache TTL 25h0m0s: must be at most 24 hours",
		},
		{
			name:        "negative cache size",
			mutate:      func(c *Config) { c.CacheSize = -1 },
			wantErr:     true,
			errorString: "invalid cache size -1: must not be negative",
		},
		{
			name:        "invalid log level",
			mutate:      func(c *Config) { c.LogLevel = "verbose" },
			wantErr:     true,
			errorString: "invalid log level 'verbose'",
		},
		{
			name:    "log level is case insensitive",
			mutate:  func(c *Config) { c.LogLevel = "DEBUG" },
			wantErr: false,
		},
		{
			name:        "invalid log format",
			mutate:      func(c *Config) { c.LogFormat = "xml" },
			wantErr:     true,
			errorString: "invalid log format 'xml': must be 'text' or 'json'",
		},
		{
			name:        "recent limit too small",
			mutate:      func(c *Config) { c.RecentLimit = 0 },
			wantErr:     true,
			errorString: "invalid recent limit 0: must be at least 1",
		},
		{
			name:        "recent limit too large",
			mutate:      func(c *Config) { c.RecentLimit = 500 },
			wantErr:     true,
			errorString: "invalid recent limit 500: must be at most 100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Config.Validate() error = nil, wantErr %v", tt.wantErr)
					return
				}
				if tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("Config.Validate() error = %v, want error containing %v", err.Error(), tt.errorString)
				}
			} else if err != nil {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ValidateAggregatesErrors(t *testing.T) {
	cfg := validConfig()
	cfg.DataBackend = "nope"
	cfg.CacheSize = -1
	cfg.RecentLimit = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if got := strings.Count(err.Error(), "\n- "); got != 3 {
		t.Errorf("expected 3 aggregated messages, got %d: %v", got, err)
	}
}

func TestConfig_ValidateSeedDirectory(t *testing.T) {
	cfg := validConfig()
	cfg.SeedFile = t.TempDir()
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "is a directory") {
		t.Errorf("expected directory error, got %v", err)
	}

	// A missing seed file falls back to demo data, so it is not an error.
	cfg.SeedFile = filepath.Join(t.TempDir(), "missing.yaml")
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestConfig_ValidateExport(t *testing.T) {
	tmpDir := t.TempDir()
	credFile := filepath.Join(tmpDir, "sa.json")
	if err := os.WriteFile(credFile, []byte(`{"type":"service_account"}`), 0o600); err != nil {
		t.Fatalf("Failed to create credentials file: %v", err)
	}

	tests := []struct {
		name        string
		config      Config
		errorString string
	}{
		{
			name: "inline credentials",
			config: Config{
				GoogleSpreadsheetID:      "sheet-123",
				GoogleExportSheetName:    "Finboard",
				GoogleServiceAccountJSON: "{}",
			},
		},
		{
			name: "credentials file",
			config: Config{
				GoogleSpreadsheetID:      "sheet-123",
				GoogleExportSheetName:    "Finboard",
				GoogleServiceAccountFile: credFile,
			},
		},
		{
			name: "missing spreadsheet",
			config: Config{
				GoogleExportSheetName:    "Finboard",
				GoogleServiceAccountJSON: "{}",
			},
			errorString: "GOOGLE_SPREADSHEET_ID is required for export",
		},
		{
			name: "missing credentials",
			config: Config{
				GoogleSpreadsheetID:   "sheet-123",
				GoogleExportSheetName: "Finboard",
			},
			errorString: "either GOOGLE_SERVICE_ACCOUNT_JSON or GOOGLE_SERVICE_ACCOUNT_FILE",
		},
		{
			name: "credentials file does not exist",
			config: Config{
				GoogleSpreadsheetID:      "sheet-123",
				GoogleExportSheetName:    "Finboard",
				GoogleServiceAccountFile: "/non/existent/sa.json",
			},
			errorString: "Google service account file does not exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.ValidateExport()
			if tt.errorString == "" {
				if err != nil {
					t.Errorf("ValidateExport() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.errorString) {
				t.Errorf("ValidateExport() error = %v, want error containing %q", err, tt.errorString)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	for _, key := range []string{
		"FINBOARD_BACKEND", "FINBOARD_SEED_FILE", "FINBOARD_API_URL", "FINBOARD_API_TIMEOUT",
		"FINBOARD_CACHE_TTL", "FINBOARD_CACHE_SIZE", "FINBOARD_LOG_LEVEL", "FINBOARD_LOG_FORMAT", "FINBOARD_RECENT_LIMIT",
		"GOOGLE_EXPORT_SHEET_NAME", "GOOGLE_SERVICE_ACCOUNT_FILE", "GOOGLE_APPLICATION_CREDENTIALS",
	} {
		t.Setenv(key, "")
	}

	t.Run("default values", func(t *testing.T) {
		cfg := Load()

		if cfg.DataBackend != "memory" {
			t.Errorf("Load() DataBackend = %v, want memory", cfg.DataBackend)
		}
		if cfg.CacheTTL != 5*time.Minute {
			t.Errorf("Load() CacheTTL = %v, want 5m", cfg.CacheTTL)
		}
		if cfg.RecentLimit != 5 {
			t.Errorf("Load() RecentLimit = %v, want 5", cfg.RecentLimit)
		}
		if cfg.GoogleExportSheetName != "Finboard" {
			t.Errorf("Load() GoogleExportSheetName = %v, want Finboard", cfg.GoogleExportSheetName)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("default config should validate: %v", err)
		}
	})

	t.Run("environment variables", func(t *testing.T) {
		t.Setenv("FINBOARD_BACKEND", "api")
		t.Setenv("FINBOARD_API_URL", "https://finance.example.com/api")
		t.Setenv("FINBOARD_API_TIMEOUT", "30s")
		t.Setenv("FINBOARD_CACHE_TTL", "0s")
		t.Setenv("FINBOARD_CACHE_SIZE", "8")
		t.Setenv("FINBOARD_RECENT_LIMIT", "10")
		t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "/etc/sa.json")

		cfg := Load()

		if cfg.DataBackend != "api" {
			t.Errorf("Load() DataBackend = %v, want api", cfg.DataBackend)
		}
		if cfg.APIURL != "https://finance.example.com/api" {
			t.Errorf("Load() APIURL = %v", cfg.APIURL)
		}
		if cfg.APITimeout != 30*time.Second {
			t.Errorf("Load() APITimeout = %v, want 30s", cfg.APITimeout)
		}
		if cfg.CacheTTL != 0 {
			t.Errorf("Load() CacheTTL = %v, want 0", cfg.CacheTTL)
		}
		if cfg.CacheSize != 8 {
			t.Errorf("Load() CacheSize = %v, want 8", cfg.CacheSize)
		}
		if cfg.RecentLimit != 10 {
			t.Errorf("Load() RecentLimit = %v, want 10", cfg.RecentLimit)
		}
		if cfg.GoogleServiceAccountFile != "/etc/sa.json" {
			t.Errorf("Load() GoogleServiceAccountFile = %v, want /etc/sa.json", cfg.GoogleServiceAccountFile)
		}
	})

	t.Run("malformed numbers keep defaults", func(t *testing.T) {
		t.Setenv("FINBOARD_CACHE_SIZE", "lots")
		t.Setenv("FINBOARD_CACHE_TTL", "soon")

		cfg := Load()

		if cfg.CacheSize != 64 {
			t.Errorf("Load() CacheSize = %v, want 64", cfg.CacheSize)
		}
		if cfg.CacheTTL != 5*time.Minute {
			t.Errorf("Load() CacheTTL = %v, want 5m", cfg.CacheTTL)
		}
	})
}
