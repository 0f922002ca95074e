package backend

import (
	"fmt"

	"finboard/internal/config"
)

// FromAppConfig converts the application config to backend config
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	backendType := Type(appConfig.DataBackend)
	if !backendType.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.DataBackend)
	}

	return Config{
		Type: backendType,

		SeedFile: appConfig.SeedFile,

		APIURL:      appConfig.APIURL,
		APIToken:    appConfig.APIToken,
		APIEmail:    appConfig.APIEmail,
		APIPassword: appConfig.APIPassword,
		APITimeout:  appConfig.APITimeout,

		CacheTTL:  appConfig.CacheTTL,
		CacheSize: appConfig.CacheSize,
	}, nil
}

// Validate validates the backend configuration
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s", c.Type)
	}

	switch c.Type {
	case APIBackend:
		if c.APIURL == "" {
			return fmt.Errorf("API URL is required for api backend")
		}
		if (c.APIEmail == "") != (c.APIPassword == "") {
			return fmt.Errorf("API email and password must be provided together")
		}

	case MemoryBackend:
		// SeedFile is optional; a missing file means demo data
	}

	if c.CacheTTL < 0 {
		return fmt.Errorf("cache TTL must not be negative: %v", c.CacheTTL)
	}

	return nil
}

// GetBackendTypes returns all valid backend types
func GetBackendTypes() []Type {
	return []Type{MemoryBackend, APIBackend}
}

// GetBackendTypeStrings returns all valid backend type strings
func GetBackendTypeStrings() []string {
	types := GetBackendTypes()
	strings := make([]string, len(types))
	for i, t := range types {
		strings[i] = t.String()
	}
	return strings
}
