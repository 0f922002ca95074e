package backend

import (
	"context"
	"time"

	"finboard/internal/datasource"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// Result contains the data source and an optional cleanup function
type Result struct {
	Source  datasource.Source
	Cleanup CleanupFunc
	// Cached is true when Source is wrapped in the query cache.
	Cached bool
}

// Close runs Cleanup if there is one.
func (r *Result) Close() error {
	if r == nil || r.Cleanup == nil {
		return nil
	}
	return r.Cleanup()
}

// Factory creates data sources based on configuration
type Factory interface {
	// CreateBackend creates a data source based on the provided config
	CreateBackend(ctx context.Context, config Config) (*Result, error)
}

// Config holds configuration for backend creation
type Config struct {
	// Backend type
	Type Type

	// Memory specific. An empty SeedFile means the built-in demo data.
	SeedFile string

	// API specific
	APIURL      string
	APIToken    string
	APIEmail    string
	APIPassword string
	APITimeout  time.Duration

	// Query cache; a zero TTL disables it
	CacheTTL  time.Duration
	CacheSize int
}

// Type represents the type of backend
type Type string

const (
	MemoryBackend Type = "memory"
	APIBackend    Type = "api"
)

// String implements fmt.Stringer
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid
func (t Type) IsValid() bool {
	switch t {
	case MemoryBackend, APIBackend:
		return true
	default:
		return false
	}
}
