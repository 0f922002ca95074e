package backend

import (
	"context"
	"fmt"

	"finboard/internal/cache"
	"finboard/internal/datasource/api"
	"finboard/internal/datasource/cached"
	"finboard/internal/datasource/memory"
	"finboard/internal/log"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
	caches *cache.Manager
}

// NewFactory creates a new backend factory. Query caches it creates are
// registered with caches so they get swept; caches may be nil.
func NewFactory(logger *log.Logger, caches *cache.Manager) *DefaultFactory {
	if logger == nil {
		logger = log.Discard()
	}
	return &DefaultFactory{
		logger: logger.WithComponent(log.ComponentBackend),
		caches: caches,
	}
}

var _ Factory = (*DefaultFactory)(nil)

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var (
		res *Result
		err error
	)
	switch config.Type {
	case MemoryBackend:
		res, err = f.createMemoryBackend(config)
	case APIBackend:
		res, err = f.createAPIBackend(ctx, config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
	if err != nil {
		return nil, err
	}

	if config.CacheTTL > 0 {
		src := cached.New(res.Source, cached.Options{
			TTL:     config.CacheTTL,
			MaxSize: config.CacheSize,
			Logger:  f.logger,
		})
		if f.caches != nil {
			f.caches.Register(src.Cache())
		}
		res.Source = src
		res.Cached = true
		f.logger.Debug("Query cache enabled", "ttl", config.CacheTTL.String(), "max_size", config.CacheSize)
	}

	return res, nil
}

func (f *DefaultFactory) createMemoryBackend(config Config) (*Result, error) {
	var (
		store *memory.Store
		err   error
	)
	if config.SeedFile == "" {
		store = memory.NewDemo()
	} else {
		store, err = memory.NewFromFile(config.SeedFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load seed file: %w", err)
		}
	}

	f.logger.Info("Initialized memory backend", log.FieldBackend, MemoryBackend.String(), "seed_file", config.SeedFile)

	return &Result{Source: store}, nil
}

func (f *DefaultFactory) createAPIBackend(ctx context.Context, config Config) (*Result, error) {
	session, err := api.NewSession(api.Config{
		BaseURL: config.APIURL,
		Token:   config.APIToken,
		Timeout: config.APITimeout,
		Logger:  f.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize API session: %w", err)
	}

	if config.APIEmail != "" {
		if err := session.Login(ctx, config.APIEmail, config.APIPassword); err != nil {
			return nil, fmt.Errorf("failed to authenticate: %w", err)
		}
	}

	f.logger.Info("Initialized API backend",
		log.FieldBackend, APIBackend.String(),
		log.FieldURL, config.APIURL,
		"authenticated", session.Authenticated())

	return &Result{
		Source: api.NewClient(session),
		Cleanup: func() error {
			session.Logout()
			return nil
		},
	}, nil
}
