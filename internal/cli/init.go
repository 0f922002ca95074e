// Package cli provides common CLI initialization utilities shared by the
// finboard commands: logging, .env loading, config validation and shutdown.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"finboard/internal/config"
	"finboard/internal/log"
)

// SetupLogger builds the application logger from a level and format and sets
// it as the slog default. Logs go to w, stderr when nil.
func SetupLogger(level, format string, w io.Writer) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := log.DefaultConfig()
	cfg.Level = lvl
	if format != "" {
		cfg.Format = format
	}
	if w != nil {
		cfg.Writer = w
	}
	logger := log.New(cfg)
	log.SetDefault(logger)
	return logger, nil
}

// LoadEnvFile loads .env files for local development. Missing files are
// ignored, malformed ones are reported.
func LoadEnvFile(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ValidateConfig validates cfg and logs the failure.
func ValidateConfig(logger *log.Logger, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed",
			log.NewFields().WithError(err).WithErrorType(log.ErrorTypeConfiguration).ToSlice()...)
		return err
	}
	return nil
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM. Call the
// returned cancel func to release the signal handler.
func SignalContext(parent context.Context, logger *log.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

// GracefulShutdown runs the cleanup functions in order, giving up after
// timeout. Every cleanup error is returned.
func GracefulShutdown(logger *log.Logger, timeout time.Duration, cleanups ...func() error) error {
	done := make(chan error, 1)
	go func() {
		var errs []error
		for _, c := range cleanups {
			if c == nil {
				continue
			}
			if err := c(); err != nil {
				errs = append(errs, err)
			}
		}
		done <- errors.Join(errs...)
	}()

	select {
	case err := <-done:
		if err != nil {
			logger.Warn("Shutdown finished with errors", log.NewFields().WithOperation(log.OpShutdown).WithError(err).ToSlice()...)
			return err
		}
		logger.Debug("Shutdown complete", log.FieldOperation, log.OpShutdown)
		return nil
	case <-time.After(timeout):
		logger.Warn("Shutdown timeout reached", log.FieldOperation, log.OpShutdown)
		return fmt.Errorf("shutdown timed out after %v", timeout)
	}
}
