package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"finboard/internal/backend"
	"finboard/internal/cache"
	"finboard/internal/cli"
	"finboard/internal/config"
	"finboard/internal/datasource"
	"finboard/internal/finance"
	"finboard/internal/log"
	"finboard/internal/services"
)

const shutdownTimeout = 5 * time.Second

// app carries what the subcommands share. The backend is opened lazily so
// commands that need no data never touch it.
type app struct {
	cfg    *config.Config
	logger *log.Logger
	caches *cache.Manager
	result *backend.Result
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "finboard",
		Short:         "Personal finance dashboard",
		Long:          `finboard summarizes accounts, assets, debts and transactions, ranks insights and estimates debt payoff.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return a.close()
		},
	}

	cmd.PersistentFlags().String("backend", "", "data backend (memory, api); overrides FINBOARD_BACKEND")
	cmd.PersistentFlags().String("seed", "", "YAML seed file for the memory backend; overrides FINBOARD_SEED_FILE")
	cmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error); overrides FINBOARD_LOG_LEVEL")

	cmd.AddCommand(summaryCmd(a))
	cmd.AddCommand(payoffCmd(a))
	cmd.AddCommand(insightsCmd(a))
	cmd.AddCommand(transactionsCmd(a))
	cmd.AddCommand(askCmd(a))
	cmd.AddCommand(exportCmd(a))

	return cmd
}

func (a *app) init(cmd *cobra.Command) error {
	cfg := config.Load()
	flags := cmd.Flags()
	if v, _ := flags.GetString("backend"); v != "" {
		cfg.DataBackend = v
	}
	if v, _ := flags.GetString("seed"); v != "" {
		cfg.SeedFile = v
	}
	if v, _ := flags.GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}

	logger, err := cli.SetupLogger(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if err := cli.ValidateConfig(logger, cfg); err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	a.caches = cache.NewManager(logger)
	a.caches.StartCleanup(cfg.CacheTTL)
	return nil
}

// source opens the configured backend on first use.
func (a *app) source(ctx context.Context) (datasource.Source, error) {
	if a.result != nil {
		return a.result.Source, nil
	}
	bcfg, err := backend.FromAppConfig(a.cfg)
	if err != nil {
		return nil, err
	}
	res, err := backend.NewFactory(a.logger, a.caches).CreateBackend(ctx, bcfg)
	if err != nil {
		return nil, fmt.Errorf("open %s backend: %w", bcfg.Type, err)
	}
	a.result = res
	return res.Source, nil
}

func (a *app) dashboard(ctx context.Context, filter finance.InsightFilter) (*services.DashboardService, error) {
	src, err := a.source(ctx)
	if err != nil {
		return nil, err
	}
	return services.NewDashboardService(src, services.DashboardOptions{
		RecentLimit:   a.cfg.RecentLimit,
		InsightFilter: filter,
		Logger:        a.logger,
	}), nil
}

func (a *app) close() error {
	if a.logger == nil {
		return nil
	}
	return cli.GracefulShutdown(a.logger, shutdownTimeout,
		a.result.Close,
		func() error {
			a.caches.Stop()
			return nil
		},
	)
}
