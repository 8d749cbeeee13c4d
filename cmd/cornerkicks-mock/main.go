package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dlehdeod1/newcornerkicks/internal/api"
	"github.com/dlehdeod1/newcornerkicks/internal/config"
	"github.com/dlehdeod1/newcornerkicks/internal/factory"
	"github.com/dlehdeod1/newcornerkicks/internal/logging"
	"github.com/dlehdeod1/newcornerkicks/internal/services/auth"
)

func main() {
	// A missing .env is fine
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.LookupEnv, serve).ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

// newRootCmd binds --addr, --seed and --debug over the CORNERKICKS_MOCK_*
// environment and hands the result to run
func newRootCmd(lookup func(string) (string, bool), run func(context.Context, config.ServerConfig) error) *cobra.Command {
	var cfg config.ServerConfig

	cmd := &cobra.Command{
		Use:   "cornerkicks-mock",
		Short: "In-memory club API server for local development",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return cfg.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cfg)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	base, err := config.LoadServer(lookup)
	if err != nil {
		// Report the bad environment when the command runs
		cmd.PreRunE = func(*cobra.Command, []string) error { return err }
	}
	cfg = base

	f := cmd.Flags()
	f.StringVar(&cfg.Addr, "addr", base.Addr, "Listen address (env: CORNERKICKS_MOCK_ADDR)")
	f.BoolVar(&cfg.Seed, "seed", base.Seed, "Create the admin account and a sample roster")
	f.BoolVar(&cfg.Debug, "debug", base.Debug, "Debug logging")

	return cmd
}

func serve(ctx context.Context, cfg config.ServerConfig) error {
	logger := logging.NewServer(os.Stdout, cfg.Debug)
	defer func() { _ = logger.Sync() }()

	app := factory.New(factory.Config{
		AuthConfig: auth.Config{
			Secret:   []byte(cfg.JWTSecret),
			TokenTTL: cfg.TokenTTL,
		},
		Logger: logger,
	})
	defer app.Close()

	if cfg.Seed {
		if err := app.Seed(ctx); err != nil {
			return fmt.Errorf("failed to seed: %w", err)
		}
	}

	serverConfig := api.DefaultServerConfig()
	serverConfig.Addr = cfg.Addr
	server := api.NewServer(app.Handler(), serverConfig, logger)
	server.OnShutdown(app.Close)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		if err := server.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
	}

	logger.Info("server stopped")
	return nil
}
