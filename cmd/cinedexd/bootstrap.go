package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"cinedex/internal/config"
	"cinedex/internal/daemon"
	"cinedex/internal/logging"
	"cinedex/internal/store"
)

type serveOptions struct {
	configPath string
	host       string
	port       int
	portSet    bool
}

func newRootCommand() *cobra.Command {
	opts := &serveOptions{}
	cmd := &cobra.Command{
		Use:           "cinedexd",
		Short:         "Serve the cinedex catalog API",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.portSet = cmd.Flags().Changed("port")
			return run(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Configuration file path")
	cmd.Flags().StringVar(&opts.host, "host", "", "Override server.host")
	cmd.Flags().IntVarP(&opts.port, "port", "p", 0, "Override server.port")
	return cmd
}

func loadConfig(opts *serveOptions) (*config.Config, error) {
	cfg, _, _, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.host != "" {
		cfg.Server.Host = opts.host
	}
	if opts.portSet {
		cfg.Server.Port = opts.port
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// bootstrap opens the store and assembles the daemon. The caller owns Close.
func bootstrap(cfg *config.Config, logger *slog.Logger) (*daemon.Daemon, error) {
	st, err := store.Open(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	d, err := daemon.New(cfg, st, logger, daemon.WithVersion(version))
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("create daemon: %w", err)
	}
	return d, nil
}

func run(ctx context.Context, opts *serveOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	d, err := bootstrap(cfg, logger)
	if err != nil {
		logging.ErrorWithContext(logger, "daemon bootstrap failed", "daemon_bootstrap_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check storage.path and file permissions"))
		return err
	}
	defer d.Close()

	if err := d.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	logger.Info("cinedexd shutting down")
	return nil
}
