package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	syncapp "github.com/enrolsync/arlo-catalog-sync/internal/app"
	"github.com/enrolsync/arlo-catalog-sync/internal/logger"
	"github.com/enrolsync/arlo-catalog-sync/internal/telemetry"
)

const (
	flagAddress = "address"

	defaultGracefulTimeout = 30 * time.Second
)

func newServeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run scheduled syncs and the admin API",
		Long: `Run the sync coordinator on the configured cron schedule and serve the admin API.

The admin API lists tenants and checkpoints, triggers manual syncs and reads or
sets the remote API status flag. See examples/ for sample configurations.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), v)
		},
	}

	cmd.Flags().String(flagAddress, "", "Address to listen on, overrides api.address")
	if err := v.BindPFlag(flagAddress, cmd.Flags().Lookup(flagAddress)); err != nil {
		logger.Fatalf("Failed to bind address flag: %v", err)
	}
	return cmd
}

func runServe(ctx context.Context, v *viper.Viper) error {
	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}

	tel, err := telemetry.New(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	opts := []syncapp.SyncAppOptions{
		syncapp.WithConfig(cfg),
		syncapp.WithTelemetry(tel),
	}
	if address := v.GetString(flagAddress); address != "" {
		opts = append(opts, syncapp.WithAddress(address))
	}

	app, err := syncapp.NewSyncApp(ctx, opts...)
	if err != nil {
		shutdownTelemetry(tel)
		return fmt.Errorf("failed to create sync app: %w", err)
	}

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- app.Start()
	}()

	select {
	case err = <-serveErr:
		if err != nil {
			logger.Errorf("Server stopped: %v", err)
		}
	case <-sigCtx.Done():
		logger.Info("Received shutdown signal")
	}

	if stopErr := app.Stop(defaultGracefulTimeout); stopErr != nil {
		logger.Errorf("Shutdown failed: %v", stopErr)
		if err == nil {
			err = stopErr
		}
	}
	return err
}

func shutdownTelemetry(tel *telemetry.Telemetry) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultGracefulTimeout)
	defer cancel()
	if err := tel.Shutdown(ctx); err != nil {
		logger.Warnf("Failed to shut down telemetry: %v", err)
	}
}
