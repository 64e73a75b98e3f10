// Package app wires the sync service together and manages its lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/enrolsync/arlo-catalog-sync/internal/config"
	"github.com/enrolsync/arlo-catalog-sync/internal/logger"
	"github.com/enrolsync/arlo-catalog-sync/internal/sync/coordinator"
	"github.com/enrolsync/arlo-catalog-sync/internal/telemetry"
)

// SyncApp runs the scheduled sync coordinator next to the admin HTTP server
type SyncApp struct {
	config      *config.Config
	components  *Components
	coordinator coordinator.Coordinator
	httpServer  *http.Server
	telemetry   *telemetry.Telemetry

	// Lifecycle management
	ctx        context.Context
	cancelFunc context.CancelFunc
	stopOnce   sync.Once
	stopErr    error
}

// Start starts the coordinator in the background and serves HTTP.
// This method blocks until the HTTP server stops or encounters an error
func (app *SyncApp) Start() error {
	go func() {
		if err := app.coordinator.Start(app.ctx); err != nil {
			logger.Errorf("Sync coordinator failed: %v", err)
		}
	}()

	logger.Infof("Server listening on %s", app.httpServer.Addr)
	if err := app.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server failed: %w", err)
	}

	return nil
}

// Stop stops the coordinator, shuts down the HTTP server and releases storage.
// Only the first call has an effect.
func (app *SyncApp) Stop(timeout time.Duration) error {
	app.stopOnce.Do(func() {
		app.stopErr = app.stop(timeout)
	})
	return app.stopErr
}

func (app *SyncApp) stop(timeout time.Duration) error {
	logger.Info("Shutting down server...")

	// Stop the coordinator first so no pass starts while the server drains
	if err := app.coordinator.Stop(); err != nil {
		logger.Errorf("Failed to stop sync coordinator: %v", err)
	}
	if app.cancelFunc != nil {
		app.cancelFunc()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var errs []error
	if err := app.httpServer.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("server forced to shutdown: %w", err))
	}

	if app.telemetry != nil {
		if err := app.telemetry.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, err)
		}
	}

	app.components.Close()

	logger.Info("Server shutdown complete")
	return errors.Join(errs...)
}

// GetConfig returns the application configuration
func (app *SyncApp) GetConfig() *config.Config {
	return app.config
}

// GetHTTPServer returns the HTTP server (useful for testing to get the actual port)
func (app *SyncApp) GetHTTPServer() *http.Server {
	return app.httpServer
}

// GetComponents returns the sync components
func (app *SyncApp) GetComponents() *Components {
	return app.components
}
