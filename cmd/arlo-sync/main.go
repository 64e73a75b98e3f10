// Package main is the entry point for the Arlo catalog sync service.
package main

import (
	"os"

	"github.com/enrolsync/arlo-catalog-sync/cmd/arlo-sync/app"
	"github.com/enrolsync/arlo-catalog-sync/internal/logger"
)

func main() {
	// Commands replace this logger once the configuration is loaded
	if err := logger.Initialize(logger.Config{Level: app.BootstrapLogLevel()}); err != nil {
		_ = logger.Initialize(logger.Config{})
		logger.Warnf("Invalid log level, using info: %v", err)
	}
	defer logger.Sync()

	if err := app.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
