// Package app provides the commands of the arlo-sync binary.
package app

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/enrolsync/arlo-catalog-sync/internal/config"
	"github.com/enrolsync/arlo-catalog-sync/internal/logger"
	"github.com/enrolsync/arlo-catalog-sync/internal/versions"
)

const (
	flagConfig      = "config"
	flagLogLevel    = "log-level"
	flagLogEncoding = "log-encoding"
	flagFormat      = "format"

	formatJSON = "json"
)

// newViper returns a viper instance reading ARLO_SYNC_* environment variables
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(config.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// BootstrapLogLevel returns the level used before a configuration is loaded,
// read from ARLO_SYNC_LOG_LEVEL
func BootstrapLogLevel() string {
	return newViper().GetString(flagLogLevel)
}

// NewRootCmd creates the arlo-sync command tree. Every call builds fresh
// commands so tests can execute them independently.
func NewRootCmd() *cobra.Command {
	v := newViper()

	rootCmd := &cobra.Command{
		Use:               "arlo-sync",
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		Short:             "Arlo catalog sync service",
		Long: `arlo-sync incrementally copies events, event templates and online activities
from one or more Arlo platforms into local storage.`,
		Run: func(cmd *cobra.Command, _ []string) {
			if err := cmd.Help(); err != nil {
				logger.Errorf("Error displaying help: %v", err)
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String(flagConfig, "", "Path to configuration file (YAML format)")
	flags.String(flagLogLevel, "", "Log level (debug, info, warn, error), overrides the configuration")
	flags.String(flagLogEncoding, "", "Log encoding (json, console), overrides the configuration")
	for _, name := range []string{flagConfig, flagLogLevel, flagLogEncoding} {
		if err := v.BindPFlag(name, flags.Lookup(name)); err != nil {
			logger.Fatalf("Failed to bind %s flag: %v", name, err)
		}
	}

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newServeCmd(v))
	rootCmd.AddCommand(newSyncCmd(v))
	rootCmd.AddCommand(newMigrateCmd(v))

	return rootCmd
}

// loadConfig loads the configuration named by --config or ARLO_SYNC_CONFIG and
// reinitializes the logger from it
func loadConfig(v *viper.Viper) (*config.Config, error) {
	path := v.GetString(flagConfig)
	if path == "" {
		return nil, fmt.Errorf("a configuration file is required: use --%s or %s_CONFIG", flagConfig, config.EnvPrefix)
	}

	cfg, err := config.LoadConfig(config.WithConfigPath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logCfg := cfg.Log
	if level := v.GetString(flagLogLevel); level != "" {
		logCfg.Level = level
	}
	if encoding := v.GetString(flagLogEncoding); encoding != "" {
		logCfg.Encoding = encoding
	}
	if err := logger.Initialize(logCfg); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Infow("Loaded configuration",
		"path", path,
		"tenants", len(cfg.Tenants),
		"storage", cfg.GetStorageType(),
	)
	return cfg, nil
}

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := versions.GetVersionInfo()
			format, err := cmd.Flags().GetString(flagFormat)
			if err != nil {
				return fmt.Errorf("failed to get format flag: %w", err)
			}

			if format == formatJSON {
				output, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to format version info as JSON: %w", err)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(output))
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), info.String())
			return err
		},
	}
	cmd.Flags().String(flagFormat, "", "Output format (json)")
	return cmd
}
