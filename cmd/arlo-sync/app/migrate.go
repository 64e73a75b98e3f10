package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/enrolsync/arlo-catalog-sync/database"
	"github.com/enrolsync/arlo-catalog-sync/internal/logger"
)

const (
	flagYes      = "yes"
	flagNumSteps = "num-steps"
)

func newMigrateCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tool",
		Long:  `Database migration tool for managing schema versions. Use with 'up', 'down' or 'status' subcommands.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Usage()
		},
	}

	cmd.PersistentFlags().BoolP(flagYes, "y", false, "Answer yes to all questions")
	cmd.PersistentFlags().UintP(flagNumSteps, "n", 0, "Number of steps to migrate down (0 = all)")

	cmd.AddCommand(newMigrateUpCmd(v))
	cmd.AddCommand(newMigrateDownCmd(v))
	cmd.AddCommand(newMigrateStatusCmd(v))
	return cmd
}

// migrationConnString loads the configuration and returns the database connection string
func migrationConnString(v *viper.Viper) (string, error) {
	cfg, err := loadConfig(v)
	if err != nil {
		return "", err
	}
	if cfg.Database == nil {
		return "", fmt.Errorf("database configuration is required")
	}

	connString, err := cfg.Database.GetConnectionString()
	if err != nil {
		return "", fmt.Errorf("failed to build connection string: %w", err)
	}

	logger.Infow("Using database",
		"host", cfg.Database.Host,
		"port", cfg.Database.Port,
		"database", cfg.Database.Database,
		"user", cfg.Database.User,
	)
	return connString, nil
}

// confirm asks prompt on out and reads a yes/no answer from in
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	if _, err := fmt.Fprintf(out, "%s (yes/no): ", prompt); err != nil {
		return false
	}
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "yes" || answer == "y"
}

func confirmed(cmd *cobra.Command, prompt string) (bool, error) {
	yes, err := cmd.Flags().GetBool(flagYes)
	if err != nil {
		return false, fmt.Errorf("failed to get yes flag: %w", err)
	}
	if yes {
		return true, nil
	}
	return confirm(cmd.InOrStdin(), cmd.OutOrStdout(), prompt), nil
}

// reportVersion prints the schema version the database is at
func reportVersion(out io.Writer, connString string) error {
	m, err := database.NewFromConnectionString(connString)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			logger.Warnf("Failed to close migrator: %v", errors.Join(srcErr, dbErr))
		}
	}()

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		_, err = fmt.Fprintln(out, "No migrations applied")
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	if dirty {
		_, err = fmt.Fprintf(out, "Current migration version: %d (dirty - manual intervention may be required)\n", version)
	} else {
		_, err = fmt.Fprintf(out, "Current migration version: %d\n", version)
	}
	return err
}

func newMigrateUpCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply pending database migrations",
		Long: `Apply all pending database migrations to bring the schema up to date.
The connection parameters are read from the database section of the config file.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			connString, err := migrationConnString(v)
			if err != nil {
				return err
			}

			ok, err := confirmed(cmd, "Apply pending migrations?")
			if err != nil {
				return err
			}
			if !ok {
				logger.Info("Migration cancelled by user")
				return nil
			}

			logger.Info("Applying database migrations...")
			if err := database.MigrateUp(connString); err != nil {
				return err
			}
			return reportVersion(cmd.OutOrStdout(), connString)
		},
	}
}

func newMigrateDownCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Migrate the database down",
		Long: `Migrate the database schema down by reverting migrations.
WARNING: This operation can result in data loss. Use with caution.

Examples:
  # Migrate down by 1 step
  arlo-sync migrate down --config config.yaml --num-steps 1 --yes

  # Migrate down all the way (WARNING: destroys all synced data)
  arlo-sync migrate down --config config.yaml --yes`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			numSteps, err := cmd.Flags().GetUint(flagNumSteps)
			if err != nil {
				return fmt.Errorf("failed to get num-steps flag: %w", err)
			}
			if numSteps > math.MaxInt32 {
				return fmt.Errorf("number of steps exceeds maximum allowed value")
			}

			connString, err := migrationConnString(v)
			if err != nil {
				return err
			}

			prompt := "WARNING: This will migrate down ALL steps and remove every synced record. Continue?"
			if numSteps > 0 {
				prompt = fmt.Sprintf("WARNING: This will migrate down %d step(s) and may result in data loss. Continue?", numSteps)
			}
			ok, err := confirmed(cmd, prompt)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("migration cancelled by user")
			}

			if numSteps == 0 {
				logger.Warn("Migrating down all steps - this will remove all schema!")
			} else {
				logger.Infof("Migrating down %d step(s)...", numSteps)
			}
			if err := database.MigrateDown(connString, int(numSteps)); err != nil { // #nosec G115 -- bounded above
				return err
			}
			return reportVersion(cmd.OutOrStdout(), connString)
		},
	}
}

func newMigrateStatusCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the current schema version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			connString, err := migrationConnString(v)
			if err != nil {
				return err
			}
			return reportVersion(cmd.OutOrStdout(), connString)
		},
	}
}
