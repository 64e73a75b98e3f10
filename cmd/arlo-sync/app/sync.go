package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	syncapp "github.com/enrolsync/arlo-catalog-sync/internal/app"
	"github.com/enrolsync/arlo-catalog-sync/internal/catalog"
	"github.com/enrolsync/arlo-catalog-sync/internal/logger"
	pkgsync "github.com/enrolsync/arlo-catalog-sync/internal/sync"
	"github.com/enrolsync/arlo-catalog-sync/internal/sync/coordinator"
	"github.com/enrolsync/arlo-catalog-sync/internal/telemetry"
	"github.com/enrolsync/arlo-catalog-sync/internal/trace"
)

const (
	flagPlatform   = "platform"
	flagCollection = "collection"
	flagManual     = "manual"
)

type syncOptions struct {
	platform   string
	collection string
	manual     bool
	format     string
}

func newSyncCmd(v *viper.Viper) *cobra.Command {
	opts := &syncOptions{}

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Run one sync pass and exit",
		Long: `Run one sync pass over every enabled tenant, one tenant or one collection, then exit.

Examples:
  # Everything that is due
  arlo-sync sync --config config.yaml

  # Pull the events of one tenant now, ignoring the pull interval
  arlo-sync sync --config config.yaml --platform demo.arlo.co --collection events --manual`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSync(cmd.Context(), v, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.platform, flagPlatform, "", "Only sync this tenant")
	cmd.Flags().StringVar(&opts.collection, flagCollection, "",
		"Only sync this collection (events, eventtemplates, onlineactivities), requires --platform")
	cmd.Flags().BoolVar(&opts.manual, flagManual, false, "Ignore the pull interval")
	cmd.Flags().StringVar(&opts.format, flagFormat, "", "Output format (json); progress lines are printed otherwise")
	return cmd
}

func (o *syncOptions) validate() (catalog.CollectionType, error) {
	if o.format != "" && o.format != formatJSON {
		return "", fmt.Errorf("unsupported format %q", o.format)
	}
	if o.collection == "" {
		return "", nil
	}
	if o.platform == "" {
		return "", fmt.Errorf("--%s requires --%s", flagCollection, flagPlatform)
	}
	return catalog.ParseCollectionType(o.collection)
}

func runSync(ctx context.Context, v *viper.Viper, opts *syncOptions, out io.Writer) error {
	collectionType, err := opts.validate()
	if err != nil {
		return err
	}

	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}

	tel, err := telemetry.New(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer shutdownTelemetry(tel)

	progress := trace.Null
	if opts.format == "" {
		progress = trace.NewText(out)
	}

	components, err := syncapp.BuildComponents(ctx,
		syncapp.WithConfig(cfg),
		syncapp.WithTelemetry(tel),
		syncapp.WithProgress(progress),
	)
	if err != nil {
		return fmt.Errorf("failed to build sync components: %w", err)
	}
	defer components.Close()

	driver := components.Driver
	if err := driver.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize tenants: %w", err)
	}

	var report any
	switch {
	case collectionType != "":
		var result *pkgsync.Result
		result, err = driver.ProcessCollection(ctx, opts.platform, collectionType, opts.manual)
		if result != nil {
			report = result
		}
	case opts.platform != "":
		var tenantReport *coordinator.TenantReport
		tenantReport, err = driver.ProcessTenant(ctx, opts.platform, opts.manual)
		if tenantReport != nil {
			report = tenantReport
		}
	default:
		if opts.manual {
			logger.Warn("--manual has no effect without --platform")
		}
		var fullReport *coordinator.Report
		fullReport, err = driver.ProcessAll(ctx)
		if fullReport != nil {
			report = fullReport
		}
	}

	if report != nil {
		if writeErr := writeReport(out, opts.format, report); writeErr != nil {
			err = errors.Join(err, writeErr)
		}
	}
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}
	return nil
}

func writeReport(out io.Writer, format string, report any) error {
	if format == formatJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	var results []*pkgsync.Result
	switch r := report.(type) {
	case *pkgsync.Result:
		results = []*pkgsync.Result{r}
	case *coordinator.TenantReport:
		results = r.Results
	case *coordinator.Report:
		for _, tenant := range r.Tenants {
			results = append(results, tenant.Results...)
		}
	}

	for _, result := range results {
		if _, err := fmt.Fprintln(out, summarize(result)); err != nil {
			return err
		}
	}
	return nil
}

func summarize(r *pkgsync.Result) string {
	if r.Skipped {
		return fmt.Sprintf("%s %s: skipped", r.Platform, r.Collection)
	}
	line := fmt.Sprintf("%s %s: %d page(s), %d created, %d updated", r.Platform, r.Collection, r.Pages, r.Created, r.Updated)
	if r.Stale > 0 {
		line += fmt.Sprintf(", %d older than stored", r.Stale)
	}
	return line + fmt.Sprintf(", watermark %q", r.Watermark)
}
