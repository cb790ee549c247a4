package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/crakhack/crakhack-web/internal/bootstrap"
	"github.com/crakhack/crakhack-web/internal/domain/analytics"
)

const defaultCommandTimeout = 2 * time.Minute

type analyticsReader interface {
	Summary(ctx context.Context, target analytics.Target, days int) (analytics.Summary, error)
	Capabilities(ctx context.Context) (analytics.Capabilities, error)
}

type storageReader interface {
	Stats(ctx context.Context, days int) (analytics.StorageStats, error)
}

// adminServices is the subset of the server's services the CLI drives.
type adminServices struct {
	Analytics analyticsReader
	Storage   storageReader
	Missing   []string
}

type servicesLoader func() (adminServices, error)

// loadServices builds the same analytics stack the server uses, without a cache.
func loadServices() (adminServices, error) {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return adminServices{}, err
	}
	cfg.Observability.Metrics.Enabled = false

	svc, err := bootstrap.NewServices(&bootstrap.ServiceDeps{Config: &cfg})
	if err != nil {
		return adminServices{}, err
	}
	return adminServices{
		Analytics: svc.Analytics,
		Storage:   svc.Storage,
		Missing:   bootstrap.MissingAnalyticsVars(&cfg),
	}, nil
}

func newRootCmd(load servicesLoader) *cobra.Command {
	root := &cobra.Command{
		Use:           "crakhack-admin",
		Short:         "Inspect CRAK HACK analytics from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		buildAnalyticsCmd(load),
		buildCapabilitiesCmd(load),
		buildStorageCmd(load),
		buildCheckCmd(load),
	)
	return root
}

func buildAnalyticsCmd(load servicesLoader) *cobra.Command {
	var (
		target string
		days   int
	)
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Print the traffic summary as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := load()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()

			summary, err := svc.Analytics.Summary(ctx, analytics.ParseTarget(target), days)
			if err != nil {
				return fmt.Errorf("fetch summary: %w", err)
			}
			return writeJSON(cmd.OutOrStdout(), summary)
		},
	}
	cmd.Flags().StringVar(&target, "target", string(analytics.TargetSite), "Hostname to report on (site or screener)")
	cmd.Flags().IntVar(&days, "days", analytics.DefaultDays, "Trailing window in days (1-90)")
	return cmd
}

func buildCapabilitiesCmd(load servicesLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "capabilities",
		Short: "Discover the provider's supported breakdown fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := load()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()

			caps, err := svc.Analytics.Capabilities(ctx)
			if err != nil {
				return fmt.Errorf("discover capabilities: %w", err)
			}
			return writeJSON(cmd.OutOrStdout(), caps)
		},
	}
}

func buildStorageCmd(load servicesLoader) *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "storage",
		Short: "Print object storage usage as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := load()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()

			stats, err := svc.Storage.Stats(ctx, days)
			if err != nil {
				return fmt.Errorf("fetch storage stats: %w", err)
			}
			return writeJSON(cmd.OutOrStdout(), stats)
		},
	}
	cmd.Flags().IntVar(&days, "days", analytics.DefaultDays, "Trailing window in days (1-90)")
	return cmd
}

func buildCheckCmd(load servicesLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report missing analytics settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := load()
			if err != nil {
				return err
			}
			if len(svc.Missing) > 0 {
				return fmt.Errorf("missing env vars: %s", strings.Join(svc.Missing, ", "))
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "analytics configuration complete")
			return err
		},
	}
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, defaultCommandTimeout)
}

func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	out = append(out, '\n')
	_, err = w.Write(out)
	return err
}
