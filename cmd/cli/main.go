package main

import (
	"context"
	"fmt"
	"os"

	"leanfunnel/app"
	"leanfunnel/internal"
	"leanfunnel/internal/config"
	"leanfunnel/internal/container"
	"leanfunnel/internal/errors"
	"leanfunnel/internal/testkit"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const emptyDatasetWarning = "⚠️ No valid enquiry data found"

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:          "funnel-cli",
		Short:        "Compute enquiry conversion metrics from the System_Logic worksheet",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newMetricsCmd(),
		newRowsCmd(),
		newGenerateCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newMetricsCmd() *cobra.Command {
	var file, format string

	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Load the worksheet and print the funnel metrics",
		Long: `Load the worksheet and print the funnel metrics.

Example: funnel-cli metrics --file enquiries.xlsx --format markdown`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dashboard, err := loadDashboard(cmd.Context(), file)
			if errors.IsEmptyDataset(err) {
				fmt.Fprintln(cmd.ErrOrStderr(), emptyDatasetWarning)
				return nil
			}
			if err != nil {
				return err
			}
			return renderMetrics(cmd.OutOrStdout(), dashboard, format)
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Read a local .xlsx or .csv instead of the remote sheet")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table, json or markdown")

	return cmd
}

func newRowsCmd() *cobra.Command {
	var file, format string
	var limit int

	cmd := &cobra.Command{
		Use:   "rows",
		Short: "Print the cleaned enquiry table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return fmt.Errorf("--limit cannot be negative")
			}
			dashboard, err := loadDashboard(cmd.Context(), file)
			if errors.IsEmptyDataset(err) {
				fmt.Fprintln(cmd.ErrOrStderr(), emptyDatasetWarning)
				return nil
			}
			if err != nil {
				return err
			}
			return renderRows(cmd.OutOrStdout(), dashboard.Result.Table, limit, format)
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Read a local .xlsx or .csv instead of the remote sheet")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table, json or markdown")
	cmd.Flags().IntVar(&limit, "limit", 0, "Print at most this many rows (0 prints all)")

	return cmd
}

func newGenerateCmd() *cobra.Command {
	var out string
	config := testkit.DefaultEnquiryConfig()

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic System_Logic worksheet as CSV for demos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			generated := testkit.NewEnquiryGenerator(config).Generate()

			w := cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", out, err)
				}
				defer f.Close()
				w = f
			}
			if err := writeSheetCSV(w, generated.Sheet); err != nil {
				return err
			}
			if out != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d rows to %s\n", len(generated.Sheet.Records), out)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	cmd.Flags().IntVar(&config.Rows, "rows", config.Rows, "Number of enquiries")
	cmd.Flags().IntVar(&config.Weeks, "weeks", config.Weeks, "Number of distinct weeks")
	cmd.Flags().Float64Var(&config.BlankWeekRate, "blank-week-rate", config.BlankWeekRate, "Share of rows with a blank Week")
	cmd.Flags().Int64Var(&config.Seed, "seed", config.Seed, "Random seed for deterministic output")

	return cmd
}

// loadDashboard wires a one-shot dashboard service; --file overrides DATA_FILE
func loadDashboard(ctx context.Context, file string) (*app.Dashboard, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := config.FromEnv()
	if file != "" {
		cfg.Data.File = file
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// INFO progress lines are noise on a terminal; DEBUG and TRACE still get through
	level := internal.ParseLogLevel(cfg.Log.Level)
	if level == internal.LogLevelInfo {
		level = internal.LogLevelWarn
	}

	c, err := container.New(cfg, internal.NewLoggerTo(os.Stderr, level))
	if err != nil {
		return nil, err
	}
	defer c.Shutdown(ctx)

	if err := c.InitSource(ctx); err != nil {
		return nil, err
	}
	svc, err := c.Build()
	if err != nil {
		return nil, err
	}
	return svc.Load(ctx)
}
