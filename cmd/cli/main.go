package main

import (
	"context"
	"fmt"
	"os"

	"riskhypo/adapters/csvsink"
	"riskhypo/adapters/locator"
	"riskhypo/adapters/postgres"
	"riskhypo/app"
	"riskhypo/domain/dataset"
	"riskhypo/internal"
	"riskhypo/internal/config"
	"riskhypo/internal/profiling"
	"riskhypo/ports"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// .env is optional; the environment wins when both are set.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "riskhypo",
		Short: "Insurance risk segment analytics and hypothesis testing",
	}

	rootCmd.AddCommand(
		newQualityCmd(),
		newTablesCmd(),
		newHypothesesCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadTable resolves configuration and loads the raw dataset, honoring the
// --input override.
func loadTable(inputOverride string) (*config.Config, *dataset.Table, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if inputOverride != "" {
		cfg.Input.Candidates = []string{inputOverride}
	}

	table, err := locator.New(cfg.Input.Candidates).ReadTable()
	if err != nil {
		return nil, nil, err
	}
	return cfg, table, nil
}

func newQualityCmd() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "quality",
		Short: "Print the data-quality profile of the input dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, table, err := loadTable(input)
			if err != nil {
				return err
			}

			profile, err := profiling.NewProfiler().Analyze(table)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Data shape: %d rows, %d columns\n", profile.Rows, profile.Columns)
			for _, s := range profile.Numeric {
				fmt.Fprintf(out, "\nDescriptive statistics for %s:\n", s.Column)
				fmt.Fprintf(out, "  count=%d mean=%.2f std=%.2f\n", s.Count, s.Mean, s.StdDev)
				fmt.Fprintf(out, "  min=%.2f p25=%.2f median=%.2f p75=%.2f max=%.2f\n",
					s.Min, s.Q25, s.Median, s.Q75, s.Max)
			}
			fmt.Fprintln(out, "\nMissing values count per column:")
			for _, col := range table.Columns {
				fmt.Fprintf(out, "  %s: %d\n", col, profile.MissingCounts[col])
			}
			fmt.Fprintf(out, "\nTransactionMonth parseable cells: %d\n", profile.ParsedMonths)
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "input data file (overrides candidate search)")
	return cmd
}

func newTablesCmd() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Build segment-vs-rest result tables and write them to the output sinks",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, table, err := loadTable(input)
			if err != nil {
				return err
			}
			ctx := context.Background()
			logger := internal.DefaultLogger

			fileSink, err := csvsink.New(cfg.Output.Dir)
			if err != nil {
				return err
			}
			sinks := []ports.ResultSink{fileSink}

			if cfg.Output.DatabaseURL != "" {
				db, err := postgres.Connect(ctx, cfg.Output.DatabaseURL)
				if err != nil {
					// The database sink is best-effort; CSV output still lands.
					logger.Warn("database sink unavailable: %v", err)
				} else {
					defer db.Close()
					sinks = append(sinks, postgres.NewResultRepository(db))
				}
			}

			summary, err := app.NewTableService(cfg, sinks, logger).Run(ctx, table)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run %s: %d records\n", summary.RunID, summary.InputRows)
			for _, name := range summary.Tables {
				fmt.Fprintf(out, "Wrote %s\n", fileSink.Path(name))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "input data file (overrides candidate search)")
	return cmd
}

func newHypothesesCmd() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "hypotheses",
		Short: "Run the risk-uniformity hypothesis battery and print the report",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, table, err := loadTable(input)
			if err != nil {
				return err
			}
			return app.NewHypothesisService(cfg).Run(table, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "input data file (overrides candidate search)")
	return cmd
}
