package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradedash/etl"
	"github.com/rustyeddy/tradedash/warehouse"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Run the ETL pipeline and populate the warehouse",
	Long: `Load raw OHLCV bars for the configured tickers into the star
schema, synthesizing trade facts with the configured assignment policy.

Re-running a load over the same date range is idempotent: facts already
present under their natural identity are skipped, not duplicated.

Example:
  tradedash load -c tradedash.yaml`,
	RunE: runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := warehouse.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open warehouse: %w", err)
	}
	defer store.Close()

	source, err := newSource(cfg)
	if err != nil {
		return err
	}

	pipeline, err := etl.NewPipeline(store, source, newPolicy(cfg), newLogger())
	if err != nil {
		return err
	}
	for ticker, meta := range cfg.ETL.Symbols {
		pipeline.SetSymbolMeta(ticker, etl.SymbolMeta{Name: meta.Name, Sector: meta.Sector})
	}

	to := time.Now().UTC().Truncate(24 * time.Hour)
	from := to.AddDate(0, 0, -cfg.ETL.Days)

	summary, err := pipeline.Load(context.Background(), cfg.ETL.Tickers, from, to)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}

	fmt.Printf("Load %s complete\n", summary.LoadID)
	fmt.Printf("  Inserted: %d\n", summary.FactsInserted)
	fmt.Printf("  Skipped:  %d\n", summary.FactsSkipped)
	if len(summary.Errors) > 0 {
		fmt.Printf("  Errors (%d):\n", len(summary.Errors))
		for _, e := range summary.Errors {
			if e.Date != "" {
				fmt.Printf("    %s %s: %s\n", e.Ticker, e.Date, e.Reason)
			} else {
				fmt.Printf("    %s: %s\n", e.Ticker, e.Reason)
			}
		}
	}
	return nil
}
