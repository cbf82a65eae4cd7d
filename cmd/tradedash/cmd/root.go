package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tradedash",
	Short: "A star-schema trading analytics dashboard backend",
	Long: `Tradedash is a small business-intelligence backend for simulated
trading activity.

It provides tools for:
  - Loading raw OHLCV market data into a dimensional star schema
  - Synthesizing reproducible trade facts from daily bars
  - Answering filtered trade listings, per-strategy performance series
    and summary KPIs
  - Serving the aggregates over a REST API for charting frontends

The warehouse is a single SQLite file: batch loaded, read many times.`,
}

var cfgPath string

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (defaults to built-in settings)")
}
