package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradedash/warehouse"
)

var kpisCmd = &cobra.Command{
	Use:   "kpis",
	Short: "Print summary KPIs over the fact table",
	Long: `Compute headline numbers for the (optionally filtered) fact set:
total notional, trade count, distinct symbols and strategies, average
trade size.

Examples:
  tradedash kpis
  tradedash kpis --symbol AAPL --date-from 2026-06-01`,
	RunE: runKPIs,
}

var (
	kpiSymbol     string
	kpiStrategy   string
	kpiTrader     string
	kpiAssetClass string
	kpiDateFrom   string
	kpiDateTo     string
)

func init() {
	rootCmd.AddCommand(kpisCmd)

	kpisCmd.Flags().StringVar(&kpiSymbol, "symbol", "", "filter by ticker")
	kpisCmd.Flags().StringVar(&kpiStrategy, "strategy", "", "filter by strategy name")
	kpisCmd.Flags().StringVar(&kpiTrader, "trader", "", "filter by trader name")
	kpisCmd.Flags().StringVar(&kpiAssetClass, "asset-class", "", "filter by asset class (equity, crypto, forex)")
	kpisCmd.Flags().StringVar(&kpiDateFrom, "date-from", "", "first trade date (YYYY-MM-DD)")
	kpisCmd.Flags().StringVar(&kpiDateTo, "date-to", "", "last trade date (YYYY-MM-DD)")
}

func runKPIs(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := warehouse.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open warehouse: %w", err)
	}
	defer store.Close()

	filter := warehouse.TradeFilter{
		Symbol:     kpiSymbol,
		Strategy:   kpiStrategy,
		Trader:     kpiTrader,
		AssetClass: kpiAssetClass,
	}
	if kpiDateFrom != "" {
		filter.DateFrom, err = time.Parse(warehouse.DateLayout, kpiDateFrom)
		if err != nil {
			return fmt.Errorf("bad --date-from: %w", err)
		}
	}
	if kpiDateTo != "" {
		filter.DateTo, err = time.Parse(warehouse.DateLayout, kpiDateTo)
		if err != nil {
			return fmt.Errorf("bad --date-to: %w", err)
		}
	}

	report, err := store.SummaryKPIs(filter)
	if err != nil {
		return fmt.Errorf("kpis: %w", err)
	}

	fmt.Printf("Total notional:      %s\n", report.TotalNotional.StringFixed(2))
	fmt.Printf("Trade count:         %d\n", report.TradeCount)
	fmt.Printf("Distinct symbols:    %d\n", report.DistinctSymbols)
	fmt.Printf("Distinct strategies: %d\n", report.DistinctStrategies)
	fmt.Printf("Avg trade size:      %s\n", report.AvgTradeSize.StringFixed(2))
	return nil
}
