// warehouse/warehouse.go
package warehouse

import (
	"time"

	"github.com/shopspring/decimal"
)

// Asset classes recognized by the symbol dimension.
const (
	AssetEquity = "equity"
	AssetCrypto = "crypto"
	AssetForex  = "forex"
)

// Trade directions carried on every fact row.
const (
	TradeBuy  = "BUY"
	TradeSell = "SELL"
)

// Symbol is one row of the symbol dimension. The ticker is the natural
// key; ID is the surrogate assigned on first encounter.
type Symbol struct {
	ID         int64  `json:"id"`
	Ticker     string `json:"ticker"`
	AssetClass string `json:"asset_class"`
	Name       string `json:"name"`
	Sector     string `json:"sector"`
}

// Trader is one row of the trader dimension, keyed by trader name.
type Trader struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Team string `json:"team"`
}

// Strategy is one row of the strategy dimension, keyed by strategy name.
type Strategy struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	RiskProfile string `json:"risk_profile"`
}

// Fact is a single trade fact as inserted by the ETL pipeline. Quantity
// is signed: positive for BUY, negative for SELL. The notional value is
// not a field here: InsertFact derives it from Quantity x Price at the
// moment of insertion, so it can never drift from the derivation.
type Fact struct {
	SymbolID   int64
	TraderID   int64
	StrategyID int64
	TradeDate  time.Time
	Quantity   int64
	Price      decimal.Decimal
	TradeType  string
	LoadID     string
}

// TradeRow is a fact joined with its three dimensions, as returned by
// ListTrades.
type TradeRow struct {
	TradeID    int64           `json:"trade_id"`
	Ticker     string          `json:"ticker"`
	AssetClass string          `json:"asset_class"`
	Trader     string          `json:"trader"`
	Strategy   string          `json:"strategy"`
	TradeDate  string          `json:"trade_date"`
	Quantity   int64           `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	Notional   decimal.Decimal `json:"notional_value"`
	TradeType  string          `json:"trade_type"`
}

// TradeFilter narrows ListTrades and SummaryKPIs. Zero-valued fields
// are ignored; set fields are combined with AND. Symbol, Strategy and
// Trader match natural keys, not surrogate ids.
type TradeFilter struct {
	Symbol     string
	Strategy   string
	Trader     string
	AssetClass string
	DateFrom   time.Time
	DateTo     time.Time
	Limit      int
}

// PerformancePoint is one day of a strategy's performance series.
type PerformancePoint struct {
	TradeDate          string          `json:"trade_date"`
	DailyNotional      decimal.Decimal `json:"daily_notional"`
	CumulativeNotional decimal.Decimal `json:"cumulative_notional"`
	TradeCount         int             `json:"trade_count"`
}

// KPIReport summarizes a filtered slice of the fact table.
type KPIReport struct {
	TotalNotional      decimal.Decimal `json:"total_notional"`
	TradeCount         int             `json:"trade_count"`
	DistinctSymbols    int             `json:"distinct_symbols"`
	DistinctStrategies int             `json:"distinct_strategies"`
	AvgTradeSize       decimal.Decimal `json:"avg_trade_size"`
}

// LoadRun is the audit row written once per ETL load.
type LoadRun struct {
	LoadID        string    `json:"load_id"`
	StartedAt     time.Time `json:"started_at"`
	FinishedAt    time.Time `json:"finished_at"`
	FactsInserted int       `json:"facts_inserted"`
	FactsSkipped  int       `json:"facts_skipped"`
	ErrorCount    int       `json:"error_count"`
}
