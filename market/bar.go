// market/bar.go
package market

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Bar is one day of OHLCV data for a ticker, as supplied by a raw
// market-data source.
type Bar struct {
	Ticker string
	Date   time.Time
	Open   decimal.Decimal
	High   decimal.Decimal
	Low    decimal.Decimal
	Close  decimal.Decimal
	Volume int64
}

// PriceField selects which OHLC component the ETL pipeline trades at.
type PriceField string

const (
	PriceOpen  PriceField = "open"
	PriceHigh  PriceField = "high"
	PriceLow   PriceField = "low"
	PriceClose PriceField = "close"
)

// Price returns the bar component named by f. Unknown fields fall back
// to the close.
func (b Bar) Price(f PriceField) decimal.Decimal {
	switch f {
	case PriceOpen:
		return b.Open
	case PriceHigh:
		return b.High
	case PriceLow:
		return b.Low
	default:
		return b.Close
	}
}

// Source supplies bars for a ticker over a date range. Implementations
// may have gaps (weekends, halts); callers must not assume one bar per
// calendar day.
type Source interface {
	Bars(ticker string, from, to time.Time) ([]Bar, error)
}

// AssetClassFor infers an asset class from ticker naming convention:
// pairs like EUR_USD or EUR/USD are forex, -USD/-USDT suffixes are
// crypto, everything else is treated as an equity.
func AssetClassFor(ticker string) string {
	t := strings.ToUpper(strings.TrimSpace(ticker))
	switch {
	case strings.Contains(t, "_"), strings.Contains(t, "/"):
		return "forex"
	case strings.HasSuffix(t, "-USD"), strings.HasSuffix(t, "-USDT"):
		return "crypto"
	default:
		return "equity"
	}
}
