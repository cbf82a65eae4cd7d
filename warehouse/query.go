// warehouse/query.go
package warehouse

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Unfiltered trade listings are capped so a dashboard refresh cannot
// drag the whole fact table over the wire.
const defaultListLimit = 500

// whereClause builds the AND-combined predicate for a TradeFilter.
// Every query here joins facts against all three dimensions, so filters
// can address natural keys directly.
func whereClause(f TradeFilter) (string, []any) {
	var conds []string
	var args []any

	if f.Symbol != "" {
		conds = append(conds, "s.ticker = ?")
		args = append(args, strings.ToUpper(strings.TrimSpace(f.Symbol)))
	}
	if f.Strategy != "" {
		conds = append(conds, "st.strategy_name = ?")
		args = append(args, f.Strategy)
	}
	if f.Trader != "" {
		conds = append(conds, "t.trader_name = ?")
		args = append(args, f.Trader)
	}
	if f.AssetClass != "" {
		conds = append(conds, "s.asset_class = ?")
		args = append(args, f.AssetClass)
	}
	if !f.DateFrom.IsZero() {
		conds = append(conds, "f.trade_date >= ?")
		args = append(args, f.DateFrom.Format(DateLayout))
	}
	if !f.DateTo.IsZero() {
		conds = append(conds, "f.trade_date <= ?")
		args = append(args, f.DateTo.Format(DateLayout))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

const factJoin = `
	FROM trade_facts f
	JOIN symbol_dim s ON f.symbol_id = s.symbol_id
	JOIN trader_dim t ON f.trader_id = t.trader_id
	JOIN strategy_dim st ON f.strategy_id = st.strategy_id
`

// ListTrades returns denormalized fact rows matching the filter, newest
// trade date first, ties broken by descending trade id. A single SELECT
// keeps the result a consistent snapshot of the fact table.
func (s *Store) ListTrades(f TradeFilter) ([]TradeRow, error) {
	where, args := whereClause(f)

	limit := f.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	args = append(args, limit)

	rows, err := s.db.Query(`
		SELECT f.trade_id, s.ticker, s.asset_class, t.trader_name, st.strategy_name,
		       f.trade_date, f.quantity, f.price, f.notional_value, f.trade_type
		`+factJoin+where+`
		ORDER BY f.trade_date DESC, f.trade_id DESC
		LIMIT ?`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []TradeRow{}
	for rows.Next() {
		var r TradeRow
		if err := rows.Scan(
			&r.TradeID, &r.Ticker, &r.AssetClass, &r.Trader, &r.Strategy,
			&r.TradeDate, &r.Quantity, &r.Price, &r.Notional, &r.TradeType,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Performance returns the per-day notional series for one strategy,
// ascending by date, with a running cumulative sum. A strategy with no
// facts yields an empty series; an unknown strategy id is ErrNotFound.
//
// Daily sums are accumulated in decimal on the ordered rows rather than
// with SQL SUM, which would route the stored decimals through floats.
func (s *Store) Performance(strategyID int64) ([]PerformancePoint, error) {
	if _, err := s.StrategyByID(strategyID); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`
		SELECT trade_date, notional_value
		FROM trade_facts
		WHERE strategy_id = ?
		ORDER BY trade_date ASC, trade_id ASC`, strategyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	series := []PerformancePoint{}
	cumulative := decimal.Zero
	for rows.Next() {
		var date string
		var notional decimal.Decimal
		if err := rows.Scan(&date, &notional); err != nil {
			return nil, err
		}

		if n := len(series); n > 0 && series[n-1].TradeDate == date {
			series[n-1].DailyNotional = series[n-1].DailyNotional.Add(notional)
			series[n-1].TradeCount++
		} else {
			series = append(series, PerformancePoint{
				TradeDate:     date,
				DailyNotional: notional,
				TradeCount:    1,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range series {
		cumulative = cumulative.Add(series[i].DailyNotional)
		series[i].CumulativeNotional = cumulative
	}
	return series, nil
}

// SummaryKPIs computes headline numbers over the filtered fact set. The
// whole report derives from one SELECT, so every KPI reflects the same
// snapshot. AvgTradeSize is decimal zero when no trades match.
func (s *Store) SummaryKPIs(f TradeFilter) (KPIReport, error) {
	where, args := whereClause(f)

	rows, err := s.db.Query(`
		SELECT f.notional_value, f.symbol_id, f.strategy_id
		`+factJoin+where, args...)
	if err != nil {
		return KPIReport{}, err
	}
	defer rows.Close()

	report := KPIReport{
		TotalNotional: decimal.Zero,
		AvgTradeSize:  decimal.Zero,
	}
	symbols := map[int64]struct{}{}
	strategies := map[int64]struct{}{}

	for rows.Next() {
		var notional decimal.Decimal
		var symbolID, strategyID int64
		if err := rows.Scan(&notional, &symbolID, &strategyID); err != nil {
			return KPIReport{}, err
		}
		report.TradeCount++
		report.TotalNotional = report.TotalNotional.Add(notional)
		symbols[symbolID] = struct{}{}
		strategies[strategyID] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return KPIReport{}, err
	}

	report.DistinctSymbols = len(symbols)
	report.DistinctStrategies = len(strategies)
	if report.TradeCount > 0 {
		count := decimal.NewFromInt(int64(report.TradeCount))
		report.AvgTradeSize = report.TotalNotional.Div(count)
	}
	return report, nil
}

// FactCount reports the total number of fact rows. Used by the CLI and
// by ETL tests reconciling load summaries against the table.
func (s *Store) FactCount() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM trade_facts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count facts: %w", err)
	}
	return n, nil
}
