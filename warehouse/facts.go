// warehouse/facts.go
package warehouse

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

// InsertFact appends one row to the fact table. The notional value is
// derived here from quantity x price in decimal arithmetic; callers
// cannot supply their own.
//
// The table enforces uniqueness on (symbol, trader, strategy, trade
// date): re-loading overlapping source data returns ErrDuplicateFact
// for the rows already present, which the ETL pipeline counts as skips.
// Facts are never updated or deleted outside a full reload.
func (s *Store) InsertFact(f Fact) (int64, error) {
	if f.Quantity == 0 {
		return 0, &ValidationError{Field: "quantity", Reason: "zero"}
	}
	if f.Price.Sign() <= 0 {
		return 0, &ValidationError{Field: "price", Reason: "not positive"}
	}
	if f.TradeType != TradeBuy && f.TradeType != TradeSell {
		return 0, &ValidationError{Field: "trade_type", Reason: fmt.Sprintf("unknown %q", f.TradeType)}
	}

	notional := decimal.NewFromInt(f.Quantity).Mul(f.Price)

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`
		INSERT INTO trade_facts
		(symbol_id, trader_id, strategy_id, trade_date, quantity, price, notional_value, trade_type, load_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.SymbolID, f.TraderID, f.StrategyID,
		f.TradeDate.Format(DateLayout),
		f.Quantity, f.Price.String(), notional.String(), f.TradeType, f.LoadID,
	)
	if err != nil {
		var se sqlite3.Error
		if errors.As(err, &se) {
			switch se.ExtendedCode {
			case sqlite3.ErrConstraintUnique:
				return 0, ErrDuplicateFact
			case sqlite3.ErrConstraintForeignKey:
				return 0, &ReferentialError{Err: err}
			}
		}
		return 0, fmt.Errorf("insert fact: %w", err)
	}
	return res.LastInsertId()
}

// RecordLoadRun writes the audit row for one completed ETL load.
func (s *Store) RecordLoadRun(run LoadRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO load_runs
		(load_id, started_at, finished_at, facts_inserted, facts_skipped, error_count)
		VALUES (?, ?, ?, ?, ?, ?)`,
		run.LoadID, run.StartedAt, run.FinishedAt,
		run.FactsInserted, run.FactsSkipped, run.ErrorCount,
	)
	return err
}

// LoadRuns returns the ETL audit trail, most recent first.
func (s *Store) LoadRuns() ([]LoadRun, error) {
	rows, err := s.db.Query(`
		SELECT load_id, started_at, finished_at, facts_inserted, facts_skipped, error_count
		FROM load_runs
		ORDER BY load_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LoadRun
	for rows.Next() {
		var run LoadRun
		if err := rows.Scan(
			&run.LoadID, &run.StartedAt, &run.FinishedAt,
			&run.FactsInserted, &run.FactsSkipped, &run.ErrorCount,
		); err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}
