// warehouse/dims.go
package warehouse

import (
	"database/sql"
	"fmt"
	"strings"
)

// The dimension registry: resolve a natural key to its surrogate id,
// inserting the row on first encounter. Attributes are first-write-wins;
// resolving an existing key never rewrites the stored row, so repeated
// ETL runs cannot drift a dimension.

// ResolveSymbol returns the surrogate id for ticker, creating the
// symbol_dim row if the ticker has not been seen. Tickers are normalized
// to upper case, so BTC-USD and btc-usd resolve to the same row.
func (s *Store) ResolveSymbol(ticker, assetClass, name, sector string) (int64, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return 0, &ValidationError{Field: "ticker", Reason: "empty"}
	}

	return s.resolve(
		`SELECT symbol_id FROM symbol_dim WHERE ticker = ?`,
		`INSERT INTO symbol_dim (ticker, asset_class, name, sector) VALUES (?, ?, ?, ?)`,
		[]any{ticker},
		[]any{ticker, assetClass, name, sector},
	)
}

// ResolveTrader returns the surrogate id for a trader name, creating the
// trader_dim row if new.
func (s *Store) ResolveTrader(name, team string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, &ValidationError{Field: "trader_name", Reason: "empty"}
	}

	return s.resolve(
		`SELECT trader_id FROM trader_dim WHERE trader_name = ?`,
		`INSERT INTO trader_dim (trader_name, team) VALUES (?, ?)`,
		[]any{name},
		[]any{name, team},
	)
}

// ResolveStrategy returns the surrogate id for a strategy name, creating
// the strategy_dim row if new.
func (s *Store) ResolveStrategy(name, description, riskProfile string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, &ValidationError{Field: "strategy_name", Reason: "empty"}
	}

	return s.resolve(
		`SELECT strategy_id FROM strategy_dim WHERE strategy_name = ?`,
		`INSERT INTO strategy_dim (strategy_name, description, risk_profile) VALUES (?, ?, ?)`,
		[]any{name},
		[]any{name, description, riskProfile},
	)
}

// resolve is the lookup-or-insert shared by all three dimensions. The
// store mutex covers the SELECT and the INSERT together so two loads
// racing on the same natural key cannot create duplicate rows.
func (s *Store) resolve(selectQ, insertQ string, key, attrs []any) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var id int64
	err := s.db.QueryRow(selectQ, key...).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, err
	}

	res, err := s.db.Exec(insertQ, attrs...)
	if err != nil {
		return 0, fmt.Errorf("insert dimension: %w", err)
	}
	return res.LastInsertId()
}

// Symbols lists the symbol dimension ordered by ticker.
func (s *Store) Symbols() ([]Symbol, error) {
	rows, err := s.db.Query(`
		SELECT symbol_id, ticker, asset_class, name, sector
		FROM symbol_dim
		ORDER BY ticker ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Symbol
	for rows.Next() {
		var sym Symbol
		if err := rows.Scan(&sym.ID, &sym.Ticker, &sym.AssetClass, &sym.Name, &sym.Sector); err != nil {
			return nil, err
		}
		out = append(out, sym)
	}
	return out, rows.Err()
}

// Traders lists the trader dimension ordered by name.
func (s *Store) Traders() ([]Trader, error) {
	rows, err := s.db.Query(`
		SELECT trader_id, trader_name, team
		FROM trader_dim
		ORDER BY trader_name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Trader
	for rows.Next() {
		var tr Trader
		if err := rows.Scan(&tr.ID, &tr.Name, &tr.Team); err != nil {
			return nil, err
		}
		out = append(out, tr)
	}
	return out, rows.Err()
}

// Strategies lists the strategy dimension ordered by name.
func (s *Store) Strategies() ([]Strategy, error) {
	rows, err := s.db.Query(`
		SELECT strategy_id, strategy_name, description, risk_profile
		FROM strategy_dim
		ORDER BY strategy_name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Strategy
	for rows.Next() {
		var st Strategy
		if err := rows.Scan(&st.ID, &st.Name, &st.Description, &st.RiskProfile); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

// StrategyByID returns a single strategy row or ErrNotFound.
func (s *Store) StrategyByID(id int64) (Strategy, error) {
	var st Strategy
	err := s.db.QueryRow(`
		SELECT strategy_id, strategy_name, description, risk_profile
		FROM strategy_dim
		WHERE strategy_id = ?`, id).
		Scan(&st.ID, &st.Name, &st.Description, &st.RiskProfile)
	if err == sql.ErrNoRows {
		return Strategy{}, fmt.Errorf("strategy %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return Strategy{}, err
	}
	return st, nil
}
