// warehouse/schema.go
package warehouse

const Schema = `
CREATE TABLE IF NOT EXISTS symbol_dim (
	symbol_id INTEGER PRIMARY KEY AUTOINCREMENT,
	ticker TEXT NOT NULL UNIQUE,
	asset_class TEXT NOT NULL,
	name TEXT NOT NULL,
	sector TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS trader_dim (
	trader_id INTEGER PRIMARY KEY AUTOINCREMENT,
	trader_name TEXT NOT NULL UNIQUE,
	team TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS strategy_dim (
	strategy_id INTEGER PRIMARY KEY AUTOINCREMENT,
	strategy_name TEXT NOT NULL UNIQUE,
	description TEXT NOT NULL,
	risk_profile TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS trade_facts (
	trade_id INTEGER PRIMARY KEY AUTOINCREMENT,
	symbol_id INTEGER NOT NULL REFERENCES symbol_dim(symbol_id),
	trader_id INTEGER NOT NULL REFERENCES trader_dim(trader_id),
	strategy_id INTEGER NOT NULL REFERENCES strategy_dim(strategy_id),
	trade_date TEXT NOT NULL,
	quantity INTEGER NOT NULL,
	price TEXT NOT NULL,
	notional_value TEXT NOT NULL,
	trade_type TEXT NOT NULL,
	load_id TEXT NOT NULL,
	UNIQUE(symbol_id, trader_id, strategy_id, trade_date)
);

CREATE INDEX IF NOT EXISTS idx_facts_strategy_date ON trade_facts(strategy_id, trade_date);
CREATE INDEX IF NOT EXISTS idx_facts_date ON trade_facts(trade_date);

CREATE TABLE IF NOT EXISTS load_runs (
	load_id TEXT PRIMARY KEY,
	started_at DATETIME NOT NULL,
	finished_at DATETIME NOT NULL,
	facts_inserted INTEGER NOT NULL,
	facts_skipped INTEGER NOT NULL,
	error_count INTEGER NOT NULL
);
`
