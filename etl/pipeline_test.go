package etl

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/tradedash/market"
	"github.com/rustyeddy/tradedash/warehouse"
)

// stubSource serves canned bars (or a canned failure) per ticker.
type stubSource struct {
	bars map[string][]market.Bar
	errs map[string]error
}

func (s *stubSource) Bars(ticker string, from, to time.Time) ([]market.Bar, error) {
	if err := s.errs[ticker]; err != nil {
		return nil, err
	}
	return s.bars[ticker], nil
}

func newTestStore(t *testing.T) *warehouse.Store {
	t.Helper()

	store, err := warehouse.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testPolicy() Policy {
	return Policy{
		Traders: []TraderSpec{
			{Name: "John Smith", Team: "Alpha Team"},
			{Name: "Jane Doe", Team: "Beta Team"},
		},
		Strategies: []StrategySpec{
			{Name: "Momentum Trading", Description: "Technical", RiskProfile: "High"},
			{Name: "Value Investing", Description: "Fundamental", RiskProfile: "Medium"},
		},
		LotSize:    10,
		Seed:       42,
		PriceField: market.PriceClose,
	}
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func bar(ticker string, d time.Time, closePx int64) market.Bar {
	px := decimal.NewFromInt(closePx)
	return market.Bar{
		Ticker: ticker, Date: d,
		Open: px, High: px, Low: px, Close: px,
		Volume: 1000,
	}
}

func TestLoadThreeBars(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	day := func(d int) time.Time { return time.Date(2026, 6, d, 0, 0, 0, 0, time.UTC) }

	source := &stubSource{bars: map[string][]market.Bar{
		"AAPL": {
			bar("AAPL", day(1), 100),
			bar("AAPL", day(2), 105),
			bar("AAPL", day(3), 98),
		},
	}}

	p, err := NewPipeline(store, source, testPolicy(), quietLogger())
	require.NoError(t, err)
	p.SetSymbolMeta("AAPL", SymbolMeta{Name: "Apple Inc.", Sector: "Technology"})

	sum, err := p.Load(context.Background(), []string{"AAPL"}, day(1), day(3))
	require.NoError(t, err)

	assert.Equal(t, 3, sum.FactsInserted)
	assert.Equal(t, 0, sum.FactsSkipped)
	assert.Empty(t, sum.Errors)
	assert.NotEmpty(t, sum.LoadID)

	// One dimension row for AAPL, regardless of bar count.
	symbols, err := store.Symbols()
	require.NoError(t, err)
	require.Len(t, symbols, 1)
	assert.Equal(t, "AAPL", symbols[0].Ticker)
	assert.Equal(t, warehouse.AssetEquity, symbols[0].AssetClass)
	assert.Equal(t, "Apple Inc.", symbols[0].Name)

	// Direction alternates BUY/SELL starting with BUY, lot size 10:
	// notionals +1000, -1050, +980.
	rows, err := store.ListTrades(warehouse.TradeFilter{Symbol: "AAPL"})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	byDate := map[string]warehouse.TradeRow{}
	for _, r := range rows {
		byDate[r.TradeDate] = r
	}
	assert.True(t, byDate["2026-06-01"].Notional.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, warehouse.TradeBuy, byDate["2026-06-01"].TradeType)
	assert.True(t, byDate["2026-06-02"].Notional.Equal(decimal.NewFromInt(-1050)))
	assert.Equal(t, warehouse.TradeSell, byDate["2026-06-02"].TradeType)
	assert.True(t, byDate["2026-06-03"].Notional.Equal(decimal.NewFromInt(980)))

	report, err := store.SummaryKPIs(warehouse.TradeFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, report.TradeCount)
	assert.True(t, report.TotalNotional.Equal(decimal.NewFromInt(930)), "1000 - 1050 + 980")
}

func TestLoadIsIdempotent(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	day := func(d int) time.Time { return time.Date(2026, 6, d, 0, 0, 0, 0, time.UTC) }

	source := &stubSource{bars: map[string][]market.Bar{
		"AAPL": {bar("AAPL", day(1), 100), bar("AAPL", day(2), 105)},
	}}

	p, err := NewPipeline(store, source, testPolicy(), quietLogger())
	require.NoError(t, err)

	first, err := p.Load(context.Background(), []string{"AAPL"}, day(1), day(2))
	require.NoError(t, err)
	assert.Equal(t, 2, first.FactsInserted)

	// Fresh pipeline, same seed, same input: every fact is already
	// present under its natural identity.
	p2, err := NewPipeline(store, source, testPolicy(), quietLogger())
	require.NoError(t, err)

	second, err := p2.Load(context.Background(), []string{"AAPL"}, day(1), day(2))
	require.NoError(t, err)
	assert.Equal(t, 0, second.FactsInserted)
	assert.Equal(t, 2, second.FactsSkipped)

	n, err := store.FactCount()
	require.NoError(t, err)
	assert.Equal(t, 2, n, "double load must not duplicate facts")

	// Both runs are on the audit trail.
	runs, err := store.LoadRuns()
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestLoadSkipsNonPositivePrices(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	day := func(d int) time.Time { return time.Date(2026, 6, d, 0, 0, 0, 0, time.UTC) }

	zero := market.Bar{Ticker: "AAPL", Date: day(2)} // all prices zero
	source := &stubSource{bars: map[string][]market.Bar{
		"AAPL": {bar("AAPL", day(1), 100), zero, bar("AAPL", day(3), 98)},
	}}

	p, err := NewPipeline(store, source, testPolicy(), quietLogger())
	require.NoError(t, err)

	sum, err := p.Load(context.Background(), []string{"AAPL"}, day(1), day(3))
	require.NoError(t, err)

	assert.Equal(t, 2, sum.FactsInserted)
	assert.Equal(t, 1, sum.FactsSkipped)
	require.Len(t, sum.Errors, 1)
	assert.Equal(t, "AAPL", sum.Errors[0].Ticker)
	assert.Contains(t, sum.Errors[0].Reason, "non-positive price")
}

func TestLoadContinuesPastFailedTicker(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	day := func(d int) time.Time { return time.Date(2026, 6, d, 0, 0, 0, 0, time.UTC) }

	source := &stubSource{
		bars: map[string][]market.Bar{
			"MSFT": {bar("MSFT", day(1), 300)},
		},
		errs: map[string]error{
			"AAPL": errors.New("connection refused"),
		},
	}

	p, err := NewPipeline(store, source, testPolicy(), quietLogger())
	require.NoError(t, err)

	sum, err := p.Load(context.Background(), []string{"AAPL", "MSFT"}, day(1), day(1))
	require.NoError(t, err, "a failed source aborts that ticker only")

	assert.Equal(t, 1, sum.FactsInserted)
	require.Len(t, sum.Errors, 1)
	assert.Equal(t, "AAPL", sum.Errors[0].Ticker)
	assert.Contains(t, sum.Errors[0].Reason, "source failed")
}

func TestLoadRejectsBlankTicker(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	day := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	source := &stubSource{bars: map[string][]market.Bar{}}

	p, err := NewPipeline(store, source, testPolicy(), quietLogger())
	require.NoError(t, err)

	sum, err := p.Load(context.Background(), []string{"   "}, day, day)
	require.NoError(t, err)

	assert.Equal(t, 0, sum.FactsInserted)
	require.Len(t, sum.Errors, 1)
	assert.Contains(t, sum.Errors[0].Reason, "ticker")
}

func TestLoadReferentialIntegrity(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	day := func(d int) time.Time { return time.Date(2026, 6, d, 0, 0, 0, 0, time.UTC) }

	source := &stubSource{bars: map[string][]market.Bar{
		"AAPL":    {bar("AAPL", day(1), 100), bar("AAPL", day(2), 105)},
		"BTC-USD": {bar("BTC-USD", day(1), 30000)},
		"EUR_USD": {bar("EUR_USD", day(1), 1)},
	}}

	p, err := NewPipeline(store, source, testPolicy(), quietLogger())
	require.NoError(t, err)

	sum, err := p.Load(context.Background(), []string{"AAPL", "BTC-USD", "EUR_USD"}, day(1), day(2))
	require.NoError(t, err)
	assert.Equal(t, 4, sum.FactsInserted)

	// Every fact joins against all three dimensions: the denormalized
	// listing returns exactly as many rows as were inserted.
	rows, err := store.ListTrades(warehouse.TradeFilter{})
	require.NoError(t, err)
	assert.Len(t, rows, sum.FactsInserted)

	for _, r := range rows {
		assert.NotEmpty(t, r.Ticker)
		assert.NotEmpty(t, r.Trader)
		assert.NotEmpty(t, r.Strategy)
		assert.True(t, r.Notional.Equal(decimal.NewFromInt(r.Quantity).Mul(r.Price)),
			"notional must equal quantity x price for trade %d", r.TradeID)
	}

	// Asset classes inferred from ticker convention.
	symbols, err := store.Symbols()
	require.NoError(t, err)
	classes := map[string]string{}
	for _, s := range symbols {
		classes[s.Ticker] = s.AssetClass
	}
	assert.Equal(t, warehouse.AssetEquity, classes["AAPL"])
	assert.Equal(t, warehouse.AssetCrypto, classes["BTC-USD"])
	assert.Equal(t, warehouse.AssetForex, classes["EUR_USD"])
}

func TestLoadDeterministicAssignments(t *testing.T) {
	t.Parallel()

	day := func(d int) time.Time { return time.Date(2026, 6, d, 0, 0, 0, 0, time.UTC) }
	source := &stubSource{bars: map[string][]market.Bar{
		"AAPL": {bar("AAPL", day(1), 100), bar("AAPL", day(2), 105), bar("AAPL", day(3), 98)},
	}}

	run := func() []warehouse.TradeRow {
		store := newTestStore(t)
		p, err := NewPipeline(store, source, testPolicy(), quietLogger())
		require.NoError(t, err)
		_, err = p.Load(context.Background(), []string{"AAPL"}, day(1), day(3))
		require.NoError(t, err)

		rows, err := store.ListTrades(warehouse.TradeFilter{})
		require.NoError(t, err)
		return rows
	}

	a, b := run(), run()
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Trader, b[i].Trader, "same seed must assign the same trader")
		assert.Equal(t, a[i].Strategy, b[i].Strategy)
		assert.Equal(t, a[i].TradeType, b[i].TradeType)
	}
}
