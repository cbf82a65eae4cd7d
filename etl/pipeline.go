// etl/pipeline.go
package etl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rustyeddy/tradedash/market"
	"github.com/rustyeddy/tradedash/pkg/id"
	"github.com/rustyeddy/tradedash/warehouse"
)

// SymbolMeta carries optional display attributes for a ticker. Missing
// entries default to the ticker itself with an Unknown sector.
type SymbolMeta struct {
	Name   string
	Sector string
}

// DataSourceError reports a bar source failure. The load aborts for the
// affected ticker only and continues with the rest.
type DataSourceError struct {
	Ticker string
	Err    error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("source failed for %s: %v", e.Ticker, e.Err)
}

func (e *DataSourceError) Unwrap() error { return e.Err }

// LoadError is one skipped or aborted record in a load summary.
type LoadError struct {
	Ticker string `json:"ticker"`
	Date   string `json:"date,omitempty"`
	Reason string `json:"reason"`
}

// Summary is the result of one Load call. Every skip and abort is
// counted here; the pipeline never swallows a record silently.
type Summary struct {
	LoadID        string      `json:"load_id"`
	FactsInserted int         `json:"facts_inserted"`
	FactsSkipped  int         `json:"facts_skipped"`
	Errors        []LoadError `json:"errors"`
}

// Pipeline turns raw OHLCV bars into trade facts. It owns no database
// state of its own: dimensions go through the store's registry and
// every fact is inserted only after all three dimension ids resolved,
// so a dangling reference cannot be constructed.
type Pipeline struct {
	store  *warehouse.Store
	source market.Source
	policy Policy
	meta   map[string]SymbolMeta
	log    *logrus.Logger
}

func NewPipeline(store *warehouse.Store, source market.Source, policy Policy, log *logrus.Logger) (*Pipeline, error) {
	if len(policy.Traders) == 0 {
		return nil, fmt.Errorf("policy: at least one trader required")
	}
	if len(policy.Strategies) == 0 {
		return nil, fmt.Errorf("policy: at least one strategy required")
	}
	if policy.LotSize <= 0 {
		return nil, fmt.Errorf("policy: lot size must be positive")
	}
	if log == nil {
		log = logrus.New()
	}
	return &Pipeline{
		store:  store,
		source: source,
		policy: policy,
		meta:   make(map[string]SymbolMeta),
		log:    log,
	}, nil
}

// SetSymbolMeta registers display attributes used when a ticker's
// dimension row is first created.
func (p *Pipeline) SetSymbolMeta(ticker string, meta SymbolMeta) {
	p.meta[ticker] = meta
}

// Load runs one ETL batch over the given tickers and date range. It
// registers the trader/strategy roster, then per bar resolves the
// symbol, assigns a trader and strategy, derives the trade and inserts
// the fact. Re-loading overlapping data is idempotent: rows already
// present under their natural identity are counted as skips.
func (p *Pipeline) Load(ctx context.Context, tickers []string, from, to time.Time) (Summary, error) {
	sum := Summary{LoadID: id.New()}
	started := time.Now().UTC()

	traderIDs, strategyIDs, err := p.registerRoster()
	if err != nil {
		return sum, err
	}
	assign := newAssigner(p.policy, traderIDs, strategyIDs)

	for _, ticker := range tickers {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		if err := p.loadTicker(ticker, from, to, assign, &sum); err != nil {
			return sum, err
		}
	}

	run := warehouse.LoadRun{
		LoadID:        sum.LoadID,
		StartedAt:     started,
		FinishedAt:    time.Now().UTC(),
		FactsInserted: sum.FactsInserted,
		FactsSkipped:  sum.FactsSkipped,
		ErrorCount:    len(sum.Errors),
	}
	if err := p.store.RecordLoadRun(run); err != nil {
		return sum, fmt.Errorf("record load run: %w", err)
	}

	p.log.WithFields(logrus.Fields{
		"load_id":  sum.LoadID,
		"inserted": sum.FactsInserted,
		"skipped":  sum.FactsSkipped,
		"errors":   len(sum.Errors),
	}).Info("load complete")

	return sum, nil
}

// registerRoster resolves the configured traders and strategies up
// front so every assignment draws from existing dimension rows.
func (p *Pipeline) registerRoster() (traderIDs, strategyIDs []int64, err error) {
	for _, t := range p.policy.Traders {
		tid, err := p.store.ResolveTrader(t.Name, t.Team)
		if err != nil {
			return nil, nil, fmt.Errorf("register trader %q: %w", t.Name, err)
		}
		traderIDs = append(traderIDs, tid)
	}
	for _, s := range p.policy.Strategies {
		sid, err := p.store.ResolveStrategy(s.Name, s.Description, s.RiskProfile)
		if err != nil {
			return nil, nil, fmt.Errorf("register strategy %q: %w", s.Name, err)
		}
		strategyIDs = append(strategyIDs, sid)
	}
	return traderIDs, strategyIDs, nil
}

func (p *Pipeline) loadTicker(ticker string, from, to time.Time, assign *assigner, sum *Summary) error {
	meta := p.meta[ticker]
	if meta.Name == "" {
		meta.Name = ticker
	}
	if meta.Sector == "" {
		meta.Sector = "Unknown"
	}

	symbolID, err := p.store.ResolveSymbol(ticker, market.AssetClassFor(ticker), meta.Name, meta.Sector)
	if err != nil {
		var ve *warehouse.ValidationError
		if errors.As(err, &ve) {
			sum.Errors = append(sum.Errors, LoadError{Ticker: ticker, Reason: err.Error()})
			p.log.WithField("ticker", ticker).Warn("unresolvable ticker, skipping")
			return nil
		}
		return err
	}

	bars, err := p.source.Bars(ticker, from, to)
	if err != nil {
		srcErr := &DataSourceError{Ticker: ticker, Err: err}
		sum.Errors = append(sum.Errors, LoadError{Ticker: ticker, Reason: srcErr.Error()})
		p.log.WithField("ticker", ticker).WithError(err).Warn("source failed, skipping ticker")
		return nil
	}

	for _, bar := range bars {
		price := bar.Price(p.policy.PriceField)
		date := bar.Date.Format(warehouse.DateLayout)

		if price.Sign() <= 0 {
			sum.FactsSkipped++
			sum.Errors = append(sum.Errors, LoadError{
				Ticker: ticker, Date: date, Reason: "non-positive price",
			})
			continue
		}

		traderID, strategyID := assign.pick()
		side := assign.side(ticker)

		quantity := p.policy.LotSize
		if side == warehouse.TradeSell {
			quantity = -quantity
		}

		_, err := p.store.InsertFact(warehouse.Fact{
			SymbolID:   symbolID,
			TraderID:   traderID,
			StrategyID: strategyID,
			TradeDate:  bar.Date,
			Quantity:   quantity,
			Price:      price,
			TradeType:  side,
			LoadID:     sum.LoadID,
		})
		switch {
		case err == nil:
			sum.FactsInserted++
		case errors.Is(err, warehouse.ErrDuplicateFact):
			sum.FactsSkipped++
			sum.Errors = append(sum.Errors, LoadError{
				Ticker: ticker, Date: date, Reason: "duplicate fact",
			})
		default:
			var ve *warehouse.ValidationError
			if errors.As(err, &ve) {
				sum.FactsSkipped++
				sum.Errors = append(sum.Errors, LoadError{
					Ticker: ticker, Date: date, Reason: err.Error(),
				})
				continue
			}
			// ReferentialError and driver faults are not per-record
			// conditions; abort the load.
			return err
		}
	}

	p.log.WithFields(logrus.Fields{
		"ticker": ticker,
		"bars":   len(bars),
	}).Debug("ticker loaded")

	return nil
}
