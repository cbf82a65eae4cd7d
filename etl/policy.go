// etl/policy.go
package etl

import (
	"math/rand"

	"github.com/rustyeddy/tradedash/market"
	"github.com/rustyeddy/tradedash/warehouse"
)

// TraderSpec and StrategySpec describe the roster of dimension rows the
// pipeline registers before synthesizing trades. Raw market bars carry
// no trader or strategy, so assignment is a synthesis step.
type TraderSpec struct {
	Name string
	Team string
}

type StrategySpec struct {
	Name        string
	Description string
	RiskProfile string
}

// Policy controls how a bar becomes a trade: which OHLC field prices
// it, the lot size, and the seeded draw of trader and strategy. The
// same seed always produces the same assignments, so fixtures are
// reproducible.
type Policy struct {
	Traders    []TraderSpec
	Strategies []StrategySpec
	LotSize    int64
	Seed       int64
	PriceField market.PriceField
}

// assigner is the per-load state derived from a Policy: the seeded RNG
// and the resolved dimension ids to draw from.
type assigner struct {
	rng         *rand.Rand
	traderIDs   []int64
	strategyIDs []int64
	lastSide    map[string]string // ticker -> last trade_type issued
}

func newAssigner(p Policy, traderIDs, strategyIDs []int64) *assigner {
	return &assigner{
		rng:         rand.New(rand.NewSource(p.Seed)),
		traderIDs:   traderIDs,
		strategyIDs: strategyIDs,
		lastSide:    make(map[string]string),
	}
}

// pick draws a trader and strategy for the next trade.
func (a *assigner) pick() (traderID, strategyID int64) {
	traderID = a.traderIDs[a.rng.Intn(len(a.traderIDs))]
	strategyID = a.strategyIDs[a.rng.Intn(len(a.strategyIDs))]
	return traderID, strategyID
}

// side alternates BUY/SELL per ticker, starting with BUY. Deterministic
// by construction, independent of the RNG.
func (a *assigner) side(ticker string) string {
	next := warehouse.TradeBuy
	if a.lastSide[ticker] == warehouse.TradeBuy {
		next = warehouse.TradeSell
	}
	a.lastSide[ticker] = next
	return next
}
