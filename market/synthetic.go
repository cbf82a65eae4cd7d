// market/synthetic.go
package market

import (
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
)

// SyntheticSource generates a deterministic random walk of daily bars.
// It stands in for a live market-data feed when seeding demo databases
// and test fixtures: the same seed always produces the same series.
type SyntheticSource struct {
	Seed         int64
	StartAt      decimal.Decimal // first close; defaults to 100
	SkipWeekends bool
}

func NewSyntheticSource(seed int64) *SyntheticSource {
	return &SyntheticSource{Seed: seed, StartAt: decimal.NewFromInt(100), SkipWeekends: true}
}

func (s *SyntheticSource) Bars(ticker string, from, to time.Time) ([]Bar, error) {
	// Seed per ticker so each symbol walks independently but
	// reproducibly.
	var tickerSum int64
	for _, c := range ticker {
		tickerSum += int64(c)
	}
	rng := rand.New(rand.NewSource(s.Seed + tickerSum))

	price := s.StartAt
	if price.Sign() <= 0 {
		price = decimal.NewFromInt(100)
	}

	var bars []Bar
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if s.SkipWeekends && (d.Weekday() == time.Saturday || d.Weekday() == time.Sunday) {
			continue
		}

		// Daily move within roughly +/-2%, in basis points to keep
		// the arithmetic exact.
		moveBps := decimal.NewFromInt(int64(rng.Intn(401) - 200))
		factor := decimal.NewFromInt(1).Add(moveBps.Div(decimal.NewFromInt(10000)))
		closePx := price.Mul(factor).Round(4)

		high := price
		low := closePx
		if closePx.GreaterThan(price) {
			high, low = closePx, price
		}

		bars = append(bars, Bar{
			Ticker: ticker,
			Date:   d,
			Open:   price,
			High:   high,
			Low:    low,
			Close:  closePx,
			Volume: int64(rng.Intn(900_000) + 100_000),
		})
		price = closePx
	}
	return bars, nil
}
