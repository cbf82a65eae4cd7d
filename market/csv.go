// market/csv.go
package market

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CSVSource reads daily bars from per-ticker CSV files in a directory.
// Each file is named <TICKER>.csv with a header row and columns
// date,open,high,low,close,volume. Dates use the 2006-01-02 layout.
type CSVSource struct {
	Dir string
}

func NewCSVSource(dir string) *CSVSource {
	return &CSVSource{Dir: dir}
}

func (s *CSVSource) Bars(ticker string, from, to time.Time) ([]Bar, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	path := filepath.Join(s.Dir, ticker+".csv")

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bars for %s: %w", ticker, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read bars for %s: %w", ticker, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var bars []Bar
	for i, rec := range records[1:] { // skip header
		if len(rec) != 6 {
			return nil, fmt.Errorf("%s row %d: want 6 columns, got %d", ticker, i+2, len(rec))
		}

		date, err := time.Parse("2006-01-02", rec[0])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: bad date %q: %w", ticker, i+2, rec[0], err)
		}
		if date.Before(from) || date.After(to) {
			continue
		}

		var prices [4]decimal.Decimal
		for j, field := range rec[1:5] {
			prices[j], err = decimal.NewFromString(field)
			if err != nil {
				return nil, fmt.Errorf("%s row %d: bad price %q: %w", ticker, i+2, field, err)
			}
		}
		volume, err := strconv.ParseInt(rec[5], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: bad volume %q: %w", ticker, i+2, rec[5], err)
		}

		bars = append(bars, Bar{
			Ticker: ticker,
			Date:   date,
			Open:   prices[0],
			High:   prices[1],
			Low:    prices[2],
			Close:  prices[3],
			Volume: volume,
		})
	}
	return bars, nil
}
