package market

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBarsCSV(t *testing.T, dir, ticker, content string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, ticker+".csv"), []byte(content), 0644)
	require.NoError(t, err)
}

func TestCSVSourceReadsBars(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeBarsCSV(t, dir, "AAPL", `date,open,high,low,close,volume
2026-06-01,100,101.5,99.2,100.75,1200000
2026-06-02,100.75,106,100.5,105,1500000
2026-06-04,105,105,97.5,98,900000
`)

	src := NewCSVSource(dir)
	bars, err := src.Bars("aapl", day(2026, 6, 1), day(2026, 6, 30))
	require.NoError(t, err)
	require.Len(t, bars, 3)

	assert.Equal(t, "AAPL", bars[0].Ticker)
	assert.True(t, bars[0].Date.Equal(day(2026, 6, 1)))
	assert.Equal(t, "100.75", bars[0].Close.String())
	assert.Equal(t, int64(1200000), bars[0].Volume)

	// Missing days (2026-06-03) are simply absent, not an error.
	assert.True(t, bars[2].Date.Equal(day(2026, 6, 4)))
}

func TestCSVSourceDateRange(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeBarsCSV(t, dir, "MSFT", `date,open,high,low,close,volume
2026-06-01,300,301,299,300,100
2026-06-02,300,302,298,301,100
2026-06-03,301,303,300,302,100
`)

	src := NewCSVSource(dir)
	bars, err := src.Bars("MSFT", day(2026, 6, 2), day(2026, 6, 2))
	require.NoError(t, err)
	require.Len(t, bars, 1)
	assert.Equal(t, "301", bars[0].Close.String())
}

func TestCSVSourceErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := NewCSVSource(dir)

	_, err := src.Bars("NOPE", day(2026, 6, 1), day(2026, 6, 30))
	assert.Error(t, err, "missing file is a source error")

	writeBarsCSV(t, dir, "BAD", `date,open,high,low,close,volume
not-a-date,1,2,3,4,5
`)
	_, err = src.Bars("BAD", day(2026, 6, 1), day(2026, 6, 30))
	assert.Error(t, err)

	writeBarsCSV(t, dir, "BADPRICE", `date,open,high,low,close,volume
2026-06-01,one,2,3,4,5
`)
	_, err = src.Bars("BADPRICE", day(2026, 6, 1), day(2026, 6, 30))
	assert.Error(t, err)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
