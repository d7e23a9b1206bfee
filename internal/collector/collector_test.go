package collector

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TrendSentry/internal/model"
)

func TestCollect(t *testing.T) {
	stock := GenerateMockBars(10, 120)
	index := GenerateMockBars(3200, 120)
	col := NewCollector(&MockFetcher{StockBars: stock, IndexBars: index}, "sz300935", "sh000001", 60)

	series, err := col.Collect()
	require.NoError(t, err)
	assert.Equal(t, "sz300935", series.Symbol)
	assert.Equal(t, "sh000001", series.IndexSymbol)
	assert.Len(t, series.StockBars, 120)
	assert.Len(t, series.IndexBars, 120)
	assert.False(t, series.FetchedAt.IsZero())
}

func TestCollect_FetchError(t *testing.T) {
	col := NewCollector(&MockFetcher{Err: errors.New("connection refused")}, "sz300935", "sh000001", 60)
	_, err := col.Collect()
	require.ErrorIs(t, err, ErrDataFetch)
}

func TestCollect_EmptyBars(t *testing.T) {
	col := NewCollector(&MockFetcher{StockBars: []model.OHLCV{}}, "sz300935", "sh000001", 60)
	_, err := col.Collect()
	require.ErrorIs(t, err, ErrDataFetch)
}

func TestSortDedupe(t *testing.T) {
	day := func(d int, close float64) model.OHLCV {
		return model.OHLCV{
			Time:  time.Date(2026, 8, d, 0, 0, 0, 0, time.UTC),
			Close: close,
		}
	}
	bars := []model.OHLCV{day(3, 1), day(1, 2), day(2, 3), day(2, 4)}

	out := sortDedupe(bars)
	require.Len(t, out, 3)
	assert.Equal(t, 2.0, out[0].Close)
	// Duplicate dates collapse, last record wins.
	assert.Equal(t, 4.0, out[1].Close)
	assert.Equal(t, 1.0, out[2].Close)
	for i := 1; i < len(out); i++ {
		assert.True(t, out[i-1].Time.Before(out[i].Time))
	}
}

func TestIsIndexSymbol(t *testing.T) {
	assert.True(t, IsIndexSymbol("sh000001"))
	assert.True(t, IsIndexSymbol("sz399001"))
	assert.False(t, IsIndexSymbol("sz300935"))
	assert.False(t, IsIndexSymbol("sh600519"))
}

func TestYahooSymbolMapping(t *testing.T) {
	assert.Equal(t, "300935.SZ", yahooSymbol("sz300935"))
	assert.Equal(t, "000001.SS", yahooSymbol("sh000001"))
	assert.Equal(t, "AAPL", yahooSymbol("AAPL"))
}
