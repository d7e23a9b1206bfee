package collector

import (
	"errors"
	"fmt"
	"time"

	"TrendSentry/internal/model"
)

// ErrDataFetch wraps provider failures: unreachable source, empty or
// malformed data. The core does not retry; the error surfaces to the
// cycle runner.
var ErrDataFetch = errors.New("market data fetch failed")

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	StockBars []model.OHLCV
	IndexBars []model.OHLCV
	Err       error
	isIndex   func(string) bool
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(symbol string, days int) ([]model.OHLCV, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.isIndex == nil {
		m.isIndex = IsIndexSymbol
	}
	if m.isIndex(symbol) {
		if m.IndexBars != nil {
			return m.IndexBars, nil
		}
		return GenerateMockBars(3200, days), nil
	}
	if m.StockBars != nil {
		return m.StockBars, nil
	}
	return GenerateMockBars(10, days), nil
}

// GenerateMockBars builds a gently rising daily series around basePrice.
func GenerateMockBars(basePrice float64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

// Collector fetches stock and index history for one strategy cycle.
type Collector struct {
	Fetcher     Fetcher
	Symbol      string
	IndexSymbol string
	Lookback    int // trading days of history the strategy evaluates
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, symbol, indexSymbol string, lookback int) *Collector {
	return &Collector{Fetcher: fetcher, Symbol: symbol, IndexSymbol: indexSymbol, Lookback: lookback}
}

// Collect fetches daily bars for the stock and the benchmark index.
// The request window is twice the lookback to absorb weekends and
// holidays, matching the double calendar window the strategy has
// always used.
func (c *Collector) Collect() (*model.PriceSeries, error) {
	window := c.Lookback * 2

	stockBars, err := c.Fetcher.FetchDailyBars(c.Symbol, window)
	if err != nil {
		return nil, fmt.Errorf("%w: stock %s: %v", ErrDataFetch, c.Symbol, err)
	}
	if len(stockBars) == 0 {
		return nil, fmt.Errorf("%w: stock %s: provider returned no bars", ErrDataFetch, c.Symbol)
	}

	indexBars, err := c.Fetcher.FetchDailyBars(c.IndexSymbol, window)
	if err != nil {
		return nil, fmt.Errorf("%w: index %s: %v", ErrDataFetch, c.IndexSymbol, err)
	}
	if len(indexBars) == 0 {
		return nil, fmt.Errorf("%w: index %s: provider returned no bars", ErrDataFetch, c.IndexSymbol)
	}

	return &model.PriceSeries{
		Symbol:      c.Symbol,
		IndexSymbol: c.IndexSymbol,
		StockBars:   stockBars,
		IndexBars:   indexBars,
		FetchedAt:   time.Now(),
	}, nil
}
