package model

import "time"

// OHLCV represents a single daily candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PriceSeries holds the raw price data collected for one strategy cycle.
type PriceSeries struct {
	Symbol      string
	IndexSymbol string
	StockBars   []OHLCV
	IndexBars   []OHLCV
	FetchedAt   time.Time
}
