package collector

import "TrendSentry/internal/model"

// Fetcher defines the interface for fetching market data. Implementations
// must return bars in ascending date order with no duplicate dates; the
// core does not defend against provider-side gaps beyond what rolling
// windows naturally tolerate.
type Fetcher interface {
	FetchDailyBars(symbol string, days int) ([]model.OHLCV, error)
	Name() string
}
