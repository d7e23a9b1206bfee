package calculator

import "TrendSentry/internal/model"

// PivotLevels returns the classic floor-trader pivot point and the
// first support/resistance levels for a single bar.
func PivotLevels(b model.OHLCV) (pivot, s1, r1 float64) {
	pivot = (b.High + b.Low + b.Close) / 3
	s1 = 2*pivot - b.High
	r1 = 2*pivot - b.Low
	return pivot, s1, r1
}
