package model

import "math"

// IndicatorRow is a daily bar enriched with derived indicator values.
// A derived field is NaN until enough preceding bars exist for its
// rolling window; Pivot/S1/R1 only need the bar itself.
type IndicatorRow struct {
	OHLCV
	MA5   float64
	MA20  float64
	MA60  float64
	ATR   float64 // trailing 14-bar high-low range, not Wilder's true range
	RSI   float64
	Pivot float64
	S1    float64
	R1    float64
}

// Ready reports whether every field the signal engine reads is defined.
// With daily bars this needs the full 60-bar MA60 warm-up.
func (r IndicatorRow) Ready() bool {
	for _, v := range []float64{r.MA5, r.MA20, r.MA60, r.ATR, r.RSI} {
		if math.IsNaN(v) {
			return false
		}
	}
	return true
}
