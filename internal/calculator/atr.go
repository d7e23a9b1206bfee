package calculator

import (
	"errors"
	"math"

	"TrendSentry/internal/model"
)

// CalculateRangeATR returns the trailing range over the last `period` bars:
// max(high) - min(low). The strategy deliberately uses this range proxy
// instead of Wilder's true range; keep it that way.
func CalculateRangeATR(bars []model.OHLCV, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(bars) < period {
		return 0, errors.New("not enough bars for range calculation")
	}
	high := math.Inf(-1)
	low := math.Inf(1)
	for i := len(bars) - period; i < len(bars); i++ {
		if bars[i].High > high {
			high = bars[i].High
		}
		if bars[i].Low < low {
			low = bars[i].Low
		}
	}
	return high - low, nil
}
