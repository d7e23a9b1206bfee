package calculator

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TrendSentry/internal/model"
)

func makeBars(closes ...float64) []model.OHLCV {
	bars := make([]model.OHLCV, len(closes))
	for i, c := range closes {
		bars[i] = model.OHLCV{
			Time:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			Open:  c,
			High:  c + 1,
			Low:   c - 1,
			Close: c,
		}
	}
	return bars
}

func TestCalculateSMA(t *testing.T) {
	sma, err := CalculateSMA([]float64{1, 2, 3, 4, 5}, 5)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, sma, 1e-9)

	// Only the trailing window counts.
	sma, err = CalculateSMA([]float64{100, 1, 2, 3}, 3)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, sma, 1e-9)

	_, err = CalculateSMA([]float64{1, 2}, 3)
	assert.Error(t, err)

	_, err = CalculateSMA([]float64{1, 2}, 0)
	assert.Error(t, err)
}

func TestMASeries(t *testing.T) {
	out, err := MASeries([]float64{1, 2, 3, 4, 5}, 3)
	require.NoError(t, err)
	require.Len(t, out, 5)

	assert.True(t, math.IsNaN(out[0]))
	assert.True(t, math.IsNaN(out[1]))
	assert.InDelta(t, 2.0, out[2], 1e-9)
	assert.InDelta(t, 3.0, out[3], 1e-9)
	assert.InDelta(t, 4.0, out[4], 1e-9)
}

func TestCalculateRangeATR(t *testing.T) {
	bars := []model.OHLCV{
		{High: 11, Low: 9},
		{High: 14, Low: 10},
		{High: 12, Low: 7},
	}
	// max high 14, min low 7 over the full window
	atr, err := CalculateRangeATR(bars, 3)
	require.NoError(t, err)
	assert.InDelta(t, 7.0, atr, 1e-9)

	// Trailing window only: the first bar falls out.
	atr, err = CalculateRangeATR(bars, 2)
	require.NoError(t, err)
	assert.InDelta(t, 7.0, atr, 1e-9)

	_, err = CalculateRangeATR(bars[:1], 2)
	assert.Error(t, err)
}

func TestRSISeries_ZeroLossConvention(t *testing.T) {
	// Strictly rising closes: average loss stays zero, RSI must resolve
	// to 100 instead of dividing by zero.
	out, err := RSISeries([]float64{1, 2, 3, 4, 5, 6}, 14)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(out[0]))
	for i := 1; i < len(out); i++ {
		assert.Equal(t, 100.0, out[i], "index %d", i)
	}
}

func TestRSISeries_AllLosses(t *testing.T) {
	out, err := RSISeries([]float64{6, 5, 4, 3, 2, 1}, 14)
	require.NoError(t, err)
	for i := 1; i < len(out); i++ {
		assert.Equal(t, 0.0, out[i], "index %d", i)
	}
}

func TestRSISeries_Bounded(t *testing.T) {
	closes := []float64{10, 11, 10.5, 12, 11.2, 11.9, 13, 12.1, 12.8, 12.2,
		13.5, 13.1, 14, 13.2, 14.5, 14.1, 15, 14.2, 15.5, 15.1}
	out, err := RSISeries(closes, 14)
	require.NoError(t, err)
	for i := 1; i < len(out); i++ {
		assert.GreaterOrEqual(t, out[i], 0.0, "index %d", i)
		assert.LessOrEqual(t, out[i], 100.0, "index %d", i)
	}
}

func TestPivotLevels(t *testing.T) {
	pivot, s1, r1 := PivotLevels(model.OHLCV{High: 12, Low: 8, Close: 10})
	assert.InDelta(t, 10.0, pivot, 1e-9)
	assert.InDelta(t, 8.0, s1, 1e-9)
	assert.InDelta(t, 12.0, r1, 1e-9)
}

func TestEnrich_WarmupBoundaries(t *testing.T) {
	closes := make([]float64, 120)
	for i := range closes {
		closes[i] = 10 + math.Sin(float64(i)/5)
	}
	bars := makeBars(closes...)

	rows, err := Enrich(bars)
	require.NoError(t, err)
	require.Len(t, rows, len(bars))

	// MA windows
	assert.True(t, math.IsNaN(rows[3].MA5))
	assert.False(t, math.IsNaN(rows[4].MA5))
	assert.True(t, math.IsNaN(rows[18].MA20))
	assert.False(t, math.IsNaN(rows[19].MA20))
	assert.True(t, math.IsNaN(rows[58].MA60))
	assert.False(t, math.IsNaN(rows[59].MA60))

	// ATR needs 14 bars, RSI one prior close.
	assert.True(t, math.IsNaN(rows[12].ATR))
	assert.False(t, math.IsNaN(rows[13].ATR))
	assert.True(t, math.IsNaN(rows[0].RSI))
	assert.False(t, math.IsNaN(rows[1].RSI))

	// Pivot levels exist from the first bar.
	assert.False(t, math.IsNaN(rows[0].Pivot))

	// Full readiness follows the longest window.
	assert.False(t, rows[58].Ready())
	assert.True(t, rows[59].Ready())
}

func TestEnrich_NoLookAhead(t *testing.T) {
	closes := make([]float64, 100)
	for i := range closes {
		closes[i] = 10 + math.Cos(float64(i)/7)*2
	}
	bars := makeBars(closes...)

	full, err := Enrich(bars)
	require.NoError(t, err)
	prefix, err := Enrich(bars[:80])
	require.NoError(t, err)

	// A row's derived values depend only on bars at or before it, so
	// truncating the future must not change row 79.
	a, b := full[79], prefix[79]
	assert.Equal(t, a.MA5, b.MA5)
	assert.Equal(t, a.MA20, b.MA20)
	assert.Equal(t, a.MA60, b.MA60)
	assert.Equal(t, a.ATR, b.ATR)
	assert.Equal(t, a.RSI, b.RSI)
	assert.Equal(t, a.S1, b.S1)
}

func TestEnrich_Empty(t *testing.T) {
	_, err := Enrich(nil)
	assert.Error(t, err)
}

func TestCheckWarmup(t *testing.T) {
	rows := make([]model.IndicatorRow, MinBars-1)
	err := CheckWarmup(rows)
	require.ErrorIs(t, err, ErrInsufficientHistory)

	rows = append(rows, model.IndicatorRow{})
	assert.NoError(t, CheckWarmup(rows))
}
