package calculator

import (
	"errors"
	"fmt"
	"math"

	"TrendSentry/internal/model"
)

// Rolling windows used by the daily strategy.
const (
	ShortMAPeriod = 5
	MidMAPeriod   = 20
	LongMAPeriod  = 60
	ATRPeriod     = 14
	RSIPeriod     = 14
)

// MinBars is the warm-up needed before the latest row carries every
// derived field the signal engine reads (MA60 is the longest window).
const MinBars = LongMAPeriod

// ErrInsufficientHistory signals that fewer bars were supplied than an
// indicator's rolling window requires.
var ErrInsufficientHistory = errors.New("insufficient history for indicator warm-up")

// Enrich computes all derived indicators for an ascending bar sequence
// and returns a same-length row sequence. Each row uses only bars at or
// before it; rows before window fulfillment carry NaN derived values.
// Deterministic, no side effects.
func Enrich(bars []model.OHLCV) ([]model.IndicatorRow, error) {
	if len(bars) == 0 {
		return nil, errors.New("no bars provided")
	}
	closes := extractCloses(bars)

	ma5, err := MASeries(closes, ShortMAPeriod)
	if err != nil {
		return nil, fmt.Errorf("ma5: %w", err)
	}
	ma20, err := MASeries(closes, MidMAPeriod)
	if err != nil {
		return nil, fmt.Errorf("ma20: %w", err)
	}
	ma60, err := MASeries(closes, LongMAPeriod)
	if err != nil {
		return nil, fmt.Errorf("ma60: %w", err)
	}
	rsi, err := RSISeries(closes, RSIPeriod)
	if err != nil {
		return nil, fmt.Errorf("rsi: %w", err)
	}

	rows := make([]model.IndicatorRow, len(bars))
	for i, b := range bars {
		row := model.IndicatorRow{
			OHLCV: b,
			MA5:   ma5[i],
			MA20:  ma20[i],
			MA60:  ma60[i],
			ATR:   math.NaN(),
			RSI:   rsi[i],
		}
		if atr, err := CalculateRangeATR(bars[:i+1], ATRPeriod); err == nil {
			row.ATR = atr
		}
		row.Pivot, row.S1, row.R1 = PivotLevels(b)
		rows[i] = row
	}
	return rows, nil
}

// CheckWarmup verifies the sequence is long enough for the latest row
// to be fully defined.
func CheckWarmup(rows []model.IndicatorRow) error {
	if len(rows) < MinBars {
		return fmt.Errorf("%w: have %d bars, need %d", ErrInsufficientHistory, len(rows), MinBars)
	}
	return nil
}
