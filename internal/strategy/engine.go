package strategy

import (
	"errors"
	"fmt"
	"math"

	"TrendSentry/internal/model"
)

// Decision-tree constants. Entry levels in the primary BUY branch are
// rounded to 2 decimals; the fallback and exit branches price off the
// raw close, as the strategy has always done.
const (
	rsiOverbought   = 70.0
	takeProfitRet   = 0.03
	stopLossRet     = -0.02
	entryDiscount   = 0.995
	exitMarkup      = 1.005
	exitDiscount    = 0.995
	fallbackStopPct = 0.98
	fallbackTgtPct  = 1.03
	atrStopMult     = 2.0
	atrTargetMult   = 3.0
)

// ErrMissingIndicator signals that the latest row lacks a derived field
// the decision tree reads. Callers must enrich with a full warm-up
// window before evaluating.
var ErrMissingIndicator = errors.New("required indicator missing from latest row")

// Evaluate applies the FLAT/LONG decision tree to the latest enriched
// row and the current position. Pure function: it never mutates state;
// the position tracker applies the returned decision separately, so a
// failure here leaves the position untouched.
func Evaluate(latest model.IndicatorRow, state model.PositionState) (*model.Decision, error) {
	if !latest.Ready() {
		return nil, fmt.Errorf("%w: row %s", ErrMissingIndicator, latest.Time.Format("2006-01-02"))
	}
	if state.Position == model.PositionLong {
		return evaluateLong(latest, state), nil
	}
	return evaluateFlat(latest), nil
}

// evaluateFlat decides entries. trend_up requires a strict MA5 > MA20 >
// MA60 alignment. Note the fallback branch can emit SELL with no
// position to close; that advisory is preserved as-is.
func evaluateFlat(r model.IndicatorRow) *model.Decision {
	trendUp := r.MA5 > r.MA20 && r.MA20 > r.MA60

	if trendUp && r.RSI < rsiOverbought {
		entry := round2(math.Min(r.Close*entryDiscount, r.S1))
		return &model.Decision{
			Action:   model.ActionBuy,
			Price:    entry,
			StopLoss: round2(entry - atrStopMult*r.ATR),
			Target:   round2(entry + atrTargetMult*r.ATR),
			Reason:   "trend entry",
		}
	}

	action := model.ActionSell
	reason := "no uptrend"
	if trendUp {
		action = model.ActionBuy
		reason = "trend follow, RSI overbought"
	}
	return &model.Decision{
		Action:   action,
		Price:    r.Close,
		StopLoss: r.Close * fallbackStopPct,
		Target:   r.Close * fallbackTgtPct,
		Reason:   reason,
	}
}

// evaluateLong decides exits based on the return since entry.
func evaluateLong(r model.IndicatorRow, state model.PositionState) *model.Decision {
	ret := (r.Close - state.LastTradePrice) / state.LastTradePrice
	switch {
	case ret > takeProfitRet || r.RSI > rsiOverbought:
		return &model.Decision{
			Action: model.ActionSell,
			Price:  r.Close * exitMarkup,
			Reason: "take-profit/overbought",
		}
	case ret < stopLossRet:
		return &model.Decision{
			Action: model.ActionSell,
			Price:  r.Close * exitDiscount,
			Reason: "stop-loss",
		}
	default:
		return &model.Decision{
			Action: model.ActionHold,
			Price:  r.Close,
			Reason: "hold position",
		}
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
