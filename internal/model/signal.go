package model

import "time"

// Action is the trade instruction emitted by the strategy engine.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
	ActionHold Action = "HOLD"
)

// Decision is the output of one strategy cycle. It is produced fresh
// each cycle and never mutated. StopLoss and Target are zero when the
// branch that produced the decision does not set them.
type Decision struct {
	Action   Action
	Price    float64
	StopLoss float64
	Target   float64
	Reason   string
}

// TradeLogEntry records one applied decision together with the
// position that was in effect before it was applied.
type TradeLogEntry struct {
	ID             string
	Time           time.Time
	Action         Action
	Price          float64
	PositionBefore Position
}
