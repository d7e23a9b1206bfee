package model

import "time"

// Position is the holding state of the single tracked asset.
type Position string

const (
	PositionFlat Position = "FLAT"
	PositionLong Position = "LONG"
)

// PositionState tracks the FLAT/LONG position across strategy cycles.
// LastTradePrice is non-zero iff Position is LONG; a SELL always
// clears it.
type PositionState struct {
	Position       Position  `json:"position"`
	LastTradePrice float64   `json:"last_trade_price"`
	UpdatedAt      time.Time `json:"updated_at"`
}
