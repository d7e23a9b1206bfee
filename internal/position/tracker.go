package position

import (
	"log"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"TrendSentry/internal/model"
)

// Tracker owns the single FLAT/LONG position and the in-memory trade
// log. The mutex guards the Telegram command path racing the cron path;
// a strategy cycle itself is strictly sequential.
type Tracker struct {
	mu       sync.Mutex
	state    *model.PositionState
	tradeLog []model.TradeLogEntry
	filePath string
}

// NewTracker creates a Tracker, loading position state from disk so the
// position survives restarts. An empty filePath keeps state in memory
// only (tests, dry runs).
func NewTracker(filePath string) (*Tracker, error) {
	state := &model.PositionState{Position: model.PositionFlat}
	if filePath != "" {
		loaded, err := LoadState(filePath)
		if err != nil {
			return nil, err
		}
		if loaded.Position != "" {
			state = loaded
		}
	}
	t := &Tracker{state: state, filePath: filePath}
	if err := t.save(); err != nil {
		return nil, err
	}
	return t, nil
}

// GetState returns a copy of the current position state.
func (t *Tracker) GetState() model.PositionState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return *t.state
}

// Apply mutates the position according to the decision and appends
// exactly one trade log entry capturing the pre-mutation position,
// whatever the action.
//   - BUY sets LONG and records the decision price as the last trade
//     price, even when already LONG (re-entry overwrites the entry
//     price; preserved strategy behavior).
//   - SELL sets FLAT and clears the last trade price, even when
//     already FLAT.
//   - HOLD changes nothing.
func (t *Tracker) Apply(d *model.Decision) model.TradeLogEntry {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry := model.TradeLogEntry{
		ID:             ulid.Make().String(),
		Time:           time.Now(),
		Action:         d.Action,
		Price:          d.Price,
		PositionBefore: t.state.Position,
	}
	t.tradeLog = append(t.tradeLog, entry)

	switch d.Action {
	case model.ActionBuy:
		t.state.Position = model.PositionLong
		t.state.LastTradePrice = d.Price
	case model.ActionSell:
		t.state.Position = model.PositionFlat
		t.state.LastTradePrice = 0
	}

	if err := t.save(); err != nil {
		log.Printf("[ERROR] failed to save position state: %v", err)
	}
	return entry
}

// Log returns a copy of the full in-memory trade log.
func (t *Tracker) Log() []model.TradeLogEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]model.TradeLogEntry, len(t.tradeLog))
	copy(out, t.tradeLog)
	return out
}

// LastN returns up to the n most recent trade log entries.
func (t *Tracker) LastN(n int) []model.TradeLogEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	start := len(t.tradeLog) - n
	if start < 0 {
		start = 0
	}
	out := make([]model.TradeLogEntry, len(t.tradeLog)-start)
	copy(out, t.tradeLog[start:])
	return out
}

func (t *Tracker) save() error {
	if t.filePath == "" {
		return nil
	}
	return SaveState(t.filePath, t.state)
}
