package position

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TrendSentry/internal/model"
)

func newTestTracker(t *testing.T) *Tracker {
	t.Helper()
	tr, err := NewTracker("")
	require.NoError(t, err)
	return tr
}

func TestApply_BuySellRoundTrip(t *testing.T) {
	tr := newTestTracker(t)

	initial := tr.GetState()
	require.Equal(t, model.PositionFlat, initial.Position)
	require.Zero(t, initial.LastTradePrice)

	tr.Apply(&model.Decision{Action: model.ActionBuy, Price: 9.80})
	state := tr.GetState()
	assert.Equal(t, model.PositionLong, state.Position)
	assert.Equal(t, 9.80, state.LastTradePrice)

	tr.Apply(&model.Decision{Action: model.ActionSell, Price: 10.40})
	state = tr.GetState()
	assert.Equal(t, model.PositionFlat, state.Position)
	assert.Zero(t, state.LastTradePrice)

	log := tr.Log()
	require.Len(t, log, 2)
	assert.Equal(t, model.PositionFlat, log[0].PositionBefore)
	assert.Equal(t, model.PositionLong, log[1].PositionBefore)
}

func TestApply_HoldIdempotent(t *testing.T) {
	tr := newTestTracker(t)
	tr.Apply(&model.Decision{Action: model.ActionBuy, Price: 10.0})
	before := tr.GetState()

	for i := 0; i < 3; i++ {
		tr.Apply(&model.Decision{Action: model.ActionHold, Price: 10.1})
	}

	after := tr.GetState()
	assert.Equal(t, before.Position, after.Position)
	assert.Equal(t, before.LastTradePrice, after.LastTradePrice)
	// Every apply logs, even HOLD.
	assert.Len(t, tr.Log(), 4)
}

func TestApply_RebuyOverwritesEntryPrice(t *testing.T) {
	tr := newTestTracker(t)
	tr.Apply(&model.Decision{Action: model.ActionBuy, Price: 10.0})
	tr.Apply(&model.Decision{Action: model.ActionBuy, Price: 11.0})

	state := tr.GetState()
	assert.Equal(t, model.PositionLong, state.Position)
	assert.Equal(t, 11.0, state.LastTradePrice)
}

func TestApply_SellWhileFlat(t *testing.T) {
	tr := newTestTracker(t)
	entry := tr.Apply(&model.Decision{Action: model.ActionSell, Price: 10.0})

	state := tr.GetState()
	assert.Equal(t, model.PositionFlat, state.Position)
	assert.Zero(t, state.LastTradePrice)
	assert.Equal(t, model.PositionFlat, entry.PositionBefore)
	assert.Len(t, tr.Log(), 1)
}

func TestApply_EntryIDsUnique(t *testing.T) {
	tr := newTestTracker(t)
	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		e := tr.Apply(&model.Decision{Action: model.ActionHold, Price: 10})
		require.NotEmpty(t, e.ID)
		require.False(t, seen[e.ID], "duplicate entry id %s", e.ID)
		seen[e.ID] = true
	}
}

func TestLastN(t *testing.T) {
	tr := newTestTracker(t)
	for i := 0; i < 5; i++ {
		tr.Apply(&model.Decision{Action: model.ActionHold, Price: float64(i)})
	}

	last := tr.LastN(3)
	require.Len(t, last, 3)
	assert.Equal(t, 2.0, last[0].Price)
	assert.Equal(t, 4.0, last[2].Price)

	assert.Len(t, tr.LastN(100), 5)
}

func TestStatePersistsAcrossRestarts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "position.json")

	tr, err := NewTracker(path)
	require.NoError(t, err)
	tr.Apply(&model.Decision{Action: model.ActionBuy, Price: 10.5})

	reloaded, err := NewTracker(path)
	require.NoError(t, err)
	state := reloaded.GetState()
	assert.Equal(t, model.PositionLong, state.Position)
	assert.Equal(t, 10.5, state.LastTradePrice)
	// Trade log is in-memory only.
	assert.Empty(t, reloaded.Log())
}
