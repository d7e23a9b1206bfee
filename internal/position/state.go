package position

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"TrendSentry/internal/model"
)

// LoadState reads position state from a JSON file. Returns a zero state
// if the file doesn't exist yet.
func LoadState(filePath string) (*model.PositionState, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &model.PositionState{}, nil
		}
		return nil, err
	}
	var state model.PositionState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// SaveState writes position state to a JSON file, creating parent
// directories as needed.
func SaveState(filePath string, state *model.PositionState) error {
	state.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(filePath, data, 0644)
}
