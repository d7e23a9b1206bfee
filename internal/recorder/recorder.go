package recorder

import "TrendSentry/internal/model"

// DecisionRecord is everything worth keeping about one strategy cycle:
// the latest enriched row, the decision it produced, and the position
// transition it caused. Write-only observability; the core never reads
// these records back.
type DecisionRecord struct {
	Symbol   string
	Row      model.IndicatorRow
	Decision *model.Decision
	Before   model.PositionState
	After    model.PositionState
}

// Recorder persists decision snapshots for offline analysis.
type Recorder interface {
	RecordDecision(rec *DecisionRecord) error
	Close() error
}
