package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists decision snapshots to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboards can read while the bot writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS decisions (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp        INTEGER NOT NULL,
			trade_date       TEXT,
			symbol           TEXT,
			close            REAL,
			ma5              REAL,
			ma20             REAL,
			ma60             REAL,
			atr              REAL,
			rsi              REAL,
			pivot            REAL,
			s1               REAL,
			r1               REAL,
			action           TEXT,
			price            REAL,
			stop_loss        REAL,
			target           REAL,
			reason           TEXT,
			position_before  TEXT,
			position_after   TEXT,
			last_trade_price REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_decisions_ts ON decisions(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordDecision(rec *DecisionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row := rec.Row
	d := rec.Decision

	_, err := r.db.Exec(`INSERT INTO decisions
		(timestamp, trade_date, symbol, close,
		 ma5, ma20, ma60, atr, rsi, pivot, s1, r1,
		 action, price, stop_loss, target, reason,
		 position_before, position_after, last_trade_price)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), row.Time.Format("2006-01-02"), rec.Symbol, row.Close,
		row.MA5, row.MA20, row.MA60, row.ATR, row.RSI, row.Pivot, row.S1, row.R1,
		string(d.Action), d.Price, d.StopLoss, d.Target, d.Reason,
		string(rec.Before.Position), string(rec.After.Position), rec.After.LastTradePrice,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
