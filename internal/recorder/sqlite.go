package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"StockDuel/internal/model"
)

// SQLiteRecorder persists cycle history to a SQLite database.
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

	// WAL mode so dashboards can read while the service writes.
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
		`CREATE TABLE IF NOT EXISTS comparisons (
			id                   INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp            INTEGER NOT NULL,
			target_date          TEXT,
			a_ticker             TEXT,
			a_price              REAL,
			a_prev_close         REAL,
			a_total_gain_pct     REAL,
			a_daily_change_amt   REAL,
			a_daily_change_pct   REAL,
			a_match_price        REAL,
			a_projected_price    REAL,
			a_projected_gain_pct REAL,
			b_ticker             TEXT,
			b_price              REAL,
			b_prev_close         REAL,
			b_total_gain_pct     REAL,
			b_daily_change_amt   REAL,
			b_daily_change_pct   REAL,
			b_match_price        REAL,
			b_projected_price    REAL,
			b_projected_gain_pct REAL,
			draw                 INTEGER,
			winner               TEXT,
			margin_pct           REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_comparisons_ts ON comparisons(timestamp)`,

		`CREATE TABLE IF NOT EXISTS fetch_errors (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			ticker    TEXT,
			message   TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_fetch_errors_ts ON fetch_errors(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordComparison(cmp *model.Comparison) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, b := cmp.A, cmp.B
	draw := 0
	if cmp.Verdict.Draw {
		draw = 1
	}

	_, err := r.db.Exec(`INSERT INTO comparisons
		(timestamp, target_date,
		 a_ticker, a_price, a_prev_close, a_total_gain_pct, a_daily_change_amt, a_daily_change_pct,
		 a_match_price, a_projected_price, a_projected_gain_pct,
		 b_ticker, b_price, b_prev_close, b_total_gain_pct, b_daily_change_amt, b_daily_change_pct,
		 b_match_price, b_projected_price, b_projected_gain_pct,
		 draw, winner, margin_pct)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		cmp.GeneratedAt.Unix(), cmp.TargetDate.Format("2006-01-02"),
		a.Ticker, a.CurrentPrice, a.PrevClose, a.TotalGainPct, a.DailyChangeAmt, a.DailyChangePct,
		a.MatchPrice, a.ProjectedPrice, a.ProjectedGainPct,
		b.Ticker, b.CurrentPrice, b.PrevClose, b.TotalGainPct, b.DailyChangeAmt, b.DailyChangePct,
		b.MatchPrice, b.ProjectedPrice, b.ProjectedGainPct,
		draw, cmp.Verdict.Winner, cmp.Verdict.MarginPct,
	)
	return err
}

func (r *SQLiteRecorder) RecordFetchError(ticker, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO fetch_errors (timestamp, ticker, message) VALUES (?,?,?)`,
		time.Now().Unix(), ticker, message,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
