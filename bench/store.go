// store.go — Result persistence
//
// Two sinks for campaign results: a JSON export for one-off comparisons and
// an SQLite history database for tracking a list implementation across
// commits. Rows are keyed by run timestamp plus workload fingerprint, so a
// regression query can restrict itself to runs that replayed identical work.

package bench

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sugawarayuuta/sonnet"
)

// Export is the JSON document written by WriteJSON.
type Export struct {
	Timestamp   string    `json:"timestamp"`
	Capacity    int       `json:"capacity"`
	Fingerprint string    `json:"fingerprint"`
	Summaries   []Summary `json:"summaries"`
}

// WriteJSON serializes the campaign to path.
func WriteJSON(path string, capacity int, fingerprint string, at time.Time, summaries []Summary) error {
	doc := Export{
		Timestamp:   at.UTC().Format(time.RFC3339),
		Capacity:    capacity,
		Fingerprint: fingerprint,
		Summaries:   summaries,
	}
	data, err := sonnet.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// History is an append-only SQLite store of past campaign results.
type History struct {
	db *sql.DB
}

const historySchema = `
CREATE TABLE IF NOT EXISTS runs (
	ts          TEXT    NOT NULL,
	fingerprint TEXT    NOT NULL,
	capacity    INTEGER NOT NULL,
	layout      TEXT    NOT NULL,
	scenario    TEXT    NOT NULL,
	operations  INTEGER NOT NULL,
	best_ns     INTEGER NOT NULL,
	worst_ns    INTEGER NOT NULL,
	checksum    TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS runs_by_work ON runs (fingerprint, layout, scenario);
`

// OpenHistory opens (creating if needed) the history database at path.
func OpenHistory(path string) (*History, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(historySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}
	return &History{db: db}, nil
}

// Record appends one row per summary, all under a single transaction so an
// interrupted run leaves no partial campaign behind.
func (h *History) Record(capacity int, fingerprint string, at time.Time, summaries []Summary) error {
	tx, err := h.db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(
		"INSERT INTO runs (ts, fingerprint, capacity, layout, scenario, operations, best_ns, worst_ns, checksum) " +
			"VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	ts := at.UTC().Format(time.RFC3339)
	for _, s := range summaries {
		_, err := stmt.Exec(ts, fingerprint, capacity,
			s.Best.Layout, s.Best.Scenario, s.Best.Operations,
			s.Best.Elapsed, s.Worst.Elapsed,
			fmt.Sprintf("%016x", s.Best.Checksum))
		if err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Runs returns the number of recorded rows, for sanity checks and tests.
func (h *History) Runs() (int, error) {
	var n int
	err := h.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&n)
	return n, err
}

// Close releases the underlying database handle.
func (h *History) Close() error {
	return h.db.Close()
}
