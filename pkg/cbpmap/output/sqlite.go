package output

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/cbpdata/cbpmap/pkg/cbpmap/models"

	_ "modernc.org/sqlite"
)

const catalogSchema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id       TEXT PRIMARY KEY,
	book_name    TEXT NOT NULL,
	first_period TEXT NOT NULL,
	last_period  TEXT NOT NULL,
	periods      INTEGER NOT NULL,
	series       INTEGER NOT NULL,
	created_at   TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS series_metadata (
	run_id              TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
	code                TEXT NOT NULL,
	sheet               TEXT NOT NULL,
	source_column       INTEGER NOT NULL,
	alignment           TEXT NOT NULL,
	%s,
	PRIMARY KEY (run_id, code)
);
CREATE TABLE IF NOT EXISTS observations (
	run_id  TEXT NOT NULL,
	code    TEXT NOT NULL,
	period  TEXT NOT NULL,
	value   REAL NOT NULL,
	PRIMARY KEY (run_id, code, period),
	FOREIGN KEY (run_id, code) REFERENCES series_metadata(run_id, code) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_observations_period ON observations(period);
`

// Catalog is a SQLite store of runs, series metadata and observations.
type Catalog struct {
	db   *sql.DB
	path string
}

// OpenCatalog opens or creates the catalog at path.
func OpenCatalog(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	// PRAGMAs are per connection.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schemaSQL()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize catalog schema: %w", err)
	}
	return &Catalog{db: db, path: path}, nil
}

func schemaSQL() string {
	defs := make([]string, 0, len(models.MetadataColumns)-1)
	for _, col := range models.MetadataColumns {
		if col == "CODE" {
			continue
		}
		typ := "TEXT"
		if col == "MULTIPLIER" {
			typ = "INTEGER"
		}
		defs = append(defs, fmt.Sprintf("%q %s", strings.ToLower(col), typ))
	}
	return fmt.Sprintf(catalogSchema, strings.Join(defs, ",\n\t"))
}

// Close closes the underlying database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Path returns the catalog file path.
func (c *Catalog) Path() string {
	return c.path
}

// SaveRun stores a run, replacing any earlier copy with the same run ID.
func (c *Catalog) SaveRun(res *models.Result, createdAt string) (err error) {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.Exec(`DELETE FROM runs WHERE run_id = ?`, res.RunID); err != nil {
		return err
	}
	if _, err = tx.Exec(
		`INSERT INTO runs (run_id, book_name, first_period, last_period, periods, series, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		res.RunID, res.BookName, res.Timeline.Start, res.Timeline.End, res.Timeline.Len(), len(res.Series), createdAt,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	metaCols := []string{`"run_id"`, `"code"`, `"sheet"`, `"source_column"`, `"alignment"`}
	for _, col := range models.MetadataColumns[1:] {
		metaCols = append(metaCols, fmt.Sprintf("%q", strings.ToLower(col)))
	}
	ph := strings.TrimRight(strings.Repeat("?,", len(metaCols)), ",")
	metaStmt, err := tx.Prepare(`INSERT INTO series_metadata (` + strings.Join(metaCols, ",") + `) VALUES (` + ph + `)`)
	if err != nil {
		return err
	}
	defer metaStmt.Close()

	obsStmt, err := tx.Prepare(`INSERT INTO observations (run_id, code, period, value) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer obsStmt.Close()

	for i, s := range res.Series {
		row := res.Metadata[i].Row()
		args := []interface{}{res.RunID, s.Code, s.Sheet, s.Column, string(s.Alignment)}
		args = append(args, row[1:]...)
		if _, err = metaStmt.Exec(args...); err != nil {
			return fmt.Errorf("insert metadata %s: %w", s.Code, err)
		}
		for p, v := range s.Values {
			if v == nil || p >= res.Timeline.Len() {
				continue
			}
			if _, err = obsStmt.Exec(res.RunID, s.Code, res.Timeline.Periods[p], *v); err != nil {
				return fmt.Errorf("insert observation %s %s: %w", s.Code, res.Timeline.Periods[p], err)
			}
		}
	}

	return tx.Commit()
}

// Observations returns the stored values of code in a run, keyed by period.
func (c *Catalog) Observations(runID, code string) (map[string]float64, error) {
	rows, err := c.db.Query(`SELECT period, value FROM observations WHERE run_id = ? AND code = ?`, runID, code)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]float64)
	for rows.Next() {
		var period string
		var value float64
		if err := rows.Scan(&period, &value); err != nil {
			return nil, err
		}
		out[period] = value
	}
	return out, rows.Err()
}

// Codes returns the series codes stored for a run, in insertion order.
func (c *Catalog) Codes(runID string) ([]string, error) {
	rows, err := c.db.Query(`SELECT code FROM series_metadata WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}
