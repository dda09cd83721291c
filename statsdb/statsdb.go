// statsdb.go — SQLite persistence for fusionstats snapshots
//
// One row per snapshot, one row per counter sample. Saves are transactional so
// a reader never sees a half-written snapshot.

package statsdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/snuf/iomemory-vsl-freebsd/fusionstats"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNoSnapshot is returned by Latest when the label has no stored snapshot.
var ErrNoSnapshot = errors.New("statsdb: no snapshot for label")

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	label    TEXT    NOT NULL,
	backend  TEXT    NOT NULL DEFAULT '',
	taken_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS snapshots_label ON snapshots(label, id);
CREATE TABLE IF NOT EXISTS samples (
	snapshot_id INTEGER NOT NULL REFERENCES snapshots(id),
	ord         INTEGER NOT NULL,
	name        TEXT    NOT NULL,
	value       INTEGER NOT NULL,
	PRIMARY KEY (snapshot_id, ord)
);`

// DB is a snapshot store.
type DB struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the database at path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("statsdb: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("statsdb: create schema: %w", err)
	}
	return &DB{db: db, now: time.Now}, nil
}

// Close releases the database handle.
func (d *DB) Close() error { return d.db.Close() }

// Save stores snap under label and returns the new snapshot id.
func (d *DB) Save(ctx context.Context, label string, snap fusionstats.Snapshot) (id int64, err error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("statsdb: begin: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (label, backend, taken_at) VALUES (?, ?, ?)`,
		label, snap.Backend, d.now().UnixNano())
	if err != nil {
		return 0, fmt.Errorf("statsdb: insert snapshot: %w", err)
	}
	if id, err = res.LastInsertId(); err != nil {
		return 0, fmt.Errorf("statsdb: snapshot id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO samples (snapshot_id, ord, name, value) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("statsdb: prepare sample insert: %w", err)
	}
	defer stmt.Close()
	for i, s := range snap.Counters {
		if _, err = stmt.ExecContext(ctx, id, i, s.Name, s.Value); err != nil {
			return 0, fmt.Errorf("statsdb: insert sample %s: %w", s.Name, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("statsdb: commit: %w", err)
	}
	return id, nil
}

// Latest returns the most recently saved snapshot for label.
func (d *DB) Latest(ctx context.Context, label string) (fusionstats.Snapshot, error) {
	var (
		id   int64
		snap fusionstats.Snapshot
	)
	err := d.db.QueryRowContext(ctx,
		`SELECT id, backend FROM snapshots WHERE label = ? ORDER BY id DESC LIMIT 1`, label,
	).Scan(&id, &snap.Backend)
	if errors.Is(err, sql.ErrNoRows) {
		return fusionstats.Snapshot{}, fmt.Errorf("%w %q", ErrNoSnapshot, label)
	}
	if err != nil {
		return fusionstats.Snapshot{}, fmt.Errorf("statsdb: query snapshot: %w", err)
	}

	rows, err := d.db.QueryContext(ctx,
		`SELECT name, value FROM samples WHERE snapshot_id = ? ORDER BY ord`, id)
	if err != nil {
		return fusionstats.Snapshot{}, fmt.Errorf("statsdb: query samples: %w", err)
	}
	defer rows.Close()

	snap.Counters = []fusionstats.Sample{}
	for rows.Next() {
		var s fusionstats.Sample
		if err := rows.Scan(&s.Name, &s.Value); err != nil {
			return fusionstats.Snapshot{}, fmt.Errorf("statsdb: scan sample: %w", err)
		}
		snap.Counters = append(snap.Counters, s)
	}
	if err := rows.Err(); err != nil {
		return fusionstats.Snapshot{}, fmt.Errorf("statsdb: iterate samples: %w", err)
	}
	return snap, nil
}

// Count returns how many snapshots are stored under label.
func (d *DB) Count(ctx context.Context, label string) (int, error) {
	var n int
	if err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM snapshots WHERE label = ?`, label).Scan(&n); err != nil {
		return 0, fmt.Errorf("statsdb: count: %w", err)
	}
	return n, nil
}
