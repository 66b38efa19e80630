// Package sqlite stores records in a local SQLite database, one table per kind.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ultistudent/ultistudent/internal/domain/shared"
	"github.com/ultistudent/ultistudent/internal/domain/store"
	"github.com/ultistudent/ultistudent/internal/infrastructure/persistence"
	"github.com/ultistudent/ultistudent/pkg/logger"
	"github.com/ultistudent/ultistudent/pkg/timeutil"
)

// DB wraps the sql.DB connection.
type DB struct {
	*sql.DB
}

// NewDB opens the SQLite database at dbPath, creating its directory if needed.
func NewDB(ctx context.Context, dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("sqlite: create db directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("sqlite: open database: %w", err)
	}
	// SQLite serialises writers anyway.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping database: %w", err)
	}

	return &DB{db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.DB.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS saves (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	saved_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS persons (
	position INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	phone TEXT NOT NULL,
	email TEXT NOT NULL,
	address TEXT NOT NULL,
	tags TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS cap_entries (
	position INTEGER PRIMARY KEY,
	module_code TEXT NOT NULL,
	grade TEXT NOT NULL,
	credits TEXT NOT NULL,
	semester TEXT NOT NULL,
	tags TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS homework (
	position INTEGER PRIMARY KEY,
	module_code TEXT NOT NULL,
	name TEXT NOT NULL,
	deadline TEXT NOT NULL,
	priority TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS notes (
	position INTEGER PRIMARY KEY,
	module_code TEXT NOT NULL,
	content TEXT NOT NULL
);
`

// InitSchema creates the tables if they do not exist.
func (d *DB) InitSchema(ctx context.Context) error {
	if _, err := d.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("sqlite: init schema: %w", err)
	}
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// STORAGE
// ══════════════════════════════════════════════════════════════════════════════

// Storage implements persistence.Storage on top of DB.
type Storage struct {
	db  *DB
	log *logger.Logger
}

// Open opens the database at path and prepares the schema.
func Open(ctx context.Context, path string, log *logger.Logger) (*Storage, error) {
	db, err := NewDB(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := db.InitSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Storage{db: db, log: log.With(logger.Backend("sqlite"), logger.String("path", path))}, nil
}

// Close closes the database.
func (s *Storage) Close() error {
	return s.db.Close()
}

// Load reads every table in position order.
func (s *Storage) Load(ctx context.Context) (store.Snapshot, error) {
	var savedAt string
	err := s.db.QueryRowContext(ctx, `SELECT saved_at FROM saves WHERE id = 1`).Scan(&savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Snapshot{}, shared.NewDomainError("storage", "Load", shared.ErrDataNotFound, "No saved data found")
	}
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("sqlite: read save marker: %w", err)
	}

	var doc persistence.Document

	err = s.query(ctx, `SELECT name, phone, email, address, tags FROM persons ORDER BY position`,
		func(rows *sql.Rows) error {
			var r persistence.PersonRecord
			var tags string
			if err := rows.Scan(&r.Name, &r.Phone, &r.Email, &r.Address, &tags); err != nil {
				return err
			}
			r.Tagged = splitTags(tags)
			doc.Persons = append(doc.Persons, r)
			return nil
		})
	if err != nil {
		return store.Snapshot{}, err
	}

	err = s.query(ctx, `SELECT module_code, grade, credits, semester, tags FROM cap_entries ORDER BY position`,
		func(rows *sql.Rows) error {
			var r persistence.CapEntryRecord
			var tags string
			if err := rows.Scan(&r.ModuleCode, &r.Grade, &r.Credits, &r.Semester, &tags); err != nil {
				return err
			}
			r.Tagged = splitTags(tags)
			doc.CapEntries = append(doc.CapEntries, r)
			return nil
		})
	if err != nil {
		return store.Snapshot{}, err
	}

	err = s.query(ctx, `SELECT module_code, name, deadline, priority FROM homework ORDER BY position`,
		func(rows *sql.Rows) error {
			var r persistence.HomeworkRecord
			if err := rows.Scan(&r.ModuleCode, &r.Name, &r.Deadline, &r.Priority); err != nil {
				return err
			}
			doc.Homework = append(doc.Homework, r)
			return nil
		})
	if err != nil {
		return store.Snapshot{}, err
	}

	err = s.query(ctx, `SELECT module_code, content FROM notes ORDER BY position`,
		func(rows *sql.Rows) error {
			var r persistence.NoteRecord
			if err := rows.Scan(&r.ModuleCode, &r.Content); err != nil {
				return err
			}
			doc.Notes = append(doc.Notes, r)
			return nil
		})
	if err != nil {
		return store.Snapshot{}, err
	}

	snap, err := doc.Snapshot()
	if err != nil {
		return store.Snapshot{}, err
	}
	s.log.Info("data loaded", logger.Records(snap.Size()), logger.String("saved_at", savedAt))
	return snap, nil
}

func (s *Storage) query(ctx context.Context, query string, scan func(*sql.Rows) error) error {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("sqlite: query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return fmt.Errorf("sqlite: scan: %w", err)
		}
	}
	return rows.Err()
}

// Save replaces every row in a single transaction.
func (s *Storage) Save(ctx context.Context, snap store.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin: %w", err)
	}
	defer func() {
		// Returns sql.ErrTxDone after a successful commit.
		_ = tx.Rollback()
	}()

	for _, table := range []string{"persons", "cap_entries", "homework", "notes"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("sqlite: clear %s: %w", table, err)
		}
	}

	doc := persistence.FromSnapshot(snap)
	for i, r := range doc.Persons {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO persons (position, name, phone, email, address, tags) VALUES (?, ?, ?, ?, ?, ?)`,
			i, r.Name, r.Phone, r.Email, r.Address, joinTags(r.Tagged)); err != nil {
			return fmt.Errorf("sqlite: insert person: %w", err)
		}
	}
	for i, r := range doc.CapEntries {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO cap_entries (position, module_code, grade, credits, semester, tags) VALUES (?, ?, ?, ?, ?, ?)`,
			i, r.ModuleCode, r.Grade, r.Credits, r.Semester, joinTags(r.Tagged)); err != nil {
			return fmt.Errorf("sqlite: insert cap entry: %w", err)
		}
	}
	for i, r := range doc.Homework {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO homework (position, module_code, name, deadline, priority) VALUES (?, ?, ?, ?, ?)`,
			i, r.ModuleCode, r.Name, r.Deadline, r.Priority); err != nil {
			return fmt.Errorf("sqlite: insert homework: %w", err)
		}
	}
	for i, r := range doc.Notes {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO notes (position, module_code, content) VALUES (?, ?, ?)`,
			i, r.ModuleCode, r.Content); err != nil {
			return fmt.Errorf("sqlite: insert note: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO saves (id, saved_at) VALUES (1, ?) ON CONFLICT(id) DO UPDATE SET saved_at = excluded.saved_at`,
		timeutil.Now().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("sqlite: mark save: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit: %w", err)
	}

	s.log.Info("data saved", logger.Records(snap.Size()))
	return nil
}

// Tags are alphanumeric so a space separator is unambiguous.
func joinTags(tags []string) string {
	return strings.Join(tags, " ")
}

func splitTags(s string) []string {
	return strings.Fields(s)
}
