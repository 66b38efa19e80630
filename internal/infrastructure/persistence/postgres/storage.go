package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ultistudent/ultistudent/internal/domain/shared"
	"github.com/ultistudent/ultistudent/internal/domain/store"
	"github.com/ultistudent/ultistudent/internal/infrastructure/persistence"
	"github.com/ultistudent/ultistudent/pkg/logger"
)

// Storage implements persistence.Storage for PostgreSQL.
type Storage struct {
	conn *Connection
	log  *logger.Logger
}

// Open connects, applies pending migrations and returns a ready Storage.
func Open(ctx context.Context, cfg Config, log *logger.Logger) (*Storage, error) {
	if log == nil {
		log = logger.Nop()
	}
	log = log.With(logger.Backend("postgres"))

	conn, err := NewConnection(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	if err := NewMigrator(conn).Migrate(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	return &Storage{conn: conn, log: log}, nil
}

// Close closes the connection pool.
func (s *Storage) Close() error {
	s.conn.Close()
	return nil
}

// Load reads every table in position order.
func (s *Storage) Load(ctx context.Context) (store.Snapshot, error) {
	var savedAt time.Time
	err := s.conn.QueryRow(ctx, `SELECT saved_at FROM saves WHERE id = 1`).Scan(&savedAt)
	if IsNoRows(err) {
		return store.Snapshot{}, shared.NewDomainError("storage", "Load", shared.ErrDataNotFound, "No saved data found")
	}
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("postgres: read save marker: %w", err)
	}

	doc, err := loadDocument(ctx, s.conn)
	if err != nil {
		return store.Snapshot{}, err
	}

	snap, err := doc.Snapshot()
	if err != nil {
		return store.Snapshot{}, err
	}
	s.log.Info("data loaded", logger.Records(snap.Size()), logger.Time("saved_at", savedAt))
	return snap, nil
}

func loadDocument(ctx context.Context, q Querier) (persistence.Document, error) {
	var doc persistence.Document
	var err error

	doc.Persons, err = collect(ctx, q,
		`SELECT name, phone, email, address, tags FROM persons ORDER BY position`,
		func(row pgx.CollectableRow) (persistence.PersonRecord, error) {
			var r persistence.PersonRecord
			err := row.Scan(&r.Name, &r.Phone, &r.Email, &r.Address, &r.Tagged)
			return r, err
		})
	if err != nil {
		return doc, err
	}

	doc.CapEntries, err = collect(ctx, q,
		`SELECT module_code, grade, credits, semester, tags FROM cap_entries ORDER BY position`,
		func(row pgx.CollectableRow) (persistence.CapEntryRecord, error) {
			var r persistence.CapEntryRecord
			err := row.Scan(&r.ModuleCode, &r.Grade, &r.Credits, &r.Semester, &r.Tagged)
			return r, err
		})
	if err != nil {
		return doc, err
	}

	doc.Homework, err = collect(ctx, q,
		`SELECT module_code, name, deadline, priority FROM homework ORDER BY position`,
		func(row pgx.CollectableRow) (persistence.HomeworkRecord, error) {
			var r persistence.HomeworkRecord
			err := row.Scan(&r.ModuleCode, &r.Name, &r.Deadline, &r.Priority)
			return r, err
		})
	if err != nil {
		return doc, err
	}

	doc.Notes, err = collect(ctx, q,
		`SELECT module_code, content FROM notes ORDER BY position`,
		func(row pgx.CollectableRow) (persistence.NoteRecord, error) {
			var r persistence.NoteRecord
			err := row.Scan(&r.ModuleCode, &r.Content)
			return r, err
		})
	return doc, err
}

func collect[T any](ctx context.Context, q Querier, query string, fn pgx.RowToFunc[T]) ([]T, error) {
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("postgres: query: %w", err)
	}
	out, err := pgx.CollectRows(rows, fn)
	if err != nil {
		return nil, fmt.Errorf("postgres: scan: %w", err)
	}
	return out, nil
}

// Save replaces every row in a single transaction, sending all statements as one batch.
func (s *Storage) Save(ctx context.Context, snap store.Snapshot) error {
	doc := persistence.FromSnapshot(snap)

	batch := &pgx.Batch{}
	batch.Queue(`DELETE FROM persons`)
	batch.Queue(`DELETE FROM cap_entries`)
	batch.Queue(`DELETE FROM homework`)
	batch.Queue(`DELETE FROM notes`)

	for i, r := range doc.Persons {
		batch.Queue(`INSERT INTO persons (position, name, phone, email, address, tags) VALUES ($1, $2, $3, $4, $5, $6)`,
			i, r.Name, r.Phone, r.Email, r.Address, r.Tagged)
	}
	for i, r := range doc.CapEntries {
		batch.Queue(`INSERT INTO cap_entries (position, module_code, grade, credits, semester, tags) VALUES ($1, $2, $3, $4, $5, $6)`,
			i, r.ModuleCode, r.Grade, r.Credits, r.Semester, r.Tagged)
	}
	for i, r := range doc.Homework {
		batch.Queue(`INSERT INTO homework (position, module_code, name, deadline, priority) VALUES ($1, $2, $3, $4, $5)`,
			i, r.ModuleCode, r.Name, r.Deadline, r.Priority)
	}
	for i, r := range doc.Notes {
		batch.Queue(`INSERT INTO notes (position, module_code, content) VALUES ($1, $2, $3)`,
			i, r.ModuleCode, r.Content)
	}
	batch.Queue(`INSERT INTO saves (id, saved_at) VALUES (1, NOW()) ON CONFLICT (id) DO UPDATE SET saved_at = EXCLUDED.saved_at`)

	err := s.conn.WithTx(ctx, func(tx pgx.Tx) error {
		return tx.SendBatch(ctx, batch).Close()
	})
	if err != nil {
		return fmt.Errorf("postgres: save: %w", err)
	}

	s.log.Info("data saved", logger.Records(snap.Size()))
	return nil
}
