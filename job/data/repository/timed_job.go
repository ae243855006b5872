// Package repository stores timed job documents in a SQL database.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when no row matches the id.
var ErrNotFound = errors.New("timed job record not found")

// Record is one row of the timed_jobs table.
type Record struct {
	ID        string
	Name      string
	Type      string
	Status    string
	Document  string
	Live      bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type TimedJobRepository interface {
	// Upsert writes rec and marks it live. It reports false, without
	// writing, when a live row with the same id already exists.
	Upsert(ctx context.Context, rec *Record) (bool, error)
	FindByID(ctx context.Context, id string) (*Record, error)
	SetLive(ctx context.Context, id string, live bool) error
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context, liveOnly bool) (map[string]int, error)
}

type timedJobRepository struct {
	db      *sql.DB
	dialect Dialect
}

// NewTimedJobRepository prepares the timed_jobs table on db. Queries are
// written with ? placeholders and rebound for dialect.
func NewTimedJobRepository(db *sql.DB, dialect Dialect) (TimedJobRepository, error) {
	repo := &timedJobRepository{db: db, dialect: dialect}
	if err := repo.initSchema(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS timed_jobs (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		status TEXT NOT NULL,
		document TEXT NOT NULL,
		live INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_timed_jobs_live ON timed_jobs (live)`,
}

// initSchema runs one statement per call; the pgx driver rejects several
// statements in a single prepared exec.
func (r *timedJobRepository) initSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (r *timedJobRepository) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return r.db.ExecContext(ctx, r.dialect.Rebind(query), args...)
}

func (r *timedJobRepository) Upsert(ctx context.Context, rec *Record) (bool, error) {
	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	res, err := r.exec(ctx, `
		INSERT INTO timed_jobs (id, name, type, status, document, live, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, 1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			type = excluded.type,
			status = excluded.status,
			document = excluded.document,
			live = 1,
			updated_at = excluded.updated_at
		WHERE timed_jobs.live = 0
	`,
		rec.ID,
		rec.Name,
		rec.Type,
		rec.Status,
		rec.Document,
		rec.CreatedAt.Format(time.RFC3339Nano),
		rec.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	rec.Live = n > 0
	return n > 0, nil
}

func (r *timedJobRepository) FindByID(ctx context.Context, id string) (*Record, error) {
	row := r.db.QueryRowContext(ctx, r.dialect.Rebind(`
		SELECT id, name, type, status, document, live, created_at, updated_at
		FROM timed_jobs WHERE id = ?
	`), id)

	var createdAt, updatedAt string
	var live int
	rec := &Record{}
	if err := row.Scan(&rec.ID, &rec.Name, &rec.Type, &rec.Status, &rec.Document, &live, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	rec.Live = live == 1

	var err error
	if rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, err
	}
	if rec.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *timedJobRepository) SetLive(ctx context.Context, id string, live bool) error {
	v := 0
	if live {
		v = 1
	}
	_, err := r.exec(ctx, `
		UPDATE timed_jobs SET live = ?, updated_at = ? WHERE id = ?
	`, v, time.Now().UTC().Format(time.RFC3339Nano), id)
	return err
}

func (r *timedJobRepository) Delete(ctx context.Context, id string) error {
	_, err := r.exec(ctx, `DELETE FROM timed_jobs WHERE id = ?`, id)
	return err
}

func (r *timedJobRepository) CountByStatus(ctx context.Context, liveOnly bool) (map[string]int, error) {
	query := `SELECT status, COUNT(*) FROM timed_jobs`
	if liveOnly {
		query += ` WHERE live = 1`
	}
	query += ` GROUP BY status`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
