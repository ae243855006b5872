package registry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/ncobase/longrun/job"
	"github.com/ncobase/longrun/job/data/repository"
)

// SQL keeps job documents in the timed_jobs table. Removed jobs keep their
// row with live cleared until they are released.
type SQL struct {
	repo       repository.TimedJobRepository
	serializer *job.Serializer
}

// NewSQL prepares the schema on db and returns the registry. dialect names
// the database flavour, SQLite or Postgres.
func NewSQL(db *sql.DB, dialect repository.Dialect, s *job.Serializer) (*SQL, error) {
	repo, err := repository.NewTimedJobRepository(db, dialect)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare timed_jobs: %w", err)
	}
	if s == nil {
		s = &job.Serializer{}
	}
	return &SQL{repo: repo, serializer: s}, nil
}

func (r *SQL) Register(ctx context.Context, j *job.TimedJob) error {
	if j == nil {
		return job.ErrNilJob
	}
	data, n, err := job.Marshal(j)
	if err != nil {
		return err
	}
	ok, err := r.repo.Upsert(ctx, &repository.Record{
		ID:       j.ID.String(),
		Name:     j.Name,
		Type:     j.Type,
		Status:   j.Status().String(),
		Document: string(data[:n-1]),
	})
	if err != nil {
		return fmt.Errorf("failed to register job %s: %w", j.ID, err)
	}
	if !ok {
		return job.ErrAlreadyRegistered
	}
	return nil
}

func (r *SQL) Lookup(ctx context.Context, id uuid.UUID) (*job.TimedJob, error) {
	rec, err := r.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !rec.Live {
		return nil, job.ErrJobNotFound
	}
	return r.serializer.Unmarshal(ctx, []byte(rec.Document), r)
}

func (r *SQL) Remove(ctx context.Context, id uuid.UUID, release bool) error {
	if release {
		return r.repo.Delete(ctx, id.String())
	}
	return r.repo.SetLive(ctx, id.String(), false)
}

// LoadDocument reads the stored document whether or not the job is live.
func (r *SQL) LoadDocument(ctx context.Context, id uuid.UUID) (*job.TimedJob, error) {
	rec, err := r.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.serializer.Unmarshal(ctx, []byte(rec.Document), nil)
}

// CountByStatus returns the number of live jobs per stored status.
func (r *SQL) CountByStatus(ctx context.Context) (map[string]int, error) {
	return r.repo.CountByStatus(ctx, true)
}

func (r *SQL) find(ctx context.Context, id uuid.UUID) (*repository.Record, error) {
	rec, err := r.repo.FindByID(ctx, id.String())
	if errors.Is(err, repository.ErrNotFound) {
		return nil, job.ErrJobNotFound
	}
	return rec, err
}
