package job_test

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/ncobase/longrun/job"
)

type fakeRegistry struct {
	mu      sync.Mutex
	jobs    map[uuid.UUID]*job.TimedJob
	removed []uuid.UUID
	failOn  map[uuid.UUID]bool
	failAll bool
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{jobs: map[uuid.UUID]*job.TimedJob{}, failOn: map[uuid.UUID]bool{}}
}

func (r *fakeRegistry) Register(_ context.Context, j *job.TimedJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll || r.failOn[j.ID] {
		return errors.New("registry unavailable")
	}
	r.jobs[j.ID] = j
	return nil
}

func (r *fakeRegistry) Lookup(_ context.Context, id uuid.UUID) (*job.TimedJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return nil, job.ErrJobNotFound
	}
	return j, nil
}

func (r *fakeRegistry) Remove(_ context.Context, id uuid.UUID, _ bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.jobs, id)
	r.removed = append(r.removed, id)
	return nil
}

type recordingNotifier struct {
	mu         sync.Mutex
	started    []uuid.UUID
	reconciled []uuid.UUID
}

func (n *recordingNotifier) JobStarted(_ context.Context, _ *job.JobSet, j *job.TimedJob) {
	n.mu.Lock()
	n.started = append(n.started, j.ID)
	n.mu.Unlock()
}

func (n *recordingNotifier) JobReconciled(_ context.Context, j *job.TimedJob, _ job.Status) {
	n.mu.Lock()
	n.reconciled = append(n.reconciled, j.ID)
	n.mu.Unlock()
}
