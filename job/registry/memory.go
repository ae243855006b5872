package registry

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/ncobase/longrun/job"
)

// Memory keeps live jobs in a map. Removed jobs stay retrievable through
// LoadDocument until they are released.
type Memory struct {
	mu      sync.RWMutex
	live    map[uuid.UUID]*job.TimedJob
	retired map[uuid.UUID]*job.TimedJob
}

// NewMemory returns an empty in-process registry.
func NewMemory() *Memory {
	return &Memory{
		live:    make(map[uuid.UUID]*job.TimedJob),
		retired: make(map[uuid.UUID]*job.TimedJob),
	}
}

func (m *Memory) Register(_ context.Context, j *job.TimedJob) error {
	if j == nil {
		return job.ErrNilJob
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.live[j.ID]; ok {
		return job.ErrAlreadyRegistered
	}
	m.live[j.ID] = j
	delete(m.retired, j.ID)
	return nil
}

func (m *Memory) Lookup(_ context.Context, id uuid.UUID) (*job.TimedJob, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	j, ok := m.live[id]
	if !ok {
		return nil, job.ErrJobNotFound
	}
	return j, nil
}

func (m *Memory) Remove(_ context.Context, id uuid.UUID, release bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.live[id]
	if ok {
		delete(m.live, id)
		j.SetAddedToRegistry(false)
		if !release {
			m.retired[id] = j
		}
	}
	if release {
		delete(m.retired, id)
	}
	return nil
}

// LoadDocument returns a job whether it is live or retired.
func (m *Memory) LoadDocument(_ context.Context, id uuid.UUID) (*job.TimedJob, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if j, ok := m.live[id]; ok {
		return j, nil
	}
	if j, ok := m.retired[id]; ok {
		return j, nil
	}
	return nil, job.ErrJobNotFound
}

// Len returns the number of live jobs.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.live)
}
