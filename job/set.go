package job

import (
	"sync"

	"github.com/google/uuid"
	"github.com/ncobase/longrun/nanoid"
)

// JobSet is the ordered batch of jobs produced by one run.
type JobSet struct {
	RunID   string
	Service string

	mu   sync.RWMutex
	jobs []*TimedJob
	byID map[uuid.UUID]*TimedJob
}

// NewJobSet returns an empty set with a fresh run id.
func NewJobSet(service string) *JobSet {
	return &JobSet{
		RunID:   nanoid.String(),
		Service: service,
		byID:    make(map[uuid.UUID]*TimedJob),
	}
}

// Add appends j. Nil jobs and repeated ids are rejected.
func (s *JobSet) Add(j *TimedJob) error {
	if j == nil {
		return ErrNilJob
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[j.ID]; ok {
		return ErrDuplicateJob
	}
	s.jobs = append(s.jobs, j)
	s.byID[j.ID] = j
	return nil
}

// Jobs returns the jobs in insertion order.
func (s *JobSet) Jobs() []*TimedJob {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*TimedJob, len(s.jobs))
	copy(out, s.jobs)
	return out
}

// Get returns the job with id, if the set owns it.
func (s *JobSet) Get(id uuid.UUID) (*TimedJob, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	j, ok := s.byID[id]
	return j, ok
}

func (s *JobSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs)
}

// IDs returns the job ids in insertion order.
func (s *JobSet) IDs() []uuid.UUID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]uuid.UUID, len(s.jobs))
	for i, j := range s.jobs {
		ids[i] = j.ID
	}
	return ids
}
