package service

import (
	"context"
)

// Stats summarises the jobs this service owns.
type Stats struct {
	Runs     int            `json:"runs"`
	Jobs     int            `json:"jobs"`
	ByStatus map[string]int `json:"by_status"`
	Closed   bool           `json:"closed"`
	Registry map[string]int `json:"registry,omitempty"`
}

type statusCounter interface {
	CountByStatus(ctx context.Context) (map[string]int, error)
}

// Stats evaluates every owned job and counts them by status.
func (s *LongRunning) Stats(ctx context.Context) (*Stats, error) {
	s.mu.RLock()
	st := &Stats{Runs: len(s.sets), ByStatus: map[string]int{}, Closed: s.closed}
	now := s.clock.Now()
	for _, set := range s.sets {
		for _, j := range set.Jobs() {
			status, _ := j.Evaluate(now)
			st.ByStatus[status.String()]++
			st.Jobs++
		}
	}
	s.mu.RUnlock()

	if c, ok := s.registry.(statusCounter); ok {
		counts, err := c.CountByStatus(ctx)
		if err != nil {
			return nil, err
		}
		st.Registry = counts
	}
	return st, nil
}
