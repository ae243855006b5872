package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/ncobase/longrun/config"
	"github.com/ncobase/longrun/job"
	"github.com/ncobase/longrun/logging/logger"
	"github.com/ncobase/longrun/logging/observes"
	"go.opentelemetry.io/otel/attribute"
)

// LongRunning starts batches of timed jobs and answers queries about them.
type LongRunning struct {
	cfg        *config.Job
	clock      job.Clock
	registry   job.Registry
	notifier   Notifier
	runner     *job.Runner
	serializer *job.Serializer

	mu     sync.RWMutex
	sets   []*job.JobSet
	closed bool
}

// Option configures a LongRunning service.
type Option func(*LongRunning)

// WithClock replaces the wall clock used for status evaluation.
func WithClock(c job.Clock) Option {
	return func(s *LongRunning) { s.clock = c }
}

// WithNotifier sends lifecycle events to n.
func WithNotifier(n Notifier) Option {
	return func(s *LongRunning) { s.notifier = n }
}

// WithSerializer shares s with the registry so both rehydrate jobs the
// same way.
func WithSerializer(sr *job.Serializer) Option {
	return func(s *LongRunning) { s.serializer = sr }
}

// WithRand replaces the source of job durations.
func WithRand(r job.IntN) Option {
	return func(s *LongRunning) { s.runner.Rand = r }
}

// New returns a service registering its jobs in reg.
func New(cfg *config.Job, reg job.Registry, opts ...Option) *LongRunning {
	if cfg == nil {
		cfg = &config.Job{DefaultNumberOfJobs: 3, DefaultMinDuration: 1}
	}
	s := &LongRunning{
		cfg:      cfg,
		clock:    job.SystemClock{},
		registry: reg,
		runner:   &job.Runner{Service: ServiceName},
	}
	for _, opt := range opts {
		opt(s)
	}

	var notifier job.Notifier = job.NopNotifier
	if s.notifier != nil {
		notifier = s.notifier
	}
	s.runner.Clock = s.clock
	s.runner.Registry = reg
	s.runner.Notifier = notifier
	if s.serializer == nil {
		s.serializer = &job.Serializer{Clock: s.clock, Notifier: notifier}
	}
	return s
}

// Serializer returns the serializer registries should use to rehydrate jobs
// for this service.
func (s *LongRunning) Serializer() *job.Serializer {
	return s.serializer
}

// Run starts a batch and returns as soon as every job is registered.
func (s *LongRunning) Run(ctx context.Context, p *job.RunParams) (*job.JobSet, error) {
	tc := observes.NewTracingContext(ctx, observes.LayerService, "LongRunning.Run")
	defer tc.End()
	ctx = tc.Context()

	if p == nil {
		return nil, fmt.Errorf("%w: missing parameters", job.ErrInvalidParams)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, job.ErrServiceClosed
	}

	set, err := s.runner.Run(ctx, *p)
	if err != nil {
		tc.RecordError(err)
		return nil, err
	}
	s.sets = append(s.sets, set)

	tc.SetAttributes(
		attribute.String("run_id", set.RunID),
		attribute.Int("jobs", set.Len()),
		attribute.Int("min_duration", int(p.MinDuration)),
	)
	logger.Infof(ctx, "Started %d jobs in run %s", set.Len(), set.RunID)
	return set, nil
}

// Status evaluates the job against the clock.
func (s *LongRunning) Status(ctx context.Context, id uuid.UUID) (job.Status, error) {
	j, err := s.find(ctx, id)
	if err != nil {
		logger.Errorf(ctx, "Failed to get job data for \"%s\"", id)
		return job.StatusError, err
	}
	status, skew := j.Evaluate(s.clock.Now())
	if skew {
		logger.Warnf(ctx, "Job %s reports a start time in the future, clock skew suspected", id)
	}
	return status, nil
}

// Results returns the interval of the job as an inline resource.
func (s *LongRunning) Results(ctx context.Context, id uuid.UUID) ([]Resource, error) {
	j, err := s.find(ctx, id)
	if err != nil {
		logger.Errorf(ctx, "Failed to get job data for \"%s\"", id)
		return nil, err
	}
	iv := j.Interval()
	return []Resource{{
		Protocol: ResourceProtocolInline,
		Title:    ResourceTitle,
		Data: map[string]any{
			"start": iv.Start,
			"end":   iv.End,
		},
	}}, nil
}

// Serialize returns the byte form of the job.
func (s *LongRunning) Serialize(ctx context.Context, id uuid.UUID) ([]byte, int, error) {
	j, err := s.find(ctx, id)
	if err != nil {
		logger.Errorf(ctx, "Failed to get job data for \"%s\"", id)
		return nil, 0, err
	}
	return job.Marshal(j)
}

// Deserialize rehydrates a job, reconciling the registry when the job has
// finished since it was stored.
func (s *LongRunning) Deserialize(ctx context.Context, data []byte) (*job.TimedJob, error) {
	return s.serializer.Unmarshal(ctx, data, s.registry)
}

// Close releases the job sets once no job is outstanding. While any job is
// still running it returns false and leaves the service open.
func (s *LongRunning) Close(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return true, nil
	}

	now := s.clock.Now()
	for _, set := range s.sets {
		for _, j := range set.Jobs() {
			if status, _ := j.Evaluate(now); status.Outstanding() {
				logger.Infof(ctx, "Job %s is still %s, not closing", j.ID, status)
				return false, nil
			}
		}
	}

	var errs []error
	for _, set := range s.sets {
		for _, j := range set.Jobs() {
			if !j.AddedToRegistry() || s.registry == nil {
				continue
			}
			if err := s.registry.Remove(ctx, j.ID, false); err != nil {
				errs = append(errs, fmt.Errorf("remove %s: %w", j.ID, err))
				continue
			}
			j.SetAddedToRegistry(false)
		}
	}
	s.sets = nil
	s.closed = true

	if s.notifier != nil {
		s.notifier.ServiceClosed(ctx, ServiceName)
	}
	if len(errs) > 0 {
		logger.Errorf(ctx, "Service closed with registry errors: %v", errors.Join(errs...))
	}
	return true, nil
}

// Jobs returns every owned job in run order with its status evaluated now.
func (s *LongRunning) Jobs(ctx context.Context) []*job.TimedJob {
	s.mu.RLock()
	defer s.mu.RUnlock()
	now := s.clock.Now()
	var out []*job.TimedJob
	for _, set := range s.sets {
		for _, j := range set.Jobs() {
			j.Evaluate(now)
			out = append(out, j)
		}
	}
	return out
}

// Closed reports whether Close has succeeded.
func (s *LongRunning) Closed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

// find looks the job up in the registry, then in the registry's archive,
// then among the sets this service owns.
func (s *LongRunning) find(ctx context.Context, id uuid.UUID) (*job.TimedJob, error) {
	var lookupErr error
	if s.registry != nil {
		j, err := s.registry.Lookup(ctx, id)
		if err == nil {
			return j, nil
		}
		if !errors.Is(err, job.ErrJobNotFound) {
			logger.Errorf(ctx, "Failed to look up job %s: %v", id, err)
			lookupErr = err
		}
		if archive, ok := s.registry.(job.Archive); ok && lookupErr == nil {
			if j, err := archive.LoadDocument(ctx, id); err == nil {
				return j, nil
			}
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, set := range s.sets {
		if j, ok := set.Get(id); ok {
			return j, nil
		}
	}
	if lookupErr != nil {
		return nil, lookupErr
	}
	return nil, job.ErrJobNotFound
}
