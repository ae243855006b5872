package job

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// JobType is the type tag carried by every timed job.
const JobType = "long running service job"

// ServiceJob holds the identity shared by every job a service runs.
type ServiceJob struct {
	ID          uuid.UUID
	Name        string
	Description string
	Type        string
	Service     string
}

// TimedJob is a service job whose progress is derived from a time interval.
type TimedJob struct {
	ServiceJob

	// ProcessID is reserved for jobs backed by an external process.
	ProcessID int32

	mu       sync.Mutex
	interval TimeInterval
	status   Status
	result   any
	added    bool
}

// NewTimedJob returns an idle job that will run for duration seconds once
// started.
func NewTimedJob(service, name, description string, duration int64) *TimedJob {
	return &TimedJob{
		ServiceJob: ServiceJob{
			ID:          uuid.New(),
			Name:        name,
			Description: description,
			Type:        JobType,
			Service:     service,
		},
		interval: TimeInterval{Duration: duration},
		status:   StatusIdle,
	}
}

// Start stamps the interval from now. It fails when the job is already started.
func (j *TimedJob) Start(now time.Time) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.interval.Started() {
		return ErrAlreadyStarted
	}
	j.interval.Start = now.Unix()
	j.interval.End = j.interval.Start + j.interval.Duration
	return nil
}

// Evaluate derives the status at now, stores it on the job and returns it.
// skew is true when now is before the recorded start.
func (j *TimedJob) Evaluate(now time.Time) (status Status, skew bool) {
	j.mu.Lock()
	defer j.mu.Unlock()

	status, skew = j.interval.statusAt(now.Unix())
	j.status = status
	return status, skew
}

// Interval returns a copy of the job's time interval.
func (j *TimedJob) Interval() TimeInterval {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.interval
}

// Status returns the last stored status without evaluating the clock.
func (j *TimedJob) Status() Status {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.status
}

func (j *TimedJob) setStatus(s Status) {
	j.mu.Lock()
	j.status = s
	j.mu.Unlock()
}

// Result returns the stored result payload, nil when there is none.
func (j *TimedJob) Result() any {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.result
}

// SetResult stores an opaque result payload.
func (j *TimedJob) SetResult(v any) {
	j.mu.Lock()
	j.result = v
	j.mu.Unlock()
}

// AddedToRegistry reports whether the job is currently registered.
func (j *TimedJob) AddedToRegistry() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.added
}

// SetAddedToRegistry records whether the job is in a registry. Registries and
// the runner call it; other callers should leave it alone.
func (j *TimedJob) SetAddedToRegistry(v bool) {
	j.mu.Lock()
	j.added = v
	j.mu.Unlock()
}
