package job

import (
	"context"

	"github.com/google/uuid"
)

// Registry maps job ids to live jobs across requests.
// Lookup returns ErrJobNotFound for an unknown id. Register returns
// ErrAlreadyRegistered when the id is already live. Remove with release
// set also discards anything the registry retained about the job.
type Registry interface {
	Register(ctx context.Context, j *TimedJob) error
	Lookup(ctx context.Context, id uuid.UUID) (*TimedJob, error)
	Remove(ctx context.Context, id uuid.UUID, release bool) error
}

// Archive is implemented by registries that keep a job's last document after
// it is removed from the live index.
type Archive interface {
	LoadDocument(ctx context.Context, id uuid.UUID) (*TimedJob, error)
}

// Notifier receives lifecycle events raised by the runner and serializer.
type Notifier interface {
	JobStarted(ctx context.Context, set *JobSet, j *TimedJob)
	JobReconciled(ctx context.Context, j *TimedJob, previous Status)
}

type nopNotifier struct{}

func (nopNotifier) JobStarted(context.Context, *JobSet, *TimedJob)   {}
func (nopNotifier) JobReconciled(context.Context, *TimedJob, Status) {}

// NopNotifier discards every event.
var NopNotifier Notifier = nopNotifier{}
