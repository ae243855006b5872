package job

import (
	"context"
	"fmt"

	"github.com/ncobase/longrun/logging/logger"
)

// RunParams are the validated inputs of one run.
type RunParams struct {
	NumberOfJobs uint32 `json:"number_of_jobs" validate:"required,gt=0"`
	MinDuration  int32  `json:"min_duration" validate:"gte=0"`
}

// Runner builds a job set, starts every job and registers it.
type Runner struct {
	Service  string
	Clock    Clock
	Registry Registry
	Notifier Notifier
	Rand     IntN
}

// Run starts a batch and returns without waiting for any job to finish.
// A job that cannot be registered is logged and left out of the registry;
// the rest of the batch still runs.
func (r *Runner) Run(ctx context.Context, p RunParams) (*JobSet, error) {
	set, err := BuildJobSet(r.Service, p.NumberOfJobs, p.MinDuration, r.Rand)
	if err != nil {
		return nil, err
	}

	clock := r.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	notifier := r.Notifier
	if notifier == nil {
		notifier = NopNotifier
	}

	for _, j := range set.Jobs() {
		if err := r.startJob(ctx, clock, j); err != nil {
			return nil, fmt.Errorf("failed to start %s: %w", j.ID, err)
		}
		notifier.JobStarted(ctx, set, j)
	}
	return set, nil
}

func (r *Runner) startJob(ctx context.Context, clock Clock, j *TimedJob) error {
	now := clock.Now()
	if err := j.Start(now); err != nil {
		return err
	}
	j.Evaluate(now)

	if r.Registry == nil {
		return nil
	}
	j.SetAddedToRegistry(true)
	if err := r.Registry.Register(ctx, j); err != nil {
		j.SetAddedToRegistry(false)
		logger.Errorf(ctx, "Failed to add job %s to the job registry: %v", j.ID, err)
	}
	return nil
}
