package event

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ncobase/longrun/concurrency/worker"
	"github.com/ncobase/longrun/ctxutil"
	"github.com/ncobase/longrun/job"
	"github.com/ncobase/longrun/logging/logger"
)

// Dispatcher hands events to the worker pool so publishing never blocks the
// caller. It implements job.Notifier.
type Dispatcher struct {
	publisher Publisher
	pool      *worker.Pool
	timeout   time.Duration
}

// NewDispatcher returns a dispatcher publishing through p. Without a pool
// events are published inline.
func NewDispatcher(p Publisher, pool *worker.Pool, timeout time.Duration) *Dispatcher {
	if p == nil {
		p = Noop{}
	}
	return &Dispatcher{publisher: p, pool: pool, timeout: timeout}
}

// Dispatch publishes e in the background. A full queue drops the event.
func (d *Dispatcher) Dispatch(ctx context.Context, e *Event) {
	publish := func(context.Context) error {
		actx, cancel := ctxutil.WithAsyncContext(ctx, d.timeout)
		defer cancel()
		if err := d.publisher.Publish(actx, e); err != nil {
			logger.Errorf(actx, "Failed to publish %s event for %s: %v", e.Type, e.JobID, err)
			return err
		}
		return nil
	}

	if d.pool == nil {
		_ = publish(ctx)
		return
	}
	if err := d.pool.Submit(publish); err != nil {
		logger.Warnf(ctx, "Dropped %s event for %s: %v", e.Type, e.JobID, err)
	}
}

func (d *Dispatcher) JobStarted(ctx context.Context, set *job.JobSet, j *job.TimedJob) {
	e := NewJobEvent(EventTypeJobStarted, j)
	if set != nil {
		e.RunID = set.RunID
	}
	d.Dispatch(ctx, e)
}

func (d *Dispatcher) JobReconciled(ctx context.Context, j *job.TimedJob, previous job.Status) {
	e := NewJobEvent(EventTypeJobReconciled, j)
	e.Previous = previous.String()
	d.Dispatch(ctx, e)
}

// ServiceClosed announces that service released its jobs.
func (d *Dispatcher) ServiceClosed(ctx context.Context, service string) {
	d.Dispatch(ctx, &Event{
		ID:      uuid.NewString(),
		Type:    EventTypeServiceClosed,
		Service: service,
		Time:    time.Now().UTC(),
	})
}

// Close closes the publisher.
func (d *Dispatcher) Close() error {
	return d.publisher.Close()
}
