// Package service exposes the timed-job engine as a request/response
// service: describing itself, validating parameters, running batches and
// answering status and result queries for the jobs it started.
package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/ncobase/longrun/job"
)

// Service is the capability set a job-running service offers to its host.
type Service interface {
	Describe() *Description
	Parameters() []Parameter
	ValidateParams(raw map[string]any) (*job.RunParams, error)
	Run(ctx context.Context, p *job.RunParams) (*job.JobSet, error)
	Serialize(ctx context.Context, id uuid.UUID) ([]byte, int, error)
	Deserialize(ctx context.Context, data []byte) (*job.TimedJob, error)
	Status(ctx context.Context, id uuid.UUID) (job.Status, error)
	Results(ctx context.Context, id uuid.UUID) ([]Resource, error)
	// Close reports false, without error, while any job is still running.
	Close(ctx context.Context) (bool, error)
}

// Notifier receives job events and the close of the service.
type Notifier interface {
	job.Notifier
	ServiceClosed(ctx context.Context, service string)
}

// Resource is one result entry of a job.
type Resource struct {
	Protocol string         `json:"protocol"`
	Title    string         `json:"title"`
	Data     map[string]any `json:"data"`
}

var _ Service = (*LongRunning)(nil)
