// Package event publishes job lifecycle events to a message broker.
package event

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/ncobase/longrun/job"
)

// EventType defines event types.
type EventType string

const (
	EventTypeJobStarted    EventType = "job.started"
	EventTypeJobReconciled EventType = "job.reconciled"
	EventTypeServiceClosed EventType = "service.closed"
)

// Event is one lifecycle notification.
type Event struct {
	ID       string    `json:"id"`
	Type     EventType `json:"type"`
	JobID    string    `json:"job_id,omitempty"`
	RunID    string    `json:"run_id,omitempty"`
	Service  string    `json:"service"`
	Status   string    `json:"status,omitempty"`
	Previous string    `json:"previous,omitempty"`
	Start    int64     `json:"start,omitempty"`
	End      int64     `json:"end,omitempty"`
	Time     time.Time `json:"time"`
}

// NewJobEvent describes j at the moment of the call.
func NewJobEvent(t EventType, j *job.TimedJob) *Event {
	iv := j.Interval()
	return &Event{
		ID:      uuid.NewString(),
		Type:    t,
		JobID:   j.ID.String(),
		Service: j.Service,
		Status:  j.Status().String(),
		Start:   iv.Start,
		End:     iv.End,
		Time:    time.Now().UTC(),
	}
}

// Encode returns the wire form of e.
func (e *Event) Encode() ([]byte, error) {
	return json.Marshal(e)
}
