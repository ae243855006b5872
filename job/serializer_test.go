package job_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ncobase/longrun/job"
	"github.com/ncobase/longrun/job/jobtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalByteForm(t *testing.T) {
	j := job.NewTimedJob("svc", "job 1", "duration 7", 7)
	require.NoError(t, j.Start(jobtest.Epoch))
	j.Evaluate(jobtest.Epoch)

	data, n, err := job.Marshal(j)
	require.NoError(t, err)
	assert.Equal(t, len(data), n)
	assert.Equal(t, job.Terminator, data[n-1])
	assert.Equal(t, 1, bytes.Count(data, []byte{0}))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data[:n-1], &doc))
	assert.Equal(t, j.ID.String(), doc[job.FieldID])
	assert.Equal(t, "STARTED", doc[job.FieldStatus])
	assert.Equal(t, job.JobType, doc[job.FieldType])
	assert.Equal(t, "svc", doc[job.FieldService])
	assert.EqualValues(t, jobtest.Epoch.Unix()+7, doc[job.FieldEnd])
	assert.Contains(t, string(data), "\n  \"")
}

func TestUnmarshalRoundTrip(t *testing.T) {
	clock := jobtest.NewClock(jobtest.Epoch)
	j := job.NewTimedJob("svc", "job 2", "duration 30", 30)
	require.NoError(t, j.Start(clock.Now()))
	j.Evaluate(clock.Now())
	j.SetAddedToRegistry(true)

	data, _, err := job.Marshal(j)
	require.NoError(t, err)

	reg := newFakeRegistry()
	s := &job.Serializer{Clock: clock}
	got, err := s.Unmarshal(context.Background(), data, reg)
	require.NoError(t, err)

	assert.Equal(t, j.ID, got.ID)
	assert.Equal(t, j.Name, got.Name)
	assert.Equal(t, j.Description, got.Description)
	assert.Equal(t, j.Type, got.Type)
	assert.Equal(t, j.Interval(), got.Interval())
	assert.Equal(t, job.StatusStarted, got.Status())
	assert.True(t, got.AddedToRegistry())
	assert.Empty(t, reg.removed)
}

func TestUnmarshalReconcilesFinishedJob(t *testing.T) {
	clock := jobtest.NewClock(jobtest.Epoch)
	j := job.NewTimedJob("svc", "job 0", "duration 5", 5)
	require.NoError(t, j.Start(clock.Now()))
	j.Evaluate(clock.Now())
	j.SetAddedToRegistry(true)
	data, _, err := job.Marshal(j)
	require.NoError(t, err)

	clock.Advance(10 * time.Second)
	reg := newFakeRegistry()
	notes := &recordingNotifier{}
	s := &job.Serializer{Clock: clock, Notifier: notes}

	got, err := s.Unmarshal(context.Background(), data, reg)
	require.NoError(t, err)
	assert.Equal(t, job.StatusSucceeded, got.Status())
	assert.False(t, got.AddedToRegistry())
	assert.Equal(t, []uuid.UUID{j.ID}, reg.removed)
	assert.Len(t, notes.reconciled, 1)
}

func TestUnmarshalWithoutRegistryDoesNotNotify(t *testing.T) {
	clock := jobtest.NewClock(jobtest.Epoch)
	j := job.NewTimedJob("svc", "job 0", "duration 5", 5)
	require.NoError(t, j.Start(clock.Now()))
	j.Evaluate(clock.Now())
	j.SetAddedToRegistry(true)
	data, _, err := job.Marshal(j)
	require.NoError(t, err)

	clock.Advance(time.Minute)
	notes := &recordingNotifier{}
	got, err := (&job.Serializer{Clock: clock, Notifier: notes}).Unmarshal(context.Background(), data, nil)
	require.NoError(t, err)
	assert.Equal(t, job.StatusSucceeded, got.Status())
	assert.False(t, got.AddedToRegistry())
	assert.Empty(t, notes.reconciled)
}

func TestUnmarshalIdleJobKeepsDuration(t *testing.T) {
	j := job.NewTimedJob("svc", "job 0", "duration 12", 12)
	data, _, err := job.Marshal(j)
	require.NoError(t, err)

	got, err := (&job.Serializer{Clock: jobtest.NewClock(jobtest.Epoch)}).Unmarshal(context.Background(), data, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(12), got.Interval().Duration)
	assert.Equal(t, job.StatusIdle, got.Status())
}

func TestUnmarshalDerivesDuration(t *testing.T) {
	doc := []byte(`{"id":"0b6c4f52-8f3f-4d5c-9a43-5b3f1b0c6a11","start":100,"end":160}`)
	got, err := (&job.Serializer{Clock: jobtest.NewClock(time.Unix(120, 0))}).Unmarshal(context.Background(), doc, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(60), got.Interval().Duration)
	assert.Equal(t, job.StatusStarted, got.Status())
	assert.False(t, got.AddedToRegistry())
}

func TestUnmarshalMissingFields(t *testing.T) {
	s := &job.Serializer{Clock: jobtest.NewClock(jobtest.Epoch)}
	tests := []struct {
		name  string
		doc   string
		field string
	}{
		{"no id", `{"start":1,"end":2}`, job.FieldID},
		{"no start", `{"id":"0b6c4f52-8f3f-4d5c-9a43-5b3f1b0c6a11","end":2}`, job.FieldStart},
		{"no end", `{"id":"0b6c4f52-8f3f-4d5c-9a43-5b3f1b0c6a11","start":1}`, job.FieldEnd},
		{"string start", `{"id":"0b6c4f52-8f3f-4d5c-9a43-5b3f1b0c6a11","start":"1","end":2}`, job.FieldStart},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Unmarshal(context.Background(), []byte(tt.doc), nil)
			var missing *job.MissingFieldError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, tt.field, missing.Field)
			assert.ErrorIs(t, err, job.ErrInvalidJobDocument)
			assert.EqualError(t, err, "invalid job document: "+tt.field+" required")
		})
	}
}

func TestUnmarshalRejectsBadInput(t *testing.T) {
	s := &job.Serializer{Clock: jobtest.NewClock(jobtest.Epoch)}
	_, err := s.Unmarshal(context.Background(), []byte("not json\x00"), nil)
	assert.ErrorIs(t, err, job.ErrInvalidJobDocument)

	_, err = s.Unmarshal(context.Background(), []byte(`{"id":"nope","start":1,"end":2}`), nil)
	assert.ErrorIs(t, err, job.ErrInvalidJobDocument)
}

func TestUnmarshalRejectsTrailingData(t *testing.T) {
	s := &job.Serializer{Clock: jobtest.NewClock(jobtest.Epoch)}
	doc := `{"id":"0b6c4f52-8f3f-4d5c-9a43-5b3f1b0c6a11","start":1,"end":2}`

	for _, tail := range []string{"garbage", " {}", "\x00{}"} {
		_, err := s.Unmarshal(context.Background(), []byte(doc+tail), nil)
		assert.ErrorIs(t, err, job.ErrInvalidJobDocument, "tail %q", tail)
	}

	for _, tail := range []string{"", "\n", "  \n\x00"} {
		_, err := s.Unmarshal(context.Background(), []byte(doc+tail), nil)
		assert.NoError(t, err, "tail %q", tail)
	}
}

func TestUnmarshalRejectsInvalidID(t *testing.T) {
	s := &job.Serializer{Clock: jobtest.NewClock(jobtest.Epoch)}
	_, err := s.Unmarshal(context.Background(), []byte(`{"id":"nope","start":1,"end":2}`), nil)
	require.ErrorIs(t, err, job.ErrInvalidJobDocument)
	assert.Contains(t, err.Error(), "id invalid")
}
