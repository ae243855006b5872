package job_test

import (
	"context"
	"testing"

	"github.com/ncobase/longrun/job"
	"github.com/ncobase/longrun/job/jobtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunnerRun(t *testing.T) {
	clock := jobtest.NewClock(jobtest.Epoch)
	reg := newFakeRegistry()
	notes := &recordingNotifier{}
	r := &job.Runner{Service: "svc", Clock: clock, Registry: reg, Notifier: notes, Rand: jobtest.NewSeq(3)}

	set, err := r.Run(context.Background(), job.RunParams{NumberOfJobs: 3, MinDuration: 1})
	require.NoError(t, err)
	require.Equal(t, 3, set.Len())

	for _, j := range set.Jobs() {
		iv := j.Interval()
		assert.Equal(t, jobtest.Epoch.Unix(), iv.Start)
		assert.Equal(t, iv.Start+4, iv.End)
		assert.Equal(t, job.StatusStarted, j.Status())
		assert.True(t, j.AddedToRegistry())

		got, err := reg.Lookup(context.Background(), j.ID)
		require.NoError(t, err)
		assert.Same(t, j, got)
	}
	assert.Equal(t, set.IDs(), notes.started)
}

func TestRunnerRegistrationFailureContinues(t *testing.T) {
	clock := jobtest.NewClock(jobtest.Epoch)
	reg := newFakeRegistry()
	reg.failAll = true
	r := &job.Runner{Service: "svc", Clock: clock, Registry: reg}

	set, err := r.Run(context.Background(), job.RunParams{NumberOfJobs: 2})
	require.NoError(t, err)
	require.Equal(t, 2, set.Len())
	for _, j := range set.Jobs() {
		assert.False(t, j.AddedToRegistry())
		assert.Equal(t, job.StatusStarted, j.Status())
	}
}

func TestRunnerInvalidParams(t *testing.T) {
	r := &job.Runner{Service: "svc"}
	_, err := r.Run(context.Background(), job.RunParams{NumberOfJobs: 0})
	assert.ErrorIs(t, err, job.ErrInvalidParams)
}
