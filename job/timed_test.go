package job_test

import (
	"testing"
	"time"

	"github.com/ncobase/longrun/job"
	"github.com/ncobase/longrun/job/jobtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimedJobStatusRule(t *testing.T) {
	clock := jobtest.NewClock(jobtest.Epoch)
	j := job.NewTimedJob("svc", "job 0", "duration 10", 10)

	status, skew := j.Evaluate(clock.Now())
	assert.Equal(t, job.StatusIdle, status)
	assert.False(t, skew)

	require.NoError(t, j.Start(clock.Now()))
	iv := j.Interval()
	assert.Equal(t, jobtest.Epoch.Unix(), iv.Start)
	assert.Equal(t, iv.Start+10, iv.End)

	tests := []struct {
		name   string
		offset time.Duration
		want   job.Status
		skew   bool
	}{
		{"at start", 0, job.StatusStarted, false},
		{"midway", 5 * time.Second, job.StatusStarted, false},
		{"at end", 10 * time.Second, job.StatusStarted, false},
		{"after end", 11 * time.Second, job.StatusSucceeded, false},
		{"before start", -time.Second, job.StatusError, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, skew := j.Evaluate(jobtest.Epoch.Add(tt.offset))
			assert.Equal(t, tt.want, status)
			assert.Equal(t, tt.skew, skew)
			assert.Equal(t, tt.want, j.Status())
		})
	}
}

func TestTimedJobZeroDuration(t *testing.T) {
	j := job.NewTimedJob("svc", "job 0", "duration 0", 0)
	require.NoError(t, j.Start(jobtest.Epoch))

	status, _ := j.Evaluate(jobtest.Epoch)
	assert.Equal(t, job.StatusStarted, status)
	status, _ = j.Evaluate(jobtest.Epoch.Add(time.Second))
	assert.Equal(t, job.StatusSucceeded, status)
}

func TestTimedJobStartTwice(t *testing.T) {
	j := job.NewTimedJob("svc", "job 0", "duration 3", 3)
	require.NoError(t, j.Start(jobtest.Epoch))
	err := j.Start(jobtest.Epoch.Add(time.Minute))
	assert.ErrorIs(t, err, job.ErrAlreadyStarted)
	assert.Equal(t, jobtest.Epoch.Unix(), j.Interval().Start)
}

func TestStatusNames(t *testing.T) {
	for _, s := range []job.Status{job.StatusError, job.StatusIdle, job.StatusPending, job.StatusStarted, job.StatusSucceeded} {
		parsed, err := job.ParseStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}
	_, err := job.ParseStatus("RUNNING")
	assert.Error(t, err)

	assert.True(t, job.StatusStarted.Outstanding())
	assert.True(t, job.StatusPending.Outstanding())
	assert.False(t, job.StatusIdle.Outstanding())
	assert.False(t, job.StatusSucceeded.Outstanding())
	assert.True(t, job.StatusError.Terminal())
}

func TestJobSetRejectsNilAndDuplicates(t *testing.T) {
	set := job.NewJobSet("svc")
	assert.NotEmpty(t, set.RunID)

	j := job.NewTimedJob("svc", "job 0", "duration 1", 1)
	require.NoError(t, set.Add(j))
	assert.ErrorIs(t, set.Add(j), job.ErrDuplicateJob)
	assert.ErrorIs(t, set.Add(nil), job.ErrNilJob)
	assert.Equal(t, 1, set.Len())

	got, ok := set.Get(j.ID)
	assert.True(t, ok)
	assert.Same(t, j, got)
}
