package job

import (
	"fmt"
	"math/rand/v2"
)

// DurationSpread is the width of the random window added to the minimum
// duration of every job.
const DurationSpread = 60

// IntN is the slice of a random source the factory needs. *rand.Rand
// satisfies it.
type IntN interface {
	IntN(n int) int
}

// BuildJobSet creates n idle jobs for service. Each job runs for
// minDuration plus a random number of seconds in [0, DurationSpread).
// Either every job is built or none is.
func BuildJobSet(service string, n uint32, minDuration int32, rng IntN) (*JobSet, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: number of jobs must be at least 1", ErrInvalidParams)
	}
	if minDuration < 0 {
		return nil, fmt.Errorf("%w: minimum duration must not be negative", ErrInvalidParams)
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	set := NewJobSet(service)
	for i := uint32(0); i < n; i++ {
		duration := int64(minDuration) + int64(rng.IntN(DurationSpread))
		j := NewTimedJob(service, fmt.Sprintf("job %d", i), fmt.Sprintf("duration %d", duration), duration)
		if err := set.Add(j); err != nil {
			return nil, fmt.Errorf("failed to build job %d: %w", i, err)
		}
	}
	return set, nil
}
