package job

// TimeInterval is the wall-clock window of a timed job in epoch seconds.
// Start and End stay zero until the interval is started.
type TimeInterval struct {
	Start    int64 `json:"start"`
	End      int64 `json:"end"`
	Duration int64 `json:"duration"`
}

// Started reports whether the interval has been stamped.
func (i TimeInterval) Started() bool {
	return i.Start != 0 || i.End != 0
}

// statusAt applies the status rule at now. skew is true when now is before
// the start of the interval.
func (i TimeInterval) statusAt(now int64) (status Status, skew bool) {
	switch {
	case !i.Started():
		return StatusIdle, false
	case now < i.Start:
		return StatusError, true
	case now <= i.End:
		return StatusStarted, false
	default:
		return StatusSucceeded, false
	}
}
