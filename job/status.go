package job

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Status is the lifecycle state of a job.
type Status int

const (
	StatusError     Status = -1
	StatusIdle      Status = 0
	StatusPending   Status = 1
	StatusStarted   Status = 2
	StatusSucceeded Status = 5
)

var statusNames = map[Status]string{
	StatusError:     "ERROR",
	StatusIdle:      "IDLE",
	StatusPending:   "PENDING",
	StatusStarted:   "STARTED",
	StatusSucceeded: "SUCCEEDED",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Outstanding reports whether a job in this state still blocks service close.
func (s Status) Outstanding() bool {
	return s == StatusStarted || s == StatusPending
}

// Terminal reports whether the state can no longer change.
func (s Status) Terminal() bool {
	return s == StatusSucceeded || s == StatusError
}

// ParseStatus accepts a status name, case-insensitive.
func ParseStatus(v string) (Status, error) {
	v = strings.ToUpper(strings.TrimSpace(v))
	for s, name := range statusNames {
		if name == v {
			return s, nil
		}
	}
	return StatusError, fmt.Errorf("unknown status %q", v)
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts either the status name or its numeric value.
func (s *Status) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		parsed, err := ParseStatus(name)
		if err != nil {
			return err
		}
		*s = parsed
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("status must be a name or a number: %w", err)
	}
	if _, ok := statusNames[Status(n)]; !ok {
		return fmt.Errorf("unknown status %d", n)
	}
	*s = Status(n)
	return nil
}
