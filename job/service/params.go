package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ncobase/longrun/job"
	"github.com/ncobase/longrun/validator"
	"github.com/spf13/cast"
)

// ParamError lists the parameters that failed validation, keyed by name.
type ParamError struct {
	Fields map[string]string
}

func (e *ParamError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, len(keys))
	for i, k := range keys {
		msgs[i] = e.Fields[k]
	}
	return fmt.Sprintf("%s: %s", job.ErrInvalidParams, strings.Join(msgs, " "))
}

func (e *ParamError) Unwrap() error { return job.ErrInvalidParams }

// ValidateParams reads the run inputs from raw, accepting either the display
// names or the snake_case keys. Missing values take the configured defaults.
func (s *LongRunning) ValidateParams(raw map[string]any) (*job.RunParams, error) {
	p := &job.RunParams{
		NumberOfJobs: s.cfg.DefaultNumberOfJobs,
		MinDuration:  s.cfg.DefaultMinDuration,
	}
	fields := map[string]string{}

	if v, ok := lookupParam(raw, ParamNumberOfJobs, "number_of_jobs"); ok {
		n, err := toUint32(v)
		if err != nil {
			fields["number_of_jobs"] = fmt.Sprintf("The field 'number_of_jobs' must be an unsigned integer: %v", err)
		} else {
			p.NumberOfJobs = n
		}
	}
	if v, ok := lookupParam(raw, ParamMinDuration, "min_duration"); ok {
		d, err := toInt32(v)
		if err != nil {
			fields["min_duration"] = fmt.Sprintf("The field 'min_duration' must be an integer: %v", err)
		} else {
			p.MinDuration = d
		}
	}
	if len(fields) > 0 {
		return nil, &ParamError{Fields: fields}
	}

	fields = validator.ValidateStruct(p)
	if s.cfg.MaxJobs > 0 && p.NumberOfJobs > s.cfg.MaxJobs {
		fields["number_of_jobs"] = fmt.Sprintf("The field 'number_of_jobs' must be at most %d.", s.cfg.MaxJobs)
	}
	if len(fields) > 0 {
		return nil, &ParamError{Fields: fields}
	}
	return p, nil
}

func lookupParam(raw map[string]any, names ...string) (any, bool) {
	for _, name := range names {
		if v, ok := raw[name]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// errFractional rejects numbers cast would otherwise truncate.
var errFractional = errors.New("value has a fractional part")

func wholeNumber(v any) error {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case json.Number:
		if _, err := n.Int64(); err == nil {
			return nil
		}
		parsed, err := n.Float64()
		if err != nil {
			return err
		}
		f = parsed
	default:
		return nil
	}
	if f != math.Trunc(f) {
		return errFractional
	}
	return nil
}

func toUint32(v any) (uint32, error) {
	if err := wholeNumber(v); err != nil {
		return 0, err
	}
	return cast.ToUint32E(v)
}

func toInt32(v any) (int32, error) {
	if err := wholeNumber(v); err != nil {
		return 0, err
	}
	return cast.ToInt32E(v)
}
