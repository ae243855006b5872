package job

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/ncobase/longrun/ecode"
	"github.com/ncobase/longrun/logging/logger"
)

// Document is the structured form of a job, keyed by the schema field names.
type Document map[string]any

// ToDocument captures the current state of j.
func ToDocument(j *TimedJob) Document {
	j.mu.Lock()
	defer j.mu.Unlock()

	doc := Document{
		FieldID:          j.ID.String(),
		FieldName:        j.Name,
		FieldDescription: j.Description,
		FieldType:        j.Type,
		FieldService:     j.Service,
		FieldStatus:      j.status.String(),
		FieldStart:       j.interval.Start,
		FieldEnd:         j.interval.End,
		FieldDuration:    j.interval.Duration,
		FieldAdded:       j.added,
	}
	if j.result != nil {
		doc[FieldResult] = j.result
	}
	return doc
}

// Marshal returns the byte form of j: indented JSON followed by the
// terminator byte. The returned length includes the terminator.
func Marshal(j *TimedJob) ([]byte, int, error) {
	if j == nil {
		return nil, 0, ErrNilJob
	}
	data, err := json.MarshalIndent(ToDocument(j), "", "  ")
	if err != nil {
		return nil, 0, fmt.Errorf("failed to marshal job %s: %w", j.ID, err)
	}
	data = append(data, Terminator)
	return data, len(data), nil
}

// Serializer rehydrates jobs and reconciles the registry with their
// recomputed status.
type Serializer struct {
	Clock    Clock
	Notifier Notifier
}

// Unmarshal parses the byte form produced by Marshal. A trailing terminator
// is optional; anything else after the document is rejected.
func (s *Serializer) Unmarshal(ctx context.Context, data []byte, reg Registry) (*TimedJob, error) {
	data = bytes.TrimRight(data, "\x00")
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJobDocument, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after document", ErrInvalidJobDocument)
	}
	return s.FromDocument(ctx, doc, reg)
}

// FromDocument rebuilds a job from doc. When the document says STARTED but
// the clock says otherwise, the added flag is cleared and, if reg is set, the
// job is removed from it and the notifier is told.
func (s *Serializer) FromDocument(ctx context.Context, doc Document, reg Registry) (*TimedJob, error) {
	id, err := docUUID(doc, FieldID)
	if err != nil {
		logger.Errorf(ctx, "Failed to get %q from job document: %v", FieldID, err)
		return nil, err
	}
	start, err := docInt(doc, FieldStart)
	if err != nil {
		logger.Errorf(ctx, "Failed to get %q from job document", FieldStart)
		return nil, err
	}
	end, err := docInt(doc, FieldEnd)
	if err != nil {
		logger.Errorf(ctx, "Failed to get %q from job document", FieldEnd)
		return nil, err
	}
	duration, err := docInt(doc, FieldDuration)
	if err != nil {
		duration = end - start
	}

	stored := StatusIdle
	if raw, ok := doc[FieldStatus]; ok {
		if stored, err = docStatus(raw); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidJobDocument, FieldStatus, err)
		}
	}

	j := &TimedJob{
		ServiceJob: ServiceJob{
			ID:          id,
			Name:        docString(doc, FieldName),
			Description: docString(doc, FieldDescription),
			Type:        docString(doc, FieldType),
			Service:     docString(doc, FieldService),
		},
		interval: TimeInterval{Start: start, End: end, Duration: duration},
		status:   stored,
		result:   doc[FieldResult],
	}
	if added, ok := doc[FieldAdded].(bool); ok {
		j.added = added
	}

	clock := s.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	current, skew := j.Evaluate(clock.Now())
	if skew {
		logger.Warnf(ctx, "Job %s starts in the future, clock skew suspected", j.ID)
	}

	if stored == StatusStarted && current != StatusStarted {
		j.SetAddedToRegistry(false)
		if reg == nil {
			return j, nil
		}
		if err := reg.Remove(ctx, j.ID, false); err != nil {
			logger.Errorf(ctx, "Failed to remove job %s from the job registry: %v", j.ID, err)
		}
		if s.Notifier != nil {
			s.Notifier.JobReconciled(ctx, j, stored)
		}
	}
	return j, nil
}

func docString(doc Document, key string) string {
	v, _ := doc[key].(string)
	return v
}

func docUUID(doc Document, key string) (uuid.UUID, error) {
	v, ok := doc[key].(string)
	if !ok {
		return uuid.Nil, &MissingFieldError{Field: key}
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s: %v", ErrInvalidJobDocument, ecode.FieldIsInvalid(key), err)
	}
	return id, nil
}

// docInt accepts json.Number from a UseNumber decoder as well as native
// integer values from a document built in memory.
func docInt(doc Document, key string) (int64, error) {
	switch v := doc[key].(type) {
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, &MissingFieldError{Field: key}
		}
		return n, nil
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case float64:
		if v != float64(int64(v)) {
			return 0, &MissingFieldError{Field: key}
		}
		return int64(v), nil
	default:
		return 0, &MissingFieldError{Field: key}
	}
}

func docStatus(raw any) (Status, error) {
	switch v := raw.(type) {
	case string:
		return ParseStatus(v)
	case json.Number:
		var s Status
		if err := s.UnmarshalJSON([]byte(v)); err != nil {
			return StatusError, err
		}
		return s, nil
	default:
		return StatusError, fmt.Errorf("unexpected type %T", raw)
	}
}
