package event

import (
	"context"
	"fmt"

	"github.com/segmentio/kafka-go"
)

type kafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Kafka writes events to the writer's topic keyed by job id, so events for
// one job stay ordered within a partition.
type Kafka struct {
	writer kafkaWriter
	close  func() error
}

func (p *Kafka) Publish(ctx context.Context, e *Event) error {
	data, err := e.Encode()
	if err != nil {
		return err
	}
	key := e.JobID
	if key == "" {
		key = e.Service
	}
	msg := kafka.Message{
		Key:   []byte(key),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(e.Type)},
		},
		Time: e.Time,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: publish %s: %w", e.Type, err)
	}
	return nil
}

func (p *Kafka) Close() error {
	if p.close == nil {
		return nil
	}
	return p.close()
}
