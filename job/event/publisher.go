package event

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/ncobase/longrun/data"
	"github.com/ncobase/longrun/data/config"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/segmentio/kafka-go"

	_ "github.com/ncobase/longrun/data/kafka"
	_ "github.com/ncobase/longrun/data/nats"
	_ "github.com/ncobase/longrun/data/rabbitmq"
)

// Publisher delivers events to a broker.
type Publisher interface {
	Publish(ctx context.Context, e *Event) error
	Close() error
}

// NewPublisher connects to the broker named by cfg.Driver. An empty driver
// returns a publisher that drops every event.
func NewPublisher(ctx context.Context, cfg *config.Messaging) (Publisher, error) {
	if cfg == nil || cfg.Driver == "" {
		return Noop{}, nil
	}

	driver, err := data.GetMessageDriver(cfg.Driver)
	if err != nil {
		return nil, err
	}
	conn, err := driver.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	closer := func() error { return driver.Close(conn) }

	switch c := conn.(type) {
	case *nats.Conn:
		return &NATS{conn: c, subject: cfg.Topic, close: closer}, nil
	case *kafka.Writer:
		return &Kafka{writer: c, close: closer}, nil
	case *amqp.Connection:
		ch, err := c.Channel()
		if err != nil {
			_ = closer()
			return nil, fmt.Errorf("rabbitmq: failed to open channel: %w", err)
		}
		p, err := newRabbitMQ(ch, cfg.Exchange)
		if err != nil {
			_ = ch.Close()
			_ = closer()
			return nil, err
		}
		p.close = func() error {
			_ = ch.Close()
			return closer()
		}
		return p, nil
	default:
		_ = closer()
		return nil, fmt.Errorf("event: driver %s returned unsupported connection %T", driver.Name(), conn)
	}
}

// Noop drops every event.
type Noop struct{}

func (Noop) Publish(context.Context, *Event) error { return nil }
func (Noop) Close() error                          { return nil }
