package event

import (
	"context"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

type amqpChannel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// RabbitMQ publishes to a topic exchange with the event type as routing key.
type RabbitMQ struct {
	mu       sync.Mutex
	ch       amqpChannel
	exchange string
	close    func() error
}

func newRabbitMQ(ch amqpChannel, exchange string) (*RabbitMQ, error) {
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("rabbitmq: declare exchange %s: %w", exchange, err)
	}
	return &RabbitMQ{ch: ch, exchange: exchange}, nil
}

func (p *RabbitMQ) Publish(ctx context.Context, e *Event) error {
	data, err := e.Encode()
	if err != nil {
		return err
	}
	// amqp channels are not safe for concurrent publishing.
	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.ch.PublishWithContext(ctx, p.exchange, string(e.Type), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    e.ID,
		Timestamp:    e.Time,
		Type:         string(e.Type),
		Body:         data,
	})
	if err != nil {
		return fmt.Errorf("rabbitmq: publish %s: %w", e.Type, err)
	}
	return nil
}

func (p *RabbitMQ) Close() error {
	if p.close == nil {
		return nil
	}
	return p.close()
}
