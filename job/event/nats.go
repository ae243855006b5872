package event

import (
	"context"
	"fmt"
)

type natsConn interface {
	Publish(subject string, data []byte) error
}

// NATS publishes each event on {subject}.{event type}.
type NATS struct {
	conn    natsConn
	subject string
	close   func() error
}

func (p *NATS) Publish(ctx context.Context, e *Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := e.Encode()
	if err != nil {
		return err
	}
	if err := p.conn.Publish(p.subject+"."+string(e.Type), data); err != nil {
		return fmt.Errorf("nats: publish %s: %w", e.Type, err)
	}
	return nil
}

func (p *NATS) Close() error {
	if p.close == nil {
		return nil
	}
	return p.close()
}
