// Package rabbitmq registers a RabbitMQ message driver backed by amqp091-go:
//
//	import _ "github.com/ncobase/longrun/data/rabbitmq"
//
// Connect returns an *amqp.Connection.
package rabbitmq

import (
	"context"
	"fmt"
	"net"

	"github.com/ncobase/longrun/data"
	"github.com/ncobase/longrun/data/config"
	amqp "github.com/rabbitmq/amqp091-go"
)

// driver implements data.MessageDriver for RabbitMQ.
type driver struct{}

func (d *driver) Name() string {
	return "rabbitmq"
}

func (d *driver) Connect(ctx context.Context, cfg any) (any, error) {
	rmqCfg, ok := cfg.(*config.Messaging)
	if !ok {
		return nil, fmt.Errorf("rabbitmq: invalid configuration type, expected *config.Messaging")
	}

	if rmqCfg.URL == "" {
		return nil, fmt.Errorf("rabbitmq: url is empty")
	}

	conn, err := amqp.DialConfig(rmqCfg.URL, amqp.Config{
		Dial: func(network, addr string) (net.Conn, error) {
			return (&net.Dialer{Timeout: rmqCfg.ConnectTimeout}).DialContext(ctx, network, addr)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("rabbitmq: failed to connect: %w", err)
	}

	return conn, nil
}

func (d *driver) Close(conn any) error {
	c, ok := conn.(*amqp.Connection)
	if !ok {
		return fmt.Errorf("rabbitmq: invalid connection type, expected *amqp.Connection")
	}

	if c.IsClosed() {
		return nil
	}
	if err := c.Close(); err != nil {
		return fmt.Errorf("rabbitmq: failed to close connection: %w", err)
	}

	return nil
}

func init() {
	data.RegisterMessageDriver(&driver{})
}
