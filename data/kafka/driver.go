// Package kafka registers a Kafka message driver backed by kafka-go:
//
//	import _ "github.com/ncobase/longrun/data/kafka"
//
// Connect returns a *kafka.Writer bound to the configured topic. The broker is
// dialled once up front so a bad address fails at startup.
package kafka

import (
	"context"
	"fmt"

	"github.com/ncobase/longrun/data"
	"github.com/ncobase/longrun/data/config"
	"github.com/segmentio/kafka-go"
)

// driver implements data.MessageDriver for Kafka.
type driver struct{}

// Name returns the driver identifier used in configuration files.
func (d *driver) Name() string {
	return "kafka"
}

// Connect builds a writer for cfg.Topic across cfg.Brokers.
func (d *driver) Connect(ctx context.Context, cfg any) (any, error) {
	kafkaCfg, ok := cfg.(*config.Messaging)
	if !ok {
		return nil, fmt.Errorf("kafka: invalid configuration type, expected *config.Messaging")
	}

	if len(kafkaCfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka: brokers are empty")
	}

	dialCtx := ctx
	if kafkaCfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, kafkaCfg.ConnectTimeout)
		defer cancel()
	}
	conn, err := kafka.DialContext(dialCtx, "tcp", kafkaCfg.Brokers[0])
	if err != nil {
		return nil, fmt.Errorf("kafka: failed to connect: %w", err)
	}
	_ = conn.Close()

	return &kafka.Writer{
		Addr:                   kafka.TCP(kafkaCfg.Brokers...),
		Topic:                  kafkaCfg.Topic,
		Balancer:               &kafka.Hash{},
		WriteTimeout:           kafkaCfg.PublishTimeout,
		AllowAutoTopicCreation: true,
	}, nil
}

// Close flushes and closes the writer.
func (d *driver) Close(conn any) error {
	w, ok := conn.(*kafka.Writer)
	if !ok {
		return fmt.Errorf("kafka: invalid connection type, expected *kafka.Writer")
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("kafka: failed to close writer: %w", err)
	}

	return nil
}

func init() {
	data.RegisterMessageDriver(&driver{})
}
