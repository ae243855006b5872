// Package nats registers a NATS message driver:
//
//	import _ "github.com/ncobase/longrun/data/nats"
//
// Connect returns a *nats.Conn with reconnects enabled.
package nats

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/ncobase/longrun/data"
	"github.com/ncobase/longrun/data/config"
)

type driver struct{}

func (d *driver) Name() string {
	return "nats"
}

func (d *driver) Connect(_ context.Context, cfg any) (any, error) {
	natsCfg, ok := cfg.(*config.Messaging)
	if !ok {
		return nil, fmt.Errorf("nats: invalid configuration type, expected *config.Messaging")
	}

	url := natsCfg.URL
	if url == "" {
		url = nats.DefaultURL
	}

	name := natsCfg.ClientID
	if name == "" {
		name = "longrun"
	}

	nc, err := nats.Connect(url,
		nats.Name(name),
		nats.Timeout(natsCfg.ConnectTimeout),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats: failed to connect: %w", err)
	}

	return nc, nil
}

func (d *driver) Close(conn any) error {
	nc, ok := conn.(*nats.Conn)
	if !ok {
		return fmt.Errorf("nats: invalid connection type, expected *nats.Conn")
	}

	if err := nc.Drain(); err != nil {
		nc.Close()
		return fmt.Errorf("nats: drain failed: %w", err)
	}
	return nil
}

func init() {
	data.RegisterMessageDriver(&driver{})
}
