package worker

import (
	"context"
	"time"

	"github.com/google/wire"
)

// ProviderSet is the wire provider set for the worker package.
var ProviderSet = wire.NewSet(ProvidePool)

// ProvidePool creates and starts a Pool. The cleanup function stops it,
// waiting up to 30 seconds for queued tasks.
func ProvidePool(cfg *Config) (*Pool, func(), error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	pool := NewPool(cfg)
	pool.Start()

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		pool.Stop(ctx)
	}

	return pool, cleanup, nil
}
