// Package data opens the backing stores selected in configuration through the
// registered drivers.
package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ncobase/longrun/data/config"
	"github.com/redis/go-redis/v9"
)

// Data holds the connections the job registries and event publishers use.
// Only the connections that were requested are non-nil.
type Data struct {
	DB    *sql.DB
	Redis *redis.Client

	dbDriver    DatabaseDriver
	cacheDriver CacheDriver
}

// Option selects which connection New opens.
type Option func(*options)

type options struct {
	database bool
	cache    bool
}

// WithDatabase opens the master database node.
func WithDatabase() Option {
	return func(o *options) { o.database = true }
}

// WithCache opens the Redis connection.
func WithCache() Option {
	return func(o *options) { o.cache = true }
}

// New connects to the requested backends and returns a cleanup function.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Data, func(), error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if cfg == nil {
		cfg = &config.Config{}
	}

	d := &Data{}

	if o.database {
		if cfg.Database == nil || cfg.Database.Master == nil {
			return nil, nil, errors.New("data: database master node is not configured")
		}
		driver, err := GetDatabaseDriver(cfg.Database.Master.Driver)
		if err != nil {
			return nil, nil, err
		}
		conn, err := driver.Connect(ctx, cfg.Database.Master)
		if err != nil {
			return nil, nil, err
		}
		db, ok := conn.(*sql.DB)
		if !ok {
			_ = driver.Close(conn)
			return nil, nil, fmt.Errorf("data: driver %s did not return *sql.DB", driver.Name())
		}
		d.DB, d.dbDriver = db, driver
	}

	if o.cache {
		if cfg.Redis == nil {
			d.Close()
			return nil, nil, errors.New("data: redis is not configured")
		}
		driver, err := GetCacheDriver("redis")
		if err != nil {
			d.Close()
			return nil, nil, err
		}
		conn, err := driver.Connect(ctx, cfg.Redis)
		if err != nil {
			d.Close()
			return nil, nil, err
		}
		client, ok := conn.(*redis.Client)
		if !ok {
			_ = driver.Close(conn)
			d.Close()
			return nil, nil, fmt.Errorf("data: driver %s did not return *redis.Client", driver.Name())
		}
		d.Redis, d.cacheDriver = client, driver
	}

	cleanup := func() {
		if errs := d.Close(); len(errs) > 0 {
			fmt.Printf("cleanup errors: %v\n", errs)
		}
	}
	return d, cleanup, nil
}

// DatabaseDriver names the driver behind DB, empty when no database is open.
func (d *Data) DatabaseDriver() string {
	if d == nil || d.DB == nil || d.dbDriver == nil {
		return ""
	}
	return d.dbDriver.Name()
}

// Ping checks every open connection.
func (d *Data) Ping(ctx context.Context) error {
	if d.DB != nil {
		if err := d.dbDriver.Ping(ctx, d.DB); err != nil {
			return err
		}
	}
	if d.Redis != nil {
		if err := d.cacheDriver.Ping(ctx, d.Redis); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every open connection and collects the errors.
func (d *Data) Close() []error {
	var errs []error
	if d.DB != nil && d.dbDriver != nil {
		if err := d.dbDriver.Close(d.DB); err != nil {
			errs = append(errs, err)
		}
		d.DB = nil
	}
	if d.Redis != nil && d.cacheDriver != nil {
		if err := d.cacheDriver.Close(d.Redis); err != nil {
			errs = append(errs, err)
		}
		d.Redis = nil
	}
	return errs
}
