// Package postgres registers the "postgres" database driver backed by the
// pgx database/sql adapter. Import it for its side effect:
//
//	import _ "github.com/ncobase/longrun/data/postgres"
//
// It lets several service instances share one durable job registry.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ncobase/longrun/data"
	"github.com/ncobase/longrun/data/config"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type driver struct{}

func (d *driver) Name() string {
	return "postgres"
}

// Connect opens cfg.Source, a postgres:// URL or key=value DSN, and pings it.
func (d *driver) Connect(ctx context.Context, cfg any) (any, error) {
	node, ok := cfg.(*config.DBNode)
	if !ok {
		return nil, fmt.Errorf("postgres: invalid configuration type %T, expected *config.DBNode", cfg)
	}
	if node.Source == "" {
		return nil, fmt.Errorf("postgres: connection source is empty")
	}

	db, err := sql.Open("pgx", node.Source)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to open connection: %w", err)
	}
	if node.MaxIdleConn > 0 {
		db.SetMaxIdleConns(node.MaxIdleConn)
	}
	if node.MaxOpenConn > 0 {
		db.SetMaxOpenConns(node.MaxOpenConn)
	}
	if node.ConnMaxLifeTime > 0 {
		db.SetConnMaxLifetime(node.ConnMaxLifeTime)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: failed to ping database: %w", err)
	}
	return db, nil
}

func (d *driver) Close(conn any) error {
	db, ok := conn.(*sql.DB)
	if !ok {
		return fmt.Errorf("postgres: invalid connection type %T", conn)
	}
	return db.Close()
}

func (d *driver) Ping(ctx context.Context, conn any) error {
	db, ok := conn.(*sql.DB)
	if !ok {
		return fmt.Errorf("postgres: invalid connection type %T", conn)
	}
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("postgres: ping failed: %w", err)
	}
	return nil
}

func init() {
	data.RegisterDatabaseDriver(&driver{})
}
