// Package sqlite registers the "sqlite" database driver backed by
// mattn/go-sqlite3. Import it for its side effect:
//
//	import _ "github.com/ncobase/longrun/data/sqlite"
//
// The durable job registry keeps its timed_jobs table here.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ncobase/longrun/data"
	"github.com/ncobase/longrun/data/config"

	_ "github.com/mattn/go-sqlite3"
)

// busyTimeoutMillis is applied to file databases so a registry write waits
// for a concurrent writer instead of failing with SQLITE_BUSY.
const busyTimeoutMillis = 5000

type driver struct{}

func (d *driver) Name() string {
	return "sqlite"
}

// Connect opens cfg.Source and pings it. In-memory sources are pinned to a
// single connection, since every new connection would see an empty database.
func (d *driver) Connect(ctx context.Context, cfg any) (any, error) {
	node, ok := cfg.(*config.DBNode)
	if !ok {
		return nil, fmt.Errorf("sqlite: invalid configuration type %T, expected *config.DBNode", cfg)
	}
	if node.Source == "" {
		return nil, fmt.Errorf("sqlite: connection source is empty")
	}

	source := node.Source
	memory := isMemory(source)
	if !memory && !strings.Contains(source, "_busy_timeout") {
		source = withParam(source, fmt.Sprintf("_busy_timeout=%d", busyTimeoutMillis))
	}

	db, err := sql.Open("sqlite3", source)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open %s: %w", node.Source, err)
	}

	maxOpen := node.MaxOpenConn
	if memory || maxOpen <= 0 {
		maxOpen = 1
	}
	db.SetMaxOpenConns(maxOpen)
	if node.MaxIdleConn > 0 {
		db.SetMaxIdleConns(node.MaxIdleConn)
	} else {
		db.SetMaxIdleConns(maxOpen)
	}
	if node.ConnMaxLifeTime > 0 && !memory {
		db.SetConnMaxLifetime(node.ConnMaxLifeTime)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: failed to ping database: %w", err)
	}
	return db, nil
}

func (d *driver) Close(conn any) error {
	db, ok := conn.(*sql.DB)
	if !ok {
		return fmt.Errorf("sqlite: invalid connection type %T", conn)
	}
	return db.Close()
}

func (d *driver) Ping(ctx context.Context, conn any) error {
	db, ok := conn.(*sql.DB)
	if !ok {
		return fmt.Errorf("sqlite: invalid connection type %T", conn)
	}
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlite: ping failed: %w", err)
	}
	return nil
}

func isMemory(source string) bool {
	return source == ":memory:" || strings.Contains(source, ":memory:") || strings.Contains(source, "mode=memory")
}

func withParam(source, param string) string {
	if !strings.HasPrefix(source, "file:") {
		source = "file:" + source
	}
	if strings.Contains(source, "?") {
		return source + "&" + param
	}
	return source + "?" + param
}

func init() {
	data.RegisterDatabaseDriver(&driver{})
}
