package sqlite

import (
	"context"
	"database/sql"
	"testing"

	"github.com/ncobase/longrun/data"
	"github.com/ncobase/longrun/data/config"
)

func TestNewOpensSQLite(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{
		Database: &config.Database{Master: &config.DBNode{Driver: "sqlite", Source: ":memory:"}},
	}

	d, cleanup, err := data.New(ctx, cfg, data.WithDatabase())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer cleanup()

	if d.DB == nil {
		t.Fatal("expected a database handle")
	}
	if d.Redis != nil {
		t.Error("redis opened without WithCache")
	}
	if err := d.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if st := d.DB.Stats(); st.MaxOpenConnections != 1 {
		t.Errorf("max open conns = %d, want 1", st.MaxOpenConnections)
	}
}

func TestConnectRejectsEmptySource(t *testing.T) {
	drv, err := data.GetDatabaseDriver("sqlite")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := drv.Connect(context.Background(), &config.DBNode{}); err == nil {
		t.Fatal("expected error for empty source")
	}
	if _, err := drv.Connect(context.Background(), "bogus"); err == nil {
		t.Fatal("expected error for wrong config type")
	}
}

func TestMemorySourceUsesOneConnection(t *testing.T) {
	drv, err := data.GetDatabaseDriver("sqlite")
	if err != nil {
		t.Fatal(err)
	}
	conn, err := drv.Connect(context.Background(), &config.DBNode{Source: "file::memory:?cache=shared", MaxOpenConn: 8})
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer drv.Close(conn)

	db := conn.(*sql.DB)
	if st := db.Stats(); st.MaxOpenConnections != 1 {
		t.Errorf("max open conns = %d, want 1", st.MaxOpenConnections)
	}
}

func TestWithParam(t *testing.T) {
	tests := map[string]string{
		"jobs.db":            "file:jobs.db?_busy_timeout=5000",
		"file:jobs.db?_fk=1": "file:jobs.db?_fk=1&_busy_timeout=5000",
		"file:/tmp/jobs.db":  "file:/tmp/jobs.db?_busy_timeout=5000",
	}
	for in, want := range tests {
		if got := withParam(in, "_busy_timeout=5000"); got != want {
			t.Errorf("withParam(%q) = %q, want %q", in, got, want)
		}
	}
}
