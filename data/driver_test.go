package data

import (
	"context"
	"strings"
	"sync"
	"testing"
)

// Mock driver for testing
type mockDriver struct {
	name string
}

func (d *mockDriver) Name() string { return d.name }
func (d *mockDriver) Connect(ctx context.Context, cfg any) (any, error) {
	return "mock-connection", nil
}
func (d *mockDriver) Close(conn any) error                     { return nil }
func (d *mockDriver) Ping(ctx context.Context, conn any) error { return nil }

func resetRegistries() {
	databaseDriversMu.Lock()
	databaseDrivers = make(map[string]DatabaseDriver)
	databaseDriversMu.Unlock()

	cacheDriversMu.Lock()
	cacheDrivers = make(map[string]CacheDriver)
	cacheDriversMu.Unlock()

	messageDriversMu.Lock()
	messageDrivers = make(map[string]MessageDriver)
	messageDriversMu.Unlock()
}

func TestRegisterDatabaseDriver(t *testing.T) {
	resetRegistries()

	RegisterDatabaseDriver(&mockDriver{name: "test-db"})

	retrieved, err := GetDatabaseDriver("test-db")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if retrieved.Name() != "test-db" {
		t.Errorf("expected driver name 'test-db', got %q", retrieved.Name())
	}
}

func TestRegisterDatabaseDriverPanicsOnNil(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic when registering nil driver")
		}
	}()

	RegisterDatabaseDriver(nil)
}

func TestRegisterCacheDriverPanicsOnDuplicate(t *testing.T) {
	resetRegistries()
	RegisterCacheDriver(&mockDriver{name: "duplicate"})

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic when registering duplicate driver")
		}
	}()
	RegisterCacheDriver(&mockDriver{name: "duplicate"})
}

func TestGetMessageDriverNotFound(t *testing.T) {
	resetRegistries()
	RegisterMessageDriver(&mockDriver{name: "nats"})

	_, err := GetMessageDriver("kafka")
	if err == nil {
		t.Fatal("expected error for unregistered driver")
	}
	if !strings.Contains(err.Error(), "data/kafka") || !strings.Contains(err.Error(), "[nats]") {
		t.Errorf("unhelpful error: %v", err)
	}
}

func TestListRegisteredDrivers(t *testing.T) {
	resetRegistries()
	RegisterDatabaseDriver(&mockDriver{name: "b"})
	RegisterDatabaseDriver(&mockDriver{name: "a"})
	RegisterCacheDriver(&mockDriver{name: "redis"})

	got := ListRegisteredDrivers()
	if strings.Join(got["database"], ",") != "a,b" {
		t.Errorf("database drivers = %v", got["database"])
	}
	if len(got["cache"]) != 1 || len(got["message"]) != 0 {
		t.Errorf("drivers = %v", got)
	}
}

func TestDriverConcurrentAccess(t *testing.T) {
	resetRegistries()
	RegisterDatabaseDriver(&mockDriver{name: "shared"})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := GetDatabaseDriver("shared"); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()
}
