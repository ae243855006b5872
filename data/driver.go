package data

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Drivers register themselves from init(), in the manner of database/sql, and
// are looked up by the name used in configuration.

// DatabaseDriver defines the interface for relational database drivers.
type DatabaseDriver interface {
	// Name returns the driver identifier (e.g., "sqlite")
	Name() string

	// Connect establishes a new database connection using the provided configuration.
	Connect(ctx context.Context, cfg any) (any, error)

	// Close terminates the database connection and releases resources.
	Close(conn any) error

	// Ping verifies the connection is alive and functional.
	Ping(ctx context.Context, conn any) error
}

// CacheDriver defines the interface for cache/key-value store drivers.
type CacheDriver interface {
	Name() string
	Connect(ctx context.Context, cfg any) (any, error)
	Close(conn any) error
	Ping(ctx context.Context, conn any) error
}

// MessageDriver defines the interface for message broker drivers.
type MessageDriver interface {
	Name() string
	Connect(ctx context.Context, cfg any) (any, error)
	Close(conn any) error
}

var (
	databaseDrivers   = make(map[string]DatabaseDriver)
	databaseDriversMu sync.RWMutex

	cacheDrivers   = make(map[string]CacheDriver)
	cacheDriversMu sync.RWMutex

	messageDrivers   = make(map[string]MessageDriver)
	messageDriversMu sync.RWMutex
)

// RegisterDatabaseDriver makes a database driver available by the provided name.
// It panics if driver is nil, unnamed or registered twice.
func RegisterDatabaseDriver(driver DatabaseDriver) {
	databaseDriversMu.Lock()
	defer databaseDriversMu.Unlock()

	if driver == nil {
		panic("data: RegisterDatabaseDriver driver is nil")
	}

	name := driver.Name()
	if name == "" {
		panic("data: RegisterDatabaseDriver driver name is empty")
	}

	if _, exists := databaseDrivers[name]; exists {
		panic(fmt.Sprintf("data: RegisterDatabaseDriver called twice for driver %s", name))
	}

	databaseDrivers[name] = driver
}

// RegisterCacheDriver makes a cache driver available by the provided name.
func RegisterCacheDriver(driver CacheDriver) {
	cacheDriversMu.Lock()
	defer cacheDriversMu.Unlock()

	if driver == nil {
		panic("data: RegisterCacheDriver driver is nil")
	}

	name := driver.Name()
	if name == "" {
		panic("data: RegisterCacheDriver driver name is empty")
	}

	if _, exists := cacheDrivers[name]; exists {
		panic(fmt.Sprintf("data: RegisterCacheDriver called twice for driver %s", name))
	}

	cacheDrivers[name] = driver
}

// RegisterMessageDriver makes a message broker driver available by the provided name.
func RegisterMessageDriver(driver MessageDriver) {
	messageDriversMu.Lock()
	defer messageDriversMu.Unlock()

	if driver == nil {
		panic("data: RegisterMessageDriver driver is nil")
	}

	name := driver.Name()
	if name == "" {
		panic("data: RegisterMessageDriver driver name is empty")
	}

	if _, exists := messageDrivers[name]; exists {
		panic(fmt.Sprintf("data: RegisterMessageDriver called twice for driver %s", name))
	}

	messageDrivers[name] = driver
}

func notRegistered(kind, name string, available []string) error {
	return fmt.Errorf(
		"data: %s driver %q not registered\n\n"+
			"Did you forget to import the driver package?\n"+
			"Add to your imports:\n"+
			"    _ \"github.com/ncobase/longrun/data/%s\"\n\n"+
			"Available drivers: %v",
		kind, name, name, available,
	)
}

// GetDatabaseDriver retrieves a registered database driver by name.
func GetDatabaseDriver(name string) (DatabaseDriver, error) {
	databaseDriversMu.RLock()
	defer databaseDriversMu.RUnlock()

	driver, ok := databaseDrivers[name]
	if !ok {
		return nil, notRegistered("database", name, sortedKeys(databaseDrivers))
	}
	return driver, nil
}

// GetCacheDriver retrieves a registered cache driver by name.
func GetCacheDriver(name string) (CacheDriver, error) {
	cacheDriversMu.RLock()
	defer cacheDriversMu.RUnlock()

	driver, ok := cacheDrivers[name]
	if !ok {
		return nil, notRegistered("cache", name, sortedKeys(cacheDrivers))
	}
	return driver, nil
}

// GetMessageDriver retrieves a registered message broker driver by name.
func GetMessageDriver(name string) (MessageDriver, error) {
	messageDriversMu.RLock()
	defer messageDriversMu.RUnlock()

	driver, ok := messageDrivers[name]
	if !ok {
		return nil, notRegistered("message", name, sortedKeys(messageDrivers))
	}
	return driver, nil
}

// ListRegisteredDrivers returns the registered driver names per kind.
func ListRegisteredDrivers() map[string][]string {
	databaseDriversMu.RLock()
	cacheDriversMu.RLock()
	messageDriversMu.RLock()
	defer databaseDriversMu.RUnlock()
	defer cacheDriversMu.RUnlock()
	defer messageDriversMu.RUnlock()

	return map[string][]string{
		"database": sortedKeys(databaseDrivers),
		"cache":    sortedKeys(cacheDrivers),
		"message":  sortedKeys(messageDrivers),
	}
}

func sortedKeys[T any](m map[string]T) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
