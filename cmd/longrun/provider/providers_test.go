package provider

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/ncobase/longrun/config"
	"github.com/ncobase/longrun/data"
	dc "github.com/ncobase/longrun/data/config"
	"github.com/ncobase/longrun/job/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, registryName string) *config.Config {
	t.Helper()
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	cfg.Job.Registry = registryName
	cfg.Logger.Output = "stderr"
	return cfg
}

func TestInitializeAppMemory(t *testing.T) {
	app, cleanup, err := InitializeApp(testConfig(t, RegistryMemory))
	require.NoError(t, err)
	defer cleanup()

	assert.NotNil(t, app.Router)
	assert.NotNil(t, app.Service)
	assert.NoError(t, app.Ping(context.Background()))
}

func TestInitializeAppSQLite(t *testing.T) {
	cfg := testConfig(t, RegistrySQLite)
	cfg.Data.Database = &dc.Database{Master: &dc.DBNode{
		Driver:      "sqlite",
		Source:      "file::memory:?cache=shared",
		MaxOpenConn: 1,
	}}

	app, cleanup, err := InitializeApp(cfg)
	require.NoError(t, err)
	defer cleanup()
	assert.NotNil(t, app.Data.DB)
	assert.NoError(t, app.Ping(context.Background()))
}

func TestProvideRegistryRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(t, RegistryRedis)
	cfg.Data.Redis = &dc.Redis{Addr: mr.Addr()}

	app, cleanup, err := InitializeApp(cfg)
	require.NoError(t, err)
	defer cleanup()
	assert.NotNil(t, app.Data.Redis)
}

func TestProvideRegistryUnknown(t *testing.T) {
	_, err := ProvideRegistry(&config.Job{Registry: "etcd"}, nil, nil)
	assert.Error(t, err)

	reg, err := ProvideRegistry(&config.Job{}, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &registry.Memory{}, reg)

	_, err = ProvideRegistry(&config.Job{Registry: RegistryRedis}, nil, nil)
	assert.Error(t, err)
}

func TestProvideRegistrySQLDialect(t *testing.T) {
	ctx := context.Background()
	d, cleanup, err := data.New(ctx, &dc.Config{
		Database: &dc.Database{Master: &dc.DBNode{Driver: "sqlite", Source: ":memory:"}},
	}, data.WithDatabase())
	require.NoError(t, err)
	defer cleanup()
	assert.Equal(t, "sqlite", d.DatabaseDriver())

	reg, err := ProvideRegistry(&config.Job{Registry: RegistrySQLite}, d, nil)
	require.NoError(t, err)
	assert.IsType(t, &registry.SQL{}, reg)

	_, err = ProvideRegistry(&config.Job{Registry: RegistryPostgres}, d, nil)
	assert.ErrorContains(t, err, `database driver is "sqlite"`)
}
