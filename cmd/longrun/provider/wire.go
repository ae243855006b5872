//go:build wireinject

package provider

import (
	"github.com/google/wire"
	"github.com/ncobase/longrun/concurrency/worker"
	"github.com/ncobase/longrun/config"
	"github.com/ncobase/longrun/logging/logger"
)

// InitializeApp wires the application from cfg. The cleanup function stops
// the worker pool and closes every connection.
func InitializeApp(cfg *config.Config) (*App, func(), error) {
	panic(wire.Build(
		config.ProviderSet,
		logger.ProviderSet,
		worker.ProviderSet,
		ProviderSet,
	))
}
