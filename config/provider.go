package config

import "github.com/google/wire"

// ProviderSet is the wire provider set for the config package.
// It extracts the sub-configurations other packages depend on.
var ProviderSet = wire.NewSet(
	ProvideLoggerConfig,
	ProvideDataConfig,
	ProvideJobConfig,
	ProvideWorkerConfig,
	ProvideMessagingConfig,
)

// ProvideLoggerConfig provides the logger configuration.
func ProvideLoggerConfig(cfg *Config) *Logger {
	if cfg == nil {
		return nil
	}
	return cfg.Logger
}

// ProvideDataConfig provides the data layer configuration.
func ProvideDataConfig(cfg *Config) *Data {
	if cfg == nil {
		return nil
	}
	return cfg.Data
}

// ProvideJobConfig provides the job engine configuration.
func ProvideJobConfig(cfg *Config) *Job {
	if cfg == nil {
		return nil
	}
	return cfg.Job
}

// ProvideWorkerConfig provides the event worker pool configuration.
func ProvideWorkerConfig(cfg *Config) *Worker {
	if cfg == nil {
		return nil
	}
	return cfg.Worker
}

// ProvideMessagingConfig provides the messaging configuration.
func ProvideMessagingConfig(cfg *Config) *Messaging {
	if cfg == nil {
		return nil
	}
	return cfg.Messaging
}
