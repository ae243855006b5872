// Package provider assembles the long-running service from configuration.
package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"github.com/ncobase/longrun/concurrency/worker"
	"github.com/ncobase/longrun/config"
	"github.com/ncobase/longrun/data"
	"github.com/ncobase/longrun/job"
	"github.com/ncobase/longrun/job/data/repository"
	"github.com/ncobase/longrun/job/event"
	"github.com/ncobase/longrun/job/handler"
	"github.com/ncobase/longrun/job/registry"
	"github.com/ncobase/longrun/job/service"
	"github.com/ncobase/longrun/logging/logger"
	"github.com/ncobase/longrun/logging/observes"

	_ "github.com/ncobase/longrun/data/postgres"
	_ "github.com/ncobase/longrun/data/redis"
	_ "github.com/ncobase/longrun/data/sqlite"
)

// Registry names accepted in job.registry.
const (
	RegistryMemory   = "memory"
	RegistryRedis    = "redis"
	RegistrySQLite   = "sqlite"
	RegistryPostgres = "postgres"
)

// ProviderSet builds everything below the App.
var ProviderSet = wire.NewSet(
	ProvideObservability,
	ProvideWorkerConfig,
	ProvideData,
	ProvideClock,
	ProvidePublisher,
	ProvideDispatcher,
	ProvideSerializer,
	ProvideRegistry,
	ProvideService,
	handler.NewJobHandler,
	ProvideRouter,
	NewApp,
)

// Observability marks that error reporting and tracing are set up.
type Observability struct{}

// ProvideObservability starts Sentry and the OTLP tracer when configured.
func ProvideObservability(cfg *config.Config) (*Observability, func(), error) {
	var sentryOpt *observes.SentryOptions
	var tracerOpt *observes.TracerOption
	if o := cfg.Observes; o != nil {
		if o.Sentry.Enabled() {
			sentryOpt = &observes.SentryOptions{
				Dsn:         o.Sentry.Endpoint,
				Name:        cfg.AppName,
				Release:     o.Sentry.Release,
				Environment: o.Sentry.Environment,
				SampleRate:  o.Sentry.SampleRate,
			}
		}
		if o.Tracer.Enabled() {
			tracerOpt = &observes.TracerOption{
				URL:                o.Tracer.Endpoint,
				Name:               o.Tracer.ServiceName,
				Version:            o.Tracer.ServiceVersion,
				Environment:        o.Tracer.Environment,
				SamplingRate:       o.Tracer.SamplingRate,
				BatchTimeout:       o.Tracer.BatchTimeout,
				ExportTimeout:      o.Tracer.ExportTimeout,
				MaxExportBatchSize: o.Tracer.MaxExportBatchSize,
			}
		}
	}

	flush, err := observes.NewSentry(sentryOpt)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize sentry: %w", err)
	}
	shutdown, err := observes.NewTracer(tracerOpt)
	if err != nil {
		flush()
		return nil, nil, fmt.Errorf("failed to initialize tracer: %w", err)
	}

	return &Observability{}, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(ctx); err != nil {
			logger.Errorf(ctx, "Tracer shutdown error: %v", err)
		}
		flush()
	}, nil
}

// ProvideWorkerConfig maps the worker section onto the pool configuration.
func ProvideWorkerConfig(cfg *config.Worker) *worker.Config {
	if cfg == nil {
		return worker.DefaultConfig()
	}
	return &worker.Config{
		MaxWorkers:  cfg.MaxWorkers,
		QueueSize:   cfg.QueueSize,
		TaskTimeout: cfg.TaskTimeout,
	}
}

// ProvideData opens only the store the selected registry needs.
func ProvideData(cfg *config.Data, jobCfg *config.Job) (*data.Data, func(), error) {
	var opts []data.Option
	switch registryName(jobCfg) {
	case RegistryRedis:
		opts = append(opts, data.WithCache())
	case RegistrySQLite, RegistryPostgres:
		opts = append(opts, data.WithDatabase())
	}
	return data.New(context.Background(), cfg, opts...)
}

func ProvideClock() job.Clock {
	return job.SystemClock{}
}

// ProvidePublisher connects to the configured broker.
func ProvidePublisher(cfg *config.Messaging) (event.Publisher, func(), error) {
	p, err := event.NewPublisher(context.Background(), cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect event publisher: %w", err)
	}
	return p, func() {
		if err := p.Close(); err != nil {
			logger.Errorf(context.Background(), "Event publisher close error: %v", err)
		}
	}, nil
}

func ProvideDispatcher(p event.Publisher, pool *worker.Pool, cfg *config.Messaging) *event.Dispatcher {
	var timeout time.Duration
	if cfg != nil {
		timeout = cfg.PublishTimeout
	}
	return event.NewDispatcher(p, pool, timeout)
}

func ProvideSerializer(clock job.Clock, d *event.Dispatcher) *job.Serializer {
	return &job.Serializer{Clock: clock, Notifier: d}
}

// ProvideRegistry returns the registry named by job.registry.
func ProvideRegistry(cfg *config.Job, d *data.Data, s *job.Serializer) (job.Registry, error) {
	switch name := registryName(cfg); name {
	case RegistryMemory:
		return registry.NewMemory(), nil
	case RegistryRedis:
		if d == nil || d.Redis == nil {
			return nil, fmt.Errorf("registry %s: redis is not connected", name)
		}
		return registry.NewRedis(d.Redis, cfg.KeyPrefix, s), nil
	case RegistrySQLite, RegistryPostgres:
		if d == nil || d.DB == nil {
			return nil, fmt.Errorf("registry %s: database is not connected", name)
		}
		dialect := repository.DialectFor(d.DatabaseDriver())
		if string(dialect) != name {
			return nil, fmt.Errorf("registry %s: database driver is %q", name, d.DatabaseDriver())
		}
		return registry.NewSQL(d.DB, dialect, s)
	default:
		return nil, fmt.Errorf("unknown job registry %q", name)
	}
}

func ProvideService(cfg *config.Job, reg job.Registry, clock job.Clock, d *event.Dispatcher, s *job.Serializer) *service.LongRunning {
	return service.New(cfg, reg,
		service.WithClock(clock),
		service.WithNotifier(d),
		service.WithSerializer(s),
	)
}

func ProvideRouter(cfg *config.Config, h *handler.JobHandler) *gin.Engine {
	switch cfg.RunMode {
	case gin.DebugMode, gin.TestMode, gin.ReleaseMode:
		gin.SetMode(cfg.RunMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}
	return handler.NewRouter(h)
}

func registryName(cfg *config.Job) string {
	if cfg == nil || cfg.Registry == "" {
		return RegistryMemory
	}
	return cfg.Registry
}
