package config

import (
	"time"

	"github.com/ncobase/longrun/version"
	"github.com/spf13/viper"
)

// Sentry configures error reporting. An empty Endpoint disables it.
type Sentry struct {
	Endpoint    string  `json:"endpoint" yaml:"endpoint"`
	Environment string  `json:"environment" yaml:"environment"`
	Release     string  `json:"release" yaml:"release"`
	SampleRate  float64 `json:"sample_rate" yaml:"sample_rate"`
}

// Enabled reports whether a DSN is configured.
func (s *Sentry) Enabled() bool {
	return s != nil && s.Endpoint != ""
}

// Tracer configures the OTLP gRPC exporter. An empty Endpoint disables it.
type Tracer struct {
	Endpoint       string `json:"endpoint" yaml:"endpoint"`
	ServiceName    string `json:"service_name" yaml:"service_name"`
	ServiceVersion string `json:"service_version" yaml:"service_version"`
	Environment    string `json:"environment" yaml:"environment"`

	SamplingRate       float64       `json:"sampling_rate" yaml:"sampling_rate"`
	MaxExportBatchSize int           `json:"max_export_batch_size" yaml:"max_export_batch_size"`
	BatchTimeout       time.Duration `json:"batch_timeout" yaml:"batch_timeout"`
	ExportTimeout      time.Duration `json:"export_timeout" yaml:"export_timeout"`
}

// Enabled reports whether an exporter endpoint is configured.
func (t *Tracer) Enabled() bool {
	return t != nil && t.Endpoint != ""
}

// Observes groups the error reporting and tracing sections.
type Observes struct {
	Sentry *Sentry
	Tracer *Tracer
}

// Both sections fall back to the run mode for the environment and to the
// build version for the release.
func getObservesConfig(v *viper.Viper) *Observes {
	env := v.GetString("run_mode")
	return &Observes{
		Sentry: &Sentry{
			Endpoint:    v.GetString("observes.sentry.endpoint"),
			Environment: getStringOrDefault(v, "observes.sentry.environment", env),
			Release:     getStringOrDefault(v, "observes.sentry.release", version.Version),
			SampleRate:  getFloat64OrDefault(v, "observes.sentry.sample_rate", 1.0),
		},
		Tracer: &Tracer{
			Endpoint:           v.GetString("observes.tracer.endpoint"),
			ServiceName:        getStringOrDefault(v, "observes.tracer.service_name", v.GetString("app_name")),
			ServiceVersion:     getStringOrDefault(v, "observes.tracer.service_version", version.Version),
			Environment:        getStringOrDefault(v, "observes.tracer.environment", env),
			SamplingRate:       getFloat64OrDefault(v, "observes.tracer.sampling_rate", 1.0),
			MaxExportBatchSize: getIntOrDefault(v, "observes.tracer.max_export_batch_size", 512),
			BatchTimeout:       getDurationOrDefault(v, "observes.tracer.batch_timeout", 5*time.Second),
			ExportTimeout:      getDurationOrDefault(v, "observes.tracer.export_timeout", 30*time.Second),
		},
	}
}
