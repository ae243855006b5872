package config

import (
	"time"

	"github.com/spf13/viper"
)

// Job holds the lifecycle engine settings.
type Job struct {
	Registry            string `json:"registry" yaml:"registry"` // memory | redis | sqlite | postgres
	KeyPrefix           string `json:"key_prefix" yaml:"key_prefix"`
	DefaultNumberOfJobs uint32 `json:"default_number_of_jobs" yaml:"default_number_of_jobs"`
	DefaultMinDuration  int32  `json:"default_min_duration" yaml:"default_min_duration"`
	MaxJobs             uint32 `json:"max_jobs" yaml:"max_jobs"`
}

func getJobConfig(v *viper.Viper) *Job {
	return &Job{
		Registry:            getStringOrDefault(v, "job.registry", "memory"),
		KeyPrefix:           getStringOrDefault(v, "job.key_prefix", "longrun"),
		DefaultNumberOfJobs: getUint32OrDefault(v, "job.default_number_of_jobs", 3),
		DefaultMinDuration:  int32(getIntOrDefault(v, "job.default_min_duration", 1)),
		MaxJobs:             getUint32OrDefault(v, "job.max_jobs", 1000),
	}
}

// Worker configures the pool that dispatches lifecycle events.
type Worker struct {
	MaxWorkers  int           `json:"max_workers" yaml:"max_workers"`
	QueueSize   int           `json:"queue_size" yaml:"queue_size"`
	TaskTimeout time.Duration `json:"task_timeout" yaml:"task_timeout"`
}

func getWorkerConfig(v *viper.Viper) *Worker {
	return &Worker{
		MaxWorkers:  getIntOrDefault(v, "worker.max_workers", 4),
		QueueSize:   getIntOrDefault(v, "worker.queue_size", 256),
		TaskTimeout: getDurationOrDefault(v, "worker.task_timeout", 10*time.Second),
	}
}

