package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

var (
	config *Config
	path   string
	mu     sync.RWMutex
)

// Config represents the configuration implementation.
type Config struct {
	AppName   string
	RunMode   string
	Host      string
	Port      int
	Logger    *Logger
	Data      *Data
	Job       *Job
	Worker    *Worker
	Messaging *Messaging
	Observes  *Observes
	Viper     *viper.Viper
}

// Init loads the configuration at configPath (or from the search paths when
// empty) and makes it the process configuration.
func Init(configPath string) (*Config, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	mu.Lock()
	path = configPath
	config = cfg
	mu.Unlock()
	return cfg, nil
}

// GetConfig returns the process configuration, loading defaults on first use.
func GetConfig() (*Config, error) {
	mu.RLock()
	cfg := config
	mu.RUnlock()
	if cfg != nil {
		return cfg, nil
	}
	cfg, err := Init(path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}
	return cfg, nil
}

// LoadConfig loads the configuration from the file. A missing file is only an
// error when configPath names it explicitly.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("/etc/longrun")
		v.AddConfigPath("$HOME/.longrun")
		v.AddConfigPath(".")
		if ex, err := os.Executable(); err == nil {
			v.AddConfigPath(filepath.Dir(ex))
		}
	}
	v.SetEnvPrefix("LONGRUN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		AppName:   v.GetString("app_name"),
		RunMode:   v.GetString("run_mode"),
		Host:      v.GetString("server.host"),
		Port:      v.GetInt("server.port"),
		Logger:    getLoggerConfig(v),
		Data:      getDataConfig(v),
		Job:       getJobConfig(v),
		Worker:    getWorkerConfig(v),
		Messaging: getMessagingConfig(v),
		Observes:  getObservesConfig(v),
		Viper:     v,
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "longrun")
	v.SetDefault("run_mode", "release")
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8080)
	v.SetDefault("logger.level", 4)
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("job.registry", "memory")
	v.SetDefault("job.default_number_of_jobs", 3)
	v.SetDefault("job.default_min_duration", 1)
	v.SetDefault("job.max_jobs", 1000)
	v.SetDefault("job.key_prefix", "longrun")
}

// Reload reloads the configuration from the file.
func Reload() error {
	mu.RLock()
	p := path
	mu.RUnlock()

	newConfig, err := LoadConfig(p)
	if err != nil {
		return fmt.Errorf("failed to reload config: %w", err)
	}

	mu.Lock()
	config = newConfig
	mu.Unlock()
	return nil
}

// Watch watches the configuration file of cfg and reloads it when it changes.
func Watch(cfg *Config, callback func(*Config)) {
	if cfg == nil || cfg.Viper == nil || cfg.Viper.ConfigFileUsed() == "" {
		return
	}
	cfg.Viper.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		if err := Reload(); err != nil {
			fmt.Fprintf(os.Stderr, "Error reloading config: %v\n", err)
			return
		}
		mu.RLock()
		current := config
		mu.RUnlock()
		callback(current)
	})
	cfg.Viper.WatchConfig()
}
