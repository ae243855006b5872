package config

import (
	"github.com/spf13/viper"
)

// Config configuration struct
type Config struct {
	Level        int    `json:"level" yaml:"level"`
	Path         string `json:"path" yaml:"path"`
	Format       string `json:"format" yaml:"format"`
	Output       string `json:"output" yaml:"output"`
	OutputFile   string `json:"output_file" yaml:"output_file"`
	ReportErrors bool   `json:"report_errors" yaml:"report_errors"` // forward error entries to Sentry
}

// GetConfig returns the logger configuration
func GetConfig(v *viper.Viper) *Config {
	if !v.IsSet("logger") {
		return nil
	}

	level := 4 // logrus.InfoLevel
	if v.IsSet("logger.level") {
		level = v.GetInt("logger.level")
	}

	return &Config{
		Level:        level,
		Format:       v.GetString("logger.format"),
		Path:         v.GetString("logger.path"),
		Output:       v.GetString("logger.output"),
		OutputFile:   v.GetString("logger.output_file"),
		ReportErrors: v.GetBool("logger.report_errors"),
	}
}
