package config

import (
	"time"

	"github.com/spf13/viper"
)

// Database database config struct
type Database struct {
	Master  *DBNode `json:"master" yaml:"master"`
	Migrate bool    `json:"migrate" yaml:"migrate"`
}

// DBNode represents a single database node configuration
type DBNode struct {
	Driver          string        `json:"driver" yaml:"driver"`
	Source          string        `json:"source" yaml:"source"`
	MaxIdleConn     int           `json:"max_idle_conn" yaml:"max_idle_conn"`
	MaxOpenConn     int           `json:"max_open_conn" yaml:"max_open_conn"`
	ConnMaxLifeTime time.Duration `json:"conn_max_life_time" yaml:"conn_max_life_time"`
}

// getDatabaseConfig reads database configurations
func getDatabaseConfig(v *viper.Viper) *Database {
	driver := v.GetString("data.database.master.driver")
	if driver == "" {
		driver = "sqlite"
	}
	source := v.GetString("data.database.master.source")
	if source == "" {
		source = "file:longrun.db?cache=shared&mode=rwc"
	}

	return &Database{
		Master: &DBNode{
			Driver:          driver,
			Source:          source,
			MaxIdleConn:     v.GetInt("data.database.master.max_idle_conn"),
			MaxOpenConn:     v.GetInt("data.database.master.max_open_conn"),
			ConnMaxLifeTime: v.GetDuration("data.database.master.conn_max_life_time"),
		},
		Migrate: v.GetBool("data.database.migrate"),
	}
}
