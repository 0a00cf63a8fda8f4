package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type DBConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

func (config DBConfig) validate() error {
	if config.Driver != "postgres" && config.Driver != "sqlite" {
		return fmt.Errorf("unknown db driver: %q", config.Driver)
	}
	if config.DSN == "" {
		return fmt.Errorf("missing variable: db dsn")
	}
	return nil
}

func (config DBConfig) bindEnvironmentVariables() error {

	if err := viper.BindEnv("db.driver", "DB_DRIVER"); err != nil {
		return err
	}

	return viper.BindEnv("db.dsn", "DB_DSN")
}
