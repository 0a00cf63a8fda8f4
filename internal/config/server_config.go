package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port            int      `mapstructure:"port"`
	Mode            string   `mapstructure:"mode"`
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	FollowUpSweepAt string   `mapstructure:"follow_up_sweep_at"`
}

func (config ServerConfig) validate() error {
	if config.Port <= 0 || config.Port > 65535 {
		return fmt.Errorf("invalid port: %d", config.Port)
	}
	if config.FollowUpSweepAt == "" {
		return fmt.Errorf("missing variable: follow_up_sweep_at")
	}
	return nil
}

func (config ServerConfig) bindEnvironmentVariables() error {

	if err := viper.BindEnv("server.port", "PORT"); err != nil {
		return err
	}

	if err := viper.BindEnv("server.mode", "GIN_MODE"); err != nil {
		return err
	}

	return viper.BindEnv("server.follow_up_sweep_at", "FOLLOW_UP_SWEEP_AT")
}
