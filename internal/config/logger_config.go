package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type logLevel string

const (
	LevelDebug   logLevel = "DEBUG"
	LevelInfo    logLevel = "INFO"
	LevelWarning logLevel = "WARNING"
	LevelError   logLevel = "ERROR"
)

type LoggerConfig struct {
	LogLevel logLevel `mapstructure:"log_level"`
}

func (config LoggerConfig) validate() error {
	if config.LogLevel == "" {
		return fmt.Errorf("missing variable: log_level")
	}
	return nil
}

func (config LoggerConfig) bindEnvironmentVariables() error {
	return viper.BindEnv("logger.log_level", "LOG_LEVEL")
}
