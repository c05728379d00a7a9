// Package config provides Viper-based hierarchical configuration management.
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Data struct {
		Directory        string `mapstructure:"directory" yaml:"directory"`
		ReportDirectory  string `mapstructure:"report_directory" yaml:"report_directory"`
		CallLogPattern   string `mapstructure:"call_log_pattern" yaml:"call_log_pattern"`
		AbandonedPattern string `mapstructure:"abandoned_pattern" yaml:"abandoned_pattern"`
	} `mapstructure:"data" yaml:"data"`

	Phone struct {
		CountryCode string `mapstructure:"country_code" yaml:"country_code"`
	} `mapstructure:"phone" yaml:"phone"`

	Snapshot struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"snapshot" yaml:"snapshot"`

	Hours struct {
		ScheduleFile string `mapstructure:"schedule_file" yaml:"schedule_file"`
	} `mapstructure:"hours" yaml:"hours"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then an optional config file, then environment variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.call-report")
	v.AddConfigPath(".call-report")
	v.AddConfigPath(".")

	v.SetEnvPrefix("CALLREPORT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Log the error but don't fail - continue with defaults and env vars
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("data.directory", "data")
	v.SetDefault("data.report_directory", "reports")
	v.SetDefault("data.call_log_pattern", "CallLogLastWeek_*.csv")
	v.SetDefault("data.abandoned_pattern", "AbandonedCalls*.csv")

	v.SetDefault("phone.country_code", "353")

	v.SetDefault("snapshot.file", "weekly_data.csv")

	v.SetDefault("hours.schedule_file", "")
}

// validateConfig validates the configuration values.
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.Data.Directory == "" {
		return fmt.Errorf("data.directory must not be empty")
	}

	if config.Phone.CountryCode == "" {
		return fmt.Errorf("phone.country_code must not be empty")
	}
	for _, r := range config.Phone.CountryCode {
		if r < '0' || r > '9' {
			return fmt.Errorf("phone.country_code must be digits only, got: %s", config.Phone.CountryCode)
		}
	}

	return nil
}

// ConfigureLoggingFromConfig configures logging based on the Config struct.
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
