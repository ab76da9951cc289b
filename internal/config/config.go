package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds the runtime settings of the service.
type Config struct {
	AppPort          string        `mapstructure:"APP_PORT" validate:"required"`
	DatabaseDriver   string        `mapstructure:"DATABASE_DRIVER" validate:"oneof=sqlite postgres memory"`
	DatabaseDSN      string        `mapstructure:"DATABASE_DSN" validate:"required_unless=DatabaseDriver memory"`
	DatabaseLogLevel string        `mapstructure:"DATABASE_LOG_LEVEL" validate:"oneof=silent error warn info"`
	RabbitMQURL      string        `mapstructure:"RABBITMQ_URL" validate:"omitempty,url"`
	RabbitMQQueue    string        `mapstructure:"RABBITMQ_QUEUE" validate:"required"`
	LogLevel         string        `mapstructure:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	LogFormat        string        `mapstructure:"LOG_FORMAT" validate:"oneof=json console"`
	CORSAllowOrigins string        `mapstructure:"CORS_ALLOW_ORIGINS"`
	ShutdownTimeout  time.Duration `mapstructure:"SHUTDOWN_TIMEOUT" validate:"gt=0"`
}

var defaults = map[string]interface{}{
	"APP_PORT":           ":9090",
	"DATABASE_DRIVER":    "sqlite",
	"DATABASE_DSN":       "file:products.db?_foreign_keys=on",
	"DATABASE_LOG_LEVEL": "warn",
	"RABBITMQ_URL":       "",
	"RABBITMQ_QUEUE":     "product_events",
	"LOG_LEVEL":          "info",
	"LOG_FORMAT":         "json",
	"CORS_ALLOW_ORIGINS": "*",
	"SHUTDOWN_TIMEOUT":   "10s",
	"CONFIG_FILE":        "",
}

// Load reads the configuration from environment variables and an optional
// config.yaml in the working directory. CONFIG_FILE points at an explicit file,
// which then must exist.
func Load() (*Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.DatabaseDriver = strings.ToLower(cfg.DatabaseDriver)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// EventsEnabled reports whether product events should be published.
func (c *Config) EventsEnabled() bool {
	return c.RabbitMQURL != ""
}
