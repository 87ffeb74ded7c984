package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config holds every setting the three binaries read. Keys double as
// environment variable names.
type Config struct {
	DatabaseURL     string        `mapstructure:"database_url"`
	ServerHost      string        `mapstructure:"server_host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	LogLevel        string        `mapstructure:"log_level"`
	AMQPURL         string        `mapstructure:"amqp_url"`
	AMQPExchange    string        `mapstructure:"amqp_exchange"`
	AMQPRoutingKey  string        `mapstructure:"amqp_routing_key"`
	APIURL          string        `mapstructure:"api_url"`
}

var defaults = map[string]any{
	"database_url":     "aurascale.db",
	"server_host":      "",
	"port":             3001,
	"shutdown_timeout": "10s",
	"log_level":        "info",
	"amqp_url":         "",
	"amqp_exchange":    "aurascale",
	"amqp_routing_key": "catalog.seeded",
	"api_url":          "http://localhost:3001",
}

// Load reads .env when present, then the optional config file at path, then
// the environment. Later sources win.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Component names a binary; each validates only the keys it reads.
type Component int

const (
	ComponentWeb Component = iota
	ComponentSeed
	ComponentDashboard
)

func (c Config) Validate(component Component) error {
	var errs []error

	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}

	switch component {
	case ComponentWeb:
		errs = append(errs, c.validateDatabase()...)
		if c.Port < 1 || c.Port > 65535 {
			errs = append(errs, fmt.Errorf("port %d out of range 1..65535", c.Port))
		}
		if c.ShutdownTimeout < 0 {
			errs = append(errs, fmt.Errorf("shutdown_timeout %s is negative", c.ShutdownTimeout))
		}
	case ComponentSeed:
		errs = append(errs, c.validateDatabase()...)
		if c.AMQPURL != "" {
			u, err := url.Parse(c.AMQPURL)
			if err != nil {
				errs = append(errs, fmt.Errorf("amqp_url: %w", err))
			} else if u.Scheme != "amqp" && u.Scheme != "amqps" {
				errs = append(errs, fmt.Errorf("amqp_url scheme %q is not amqp or amqps", u.Scheme))
			}
		}
	case ComponentDashboard:
		if u, err := url.Parse(c.APIURL); err != nil || u.Host == "" {
			errs = append(errs, fmt.Errorf("api_url %q is not an absolute URL", c.APIURL))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown component %d", component))
	}

	return errors.Join(errs...)
}

func (c Config) validateDatabase() []error {
	if c.DatabaseURL == "" {
		return []error{errors.New("database_url is required")}
	}
	return nil
}

func (c Config) Addr() string {
	return net.JoinHostPort(c.ServerHost, strconv.Itoa(c.Port))
}

// Level falls back to info for an unparseable level; Validate reports it.
func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

func (c Config) NotificationsEnabled() bool {
	return c.AMQPURL != ""
}
