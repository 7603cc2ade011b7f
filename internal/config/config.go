package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config is the process configuration shared by the server and the worker.
type Config struct {
	Port         string
	DatabaseURL  string
	RedisAddr    string
	JWTSecret    string
	BaseURL      string
	CORSOrigin   string
	LogLevel     string
	LogFormat    string
	QueryTimeout time.Duration
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file loaded")
	}
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8080")
	v.SetDefault("REDIS_ADDR", "127.0.0.1:6379")
	v.SetDefault("BASE_URL", "http://localhost:8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("QUERY_TIMEOUT", "5s")
	return v
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:         v.GetString("PORT"),
		DatabaseURL:  v.GetString("DATABASE_URL"),
		RedisAddr:    v.GetString("REDIS_ADDR"),
		JWTSecret:    v.GetString("JWT_SECRET"),
		BaseURL:      v.GetString("BASE_URL"),
		CORSOrigin:   v.GetString("CORS_ORIGIN"),
		LogLevel:     v.GetString("LOG_LEVEL"),
		LogFormat:    v.GetString("LOG_FORMAT"),
		QueryTimeout: v.GetDuration("QUERY_TIMEOUT"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}
	if cfg.QueryTimeout <= 0 {
		return nil, fmt.Errorf("QUERY_TIMEOUT must be positive, got %s", cfg.QueryTimeout)
	}
	return cfg, nil
}

// RequireJWTSecret is called by processes that verify access tokens.
func (c *Config) RequireJWTSecret() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is not set")
	}
	return nil
}

// ConfigureLogging applies the level and format to the standard logrus logger.
func (c *Config) ConfigureLogging() {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		logrus.Warnf("Unknown LOG_LEVEL %q, using info", c.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if c.LogFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}
