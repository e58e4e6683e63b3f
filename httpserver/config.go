package httpserver

import (
	"errors"
	"time"
)

const (
	DEFAULT_ADDR                     = "127.0.0.1:9043"
	DEFAULT_SHUTDOWN_TIMEOUT_SECONDS = 5
)

type Config struct {
	Addr                   string `koanf:"addr"`
	ShutdownTimeoutSeconds int    `koanf:"shutdown_timeout_seconds"`
}

func (cfg *Config) Validate() error {
	if cfg.Addr == "" {
		return errors.New("no http addr configured")
	}
	if cfg.ShutdownTimeoutSeconds < 1 {
		return errors.New("'http.shutdown_timeout_seconds' must be > 0")
	}
	return nil
}

func (cfg *Config) ShutdownTimeout() time.Duration {
	return time.Second * time.Duration(cfg.ShutdownTimeoutSeconds)
}

func GetDefaultConfig() Config {
	return Config{
		Addr:                   DEFAULT_ADDR,
		ShutdownTimeoutSeconds: DEFAULT_SHUTDOWN_TIMEOUT_SECONDS,
	}
}
