package app_config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/sirupsen/logrus"

	"github.com/indobig/sizecompare/comparison"
	"github.com/indobig/sizecompare/datasets"
	"github.com/indobig/sizecompare/httpserver"
	"github.com/indobig/sizecompare/logging"
	"github.com/indobig/sizecompare/pyroscope"
	"github.com/indobig/sizecompare/registry"
	"github.com/indobig/sizecompare/stats_collector"
)

// ENV_PREFIX vars override the config file. '__' separates sections, so
// SIZECOMPARE_HTTP__ADDR sets 'http.addr'.
const ENV_PREFIX = "SIZECOMPARE_"

type Config struct {
	Logging    logging.Config                   `koanf:"logging"`
	HTTP       httpserver.Config                `koanf:"http"`
	Datasets   datasets.Config                  `koanf:"datasets"`
	Registry   registry.Config                  `koanf:"registry"`
	Comparison comparison.Config                `koanf:"comparison"`
	Prometheus stats_collector.PrometheusConfig `koanf:"prometheus"`
	Pyroscope  pyroscope.Config                 `koanf:"pyroscope"`
}

func (cfg *Config) CreateLogger(rotate bool) *logrus.Logger {
	return cfg.Logging.CreateLogger(rotate, true)
}

func (cfg *Config) GetPrometheusConfig() stats_collector.PrometheusConfig {
	return cfg.Prometheus
}

func (cfg *Config) Validate() error {
	if err := cfg.Logging.Validate(); err != nil {
		return err
	}

	if err := cfg.HTTP.Validate(); err != nil {
		return err
	}

	if err := cfg.Datasets.Validate(); err != nil {
		return err
	}

	if err := cfg.Registry.Validate(); err != nil {
		return err
	}

	if err := cfg.Comparison.Validate(); err != nil {
		return err
	}

	if err := cfg.Prometheus.Validate(); err != nil {
		return err
	}

	if err := cfg.Pyroscope.Validate(); err != nil {
		return err
	}

	return nil
}

func GetDefaultConfig() Config {
	logConfig := logging.GetDefaultConfig()
	logConfig.Filename = filepath.FromSlash("logs/sizecompare.log")

	return Config{
		Logging:    logConfig,
		HTTP:       httpserver.GetDefaultConfig(),
		Datasets:   datasets.GetDefaultConfig(),
		Registry:   registry.GetDefaultConfig(),
		Comparison: comparison.GetDefaultConfig(),
		Prometheus: stats_collector.GetDefaultPrometheusConfig(),
		Pyroscope:  pyroscope.GetDefaultConfig(),
	}
}

func envKey(s string) string {
	return strings.ReplaceAll(
		strings.ToLower(strings.TrimPrefix(s, ENV_PREFIX)),
		"__", ".",
	)
}

// LoadConfig layers the defaults, the toml file and the environment. An
// empty 'filename' skips the file. A '.env' in the working directory is
// read into the environment first if present.
func LoadConfig(filename string, defaultConfig Config) (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("couldn't load .env: %w", err)
	}

	k := koanf.New(".")
	err := k.Load(structs.Provider(defaultConfig, "koanf"), nil)
	if err != nil {
		return nil, fmt.Errorf("couldn't load default config: %w", err)
	}

	if filename != "" {
		f, err := os.Open(filename)
		if err != nil {
			return nil, fmt.Errorf("couldn't open '%s': %w", filename, err)
		}
		f.Close()

		err = k.Load(file.Provider(filename), toml.Parser())
		if err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	err = k.Load(env.Provider(ENV_PREFIX, ".", envKey), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from environment: %w", err)
	}

	var cfg Config

	err = k.Unmarshal("", &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}
