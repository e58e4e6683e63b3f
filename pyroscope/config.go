package pyroscope

import "errors"

const DEFAULT_APPLICATION_NAME = "sizecompare"

type Config struct {
	ApplicationName      string `koanf:"application_name"`
	ServerAddress        string `koanf:"server_address"`
	ApiKey               string `koanf:"api_key"`
	MutexProfileFraction int    `koanf:"mutex_profile_fraction"`
	BlockProfileRate     int    `koanf:"block_profile_rate"`
}

// Enabled reports whether profiles should be pushed anywhere.
func (cfg *Config) Enabled() bool {
	return cfg.ServerAddress != ""
}

func (cfg *Config) Validate() error {
	if !cfg.Enabled() {
		return nil
	}
	if cfg.ApplicationName == "" {
		return errors.New("'pyroscope.application_name' must be set when 'pyroscope.server_address' is")
	}
	if cfg.MutexProfileFraction < 0 || cfg.BlockProfileRate < 0 {
		return errors.New("'pyroscope' profile rates must be >= 0")
	}
	return nil
}

func GetDefaultConfig() Config {
	return Config{
		ApplicationName: DEFAULT_APPLICATION_NAME,
	}
}
