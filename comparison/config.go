package comparison

import "fmt"

const DEFAULT_OVERLAY_CACHE_SIZE = 32

type Config struct {
	// Number of recent comparisons to remember.
	HistoryLimit int `koanf:"history_limit" json:"history_limit"`
	// Transformed overlays kept per country. 0 disables the cache.
	OverlayCacheSize int `koanf:"overlay_cache_size" json:"overlay_cache_size"`
}

func (cfg *Config) Validate() error {
	if val := cfg.HistoryLimit; val < 1 || val > 100 {
		return fmt.Errorf("invalid history_limit '%d': must be > 0 and <= 100", val)
	}
	if val := cfg.OverlayCacheSize; val < 0 {
		return fmt.Errorf("invalid overlay_cache_size '%d': must be >= 0", val)
	}
	return nil
}

func GetDefaultConfig() Config {
	return Config{
		HistoryLimit:     DEFAULT_HISTORY_LIMIT,
		OverlayCacheSize: DEFAULT_OVERLAY_CACHE_SIZE,
	}
}
