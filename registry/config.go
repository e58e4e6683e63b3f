package registry

import (
	"errors"
	"strings"
)

const DEFAULT_REFERENCE_COUNTRY = "Indonesia"

// DefaultNameKeys is the order in which feature properties are tried when
// resolving a country's display name. The first non-empty string wins.
var DefaultNameKeys = []string{"NAME", "name", "NAME_EN", "NAME_LONG"}

type Config struct {
	Reference string   `koanf:"reference" json:"reference"`
	NameKeys  []string `koanf:"name_keys" json:"name_keys"`
}

func (cfg *Config) Validate() error {
	if cfg.Reference == "" {
		return errors.New("'registry.reference' must name the reference country")
	}

	if len(cfg.NameKeys) == 0 {
		return errors.New("'registry.name_keys' must list at least one property key")
	}

	for _, key := range cfg.NameKeys {
		if strings.TrimSpace(key) == "" {
			return errors.New("'registry.name_keys' contains an empty key")
		}
	}

	return nil
}

func GetDefaultConfig() Config {
	nameKeys := make([]string, len(DefaultNameKeys))
	copy(nameKeys, DefaultNameKeys)
	return Config{
		Reference: DEFAULT_REFERENCE_COUNTRY,
		NameKeys:  nameKeys,
	}
}
