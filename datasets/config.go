package datasets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/indobig/sizecompare/dataset_client"
)

const (
	DEFAULT_BOUNDARIES_URL      = "https://raw.githubusercontent.com/holtzy/D3-graph-gallery/master/DATA/world.geojson"
	DEFAULT_AREAS_FILENAME      = "data/country-areas.json"
	DEFAULT_RETRIES             = 3
	DEFAULT_RETRY_DELAY_SECONDS = 2
	DEFAULT_TIMEOUT_SECONDS     = 30
)

// Source is where one dataset comes from: a local file or a url. The file
// wins when both are set, so a config can point at a local copy without
// clearing the default url.
type Source struct {
	Url      string `koanf:"url" json:"url,omitempty"`
	Filename string `koanf:"filename" json:"filename,omitempty"`
}

func (src *Source) IsRemote() bool {
	return src.Filename == "" && src.Url != ""
}

func (src *Source) validate(name string) error {
	if src.IsRemote() {
		if err := dataset_client.ValidateURL(src.Url); err != nil {
			return fmt.Errorf("'datasets.%s.url': %w", name, err)
		}
		return nil
	}

	if src.Filename == "" {
		return fmt.Errorf("one of 'datasets.%s.url' or 'datasets.%s.filename' must be configured", name, name)
	}

	f, err := os.Open(src.Filename)
	if err != nil {
		return fmt.Errorf("'datasets.%s.filename' is '%s', which is missing or not accessible: %w", name, src.Filename, err)
	}

	f.Close()

	return nil
}

func (src Source) String() string {
	if src.IsRemote() {
		return src.Url
	}
	return src.Filename
}

type Config struct {
	Boundaries Source `koanf:"boundaries" json:"boundaries"`
	Areas      Source `koanf:"areas" json:"areas"`

	// Bearer token sent with remote requests.
	Token string `koanf:"token" json:"-"`

	// Last good copies of remote datasets are kept here. Empty disables it.
	CacheDir string `koanf:"cache_dir" json:"cache_dir"`

	Retries           int `koanf:"retries" json:"retries"`
	RetryDelaySeconds int `koanf:"retry_delay_seconds" json:"retry_delay_seconds"`
	TimeoutSeconds    int `koanf:"timeout_seconds" json:"timeout_seconds"`
}

func (cfg *Config) Validate() error {
	if err := cfg.Boundaries.validate("boundaries"); err != nil {
		return err
	}

	if err := cfg.Areas.validate("areas"); err != nil {
		return err
	}

	if cfg.Retries < 0 {
		return errors.New("'datasets.retries' must be >= 0")
	}

	if cfg.RetryDelaySeconds < 0 {
		return errors.New("'datasets.retry_delay_seconds' must be >= 0")
	}

	if cfg.TimeoutSeconds < 1 {
		return errors.New("'datasets.timeout_seconds' must be > 0")
	}

	return nil
}

func (cfg *Config) RetryDelay() time.Duration {
	return time.Second * time.Duration(cfg.RetryDelaySeconds)
}

func (cfg *Config) Timeout() time.Duration {
	return time.Second * time.Duration(cfg.TimeoutSeconds)
}

func GetDefaultConfig() Config {
	return Config{
		Boundaries: Source{
			Url: DEFAULT_BOUNDARIES_URL,
		},
		Areas: Source{
			Filename: filepath.FromSlash(DEFAULT_AREAS_FILENAME),
		},
		CacheDir:          filepath.FromSlash("./.cache"),
		Retries:           DEFAULT_RETRIES,
		RetryDelaySeconds: DEFAULT_RETRY_DELAY_SECONDS,
		TimeoutSeconds:    DEFAULT_TIMEOUT_SECONDS,
	}
}
