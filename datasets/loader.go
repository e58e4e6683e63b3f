package datasets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/paulmach/orb/geojson"
	"github.com/sirupsen/logrus"

	"github.com/indobig/sizecompare/dataset_client"
	"github.com/indobig/sizecompare/registry"
	"github.com/indobig/sizecompare/stats_collector"
	"github.com/indobig/sizecompare/util"
)

const (
	DATASET_BOUNDARIES = "boundaries"
	DATASET_AREAS      = "areas"
)

// Datasets is one successful load of both documents.
type Datasets struct {
	Features []*geojson.Feature
	Areas    registry.AreaTable

	// Where each document came from: a url, a filename or a cache path.
	BoundariesFrom string
	AreasFrom      string
}

// LoadError is returned when a dataset could not be loaded from its source
// or from the cache. The caller may retry later.
type LoadError struct {
	Dataset string
	Err     error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s dataset: %v", e.Dataset, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

type Loader struct {
	logger         *logrus.Logger
	config         Config
	client         *dataset_client.APIClient
	statsCollector stats_collector.StatsCollector
}

func (loader *Loader) cachePath(name string) string {
	return filepath.Join(loader.config.CacheDir, name+"-cache.json")
}

func (loader *Loader) updateCache(name string, data []byte) error {
	if loader.config.CacheDir == "" {
		return nil
	}

	if err := os.MkdirAll(loader.config.CacheDir, 0o755); err != nil {
		return err
	}

	f, err := os.CreateTemp(loader.config.CacheDir, name+"-cache.json.*")
	if err != nil {
		return err
	}

	_, err = f.Write(data)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		if unlinkErr := os.Remove(f.Name()); unlinkErr != nil {
			loader.logger.Warnf("failed to remove tmpfile '%s': %v", f.Name(), unlinkErr)
		}
		return err
	}

	if err := os.Rename(f.Name(), loader.cachePath(name)); err != nil {
		return fmt.Errorf("failed to rename tmp cache file: %s -> %s: %v", f.Name(), loader.cachePath(name), err)
	}

	return nil
}

func (loader *Loader) loadFromCache(name string) ([]byte, error) {
	if loader.config.CacheDir == "" {
		return nil, errors.New("no cache_dir configured")
	}
	return os.ReadFile(loader.cachePath(name))
}

func (loader *Loader) fetch(ctx context.Context, name string, src Source, parse func([]byte) error) error {
	attempts := loader.config.Retries + 1

	return util.Retry(ctx, attempts, loader.config.RetryDelay(), func(attempt int) (bool, error) {
		data, err := loader.client.Get(ctx, src.Url)
		if err == nil {
			err = parse(data)
		}
		if err != nil {
			if attempt < attempts {
				loader.logger.Warnf("failed to fetch %s from '%s' (attempt %d/%d): %v", name, src.Url, attempt, attempts, err)
			}
			// the same document will not get any better
			return errors.Is(err, ErrInvalidDataset), err
		}

		if cacheErr := loader.updateCache(name, data); cacheErr == nil {
			loader.logger.Debugf("updated %s cache file", name)
		} else {
			loader.logger.Warnf("failed to update %s cache file: %v", name, cacheErr)
		}
		return false, nil
	})
}

// loadDataset reads one document from its configured source, falling back
// to the last good cached copy when a remote source fails.
func loadDataset[T any](ctx context.Context, loader *Loader, name string, src Source, parse func([]byte) (T, error)) (T, string, error) {
	var result T

	parseInto := func(data []byte) error {
		parsed, err := parse(data)
		if err != nil {
			return err
		}
		result = parsed
		return nil
	}

	if !src.IsRemote() {
		loader.logger.Infof("Loading %s from file '%s'", name, src.Filename)
		data, err := os.ReadFile(src.Filename)
		if err == nil {
			err = parseInto(data)
		}
		if err != nil {
			return result, "", &LoadError{Dataset: name, Err: err}
		}
		return result, src.Filename, nil
	}

	loader.logger.Infof("Loading %s from '%s'", name, src.Url)
	err := loader.fetch(ctx, name, src, parseInto)
	if err == nil {
		return result, src.Url, nil
	}

	loader.logger.Errorf("failed to load %s from '%s': %v", name, src.Url, err)

	data, cacheErr := loader.loadFromCache(name)
	if cacheErr == nil {
		cacheErr = parseInto(data)
	}
	if cacheErr != nil {
		loader.logger.Warnf("no usable %s cache: %v", name, cacheErr)
		return result, "", &LoadError{Dataset: name, Err: err}
	}

	loader.logger.Warnf("using cached %s from '%s'", name, loader.cachePath(name))
	return result, loader.cachePath(name), nil
}

// Load fetches both datasets. A *LoadError is returned when either one is
// unavailable.
func (loader *Loader) Load(ctx context.Context) (ds *Datasets, err error) {
	defer func() {
		loader.statsCollector.AddDatasetLoad(err == nil)
	}()

	ds = &Datasets{}

	fc, from, err := loadDataset(ctx, loader, DATASET_BOUNDARIES, loader.config.Boundaries, ParseBoundaries)
	if err != nil {
		return nil, err
	}
	ds.Features = fc.Features
	ds.BoundariesFrom = from

	ds.Areas, ds.AreasFrom, err = loadDataset(ctx, loader, DATASET_AREAS, loader.config.Areas, ParseAreas)
	if err != nil {
		return nil, err
	}

	loader.logger.Infof("Loaded %d boundary feature(s) and %d area(s)", len(ds.Features), len(ds.Areas))

	return ds, nil
}

func NewLoader(logger *logrus.Logger, config Config, statsCollector stats_collector.StatsCollector) (*Loader, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if statsCollector == nil {
		statsCollector = stats_collector.NewNoopStatsCollector()
	}

	return &Loader{
		logger:         logger,
		config:         config,
		client:         dataset_client.NewAPIClient(logger, config.Token, config.Timeout()),
		statsCollector: statsCollector,
	}, nil
}
