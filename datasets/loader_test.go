package datasets

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func newTestLoader(t *testing.T, config Config) *Loader {
	t.Helper()
	logger, _ := logrustest.NewNullLogger()
	loader, err := NewLoader(logger, config, nil)
	require.NoError(t, err)
	return loader
}

func testConfig(t *testing.T) Config {
	dir := t.TempDir()
	config := GetDefaultConfig()
	config.CacheDir = filepath.Join(dir, "cache")
	config.RetryDelaySeconds = 0
	config.Boundaries = Source{Filename: writeFile(t, dir, "world.geojson", testBoundaries)}
	config.Areas = Source{Filename: writeFile(t, dir, "areas.json", testAreas)}
	return config
}

func TestLoad_Files(t *testing.T) {
	config := testConfig(t)
	ds, err := newTestLoader(t, config).Load(context.Background())
	require.NoError(t, err)

	assert.Len(t, ds.Features, 2)
	assert.Equal(t, float64(1904569), ds.Areas["Indonesia"])
	assert.Equal(t, config.Boundaries.Filename, ds.BoundariesFrom)
	assert.Equal(t, config.Areas.Filename, ds.AreasFrom)

	// file sources are not cached
	_, err = os.Stat(filepath.Join(config.CacheDir, "boundaries-cache.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestLoad_FileWinsOverUrl(t *testing.T) {
	config := testConfig(t)
	config.Boundaries.Url = "http://127.0.0.1:1/unreachable.geojson"
	ds, err := newTestLoader(t, config).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, config.Boundaries.Filename, ds.BoundariesFrom)
}

func TestLoad_RemoteRetriesAndCaches(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Write([]byte(testBoundaries))
	}))
	defer srv.Close()

	config := testConfig(t)
	config.Token = "secret"
	config.Boundaries = Source{Url: srv.URL + "/world.geojson"}

	ds, err := newTestLoader(t, config).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
	assert.Len(t, ds.Features, 2)
	assert.Equal(t, config.Boundaries.Url, ds.BoundariesFrom)

	cached, err := os.ReadFile(filepath.Join(config.CacheDir, "boundaries-cache.json"))
	require.NoError(t, err)
	assert.JSONEq(t, testBoundaries, string(cached))
}

func TestLoad_FallsBackToCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	config := testConfig(t)
	config.Retries = 1
	config.Boundaries = Source{Url: srv.URL}
	require.NoError(t, os.MkdirAll(config.CacheDir, 0o755))
	writeFile(t, config.CacheDir, "boundaries-cache.json", testBoundaries)

	ds, err := newTestLoader(t, config).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, ds.Features, 2)
	assert.Equal(t, filepath.Join(config.CacheDir, "boundaries-cache.json"), ds.BoundariesFrom)
}

func TestLoad_RemoteFailureWithoutCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	config := testConfig(t)
	config.Retries = 2
	config.Areas = Source{Url: srv.URL + "/areas.json"}

	ds, err := newTestLoader(t, config).Load(context.Background())
	require.Error(t, err)
	assert.Nil(t, ds)
	assert.Equal(t, int32(3), hits.Load())

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, DATASET_AREAS, loadErr.Dataset)
}

func TestLoad_InvalidDocumentIsNotRetried(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{"features": []}`))
	}))
	defer srv.Close()

	config := testConfig(t)
	config.Boundaries = Source{Url: srv.URL}

	_, err := newTestLoader(t, config).Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidDataset))
	assert.Equal(t, int32(1), hits.Load())

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, DATASET_BOUNDARIES, loadErr.Dataset)
}

func TestConfigValidate(t *testing.T) {
	config := testConfig(t)
	assert.NoError(t, config.Validate())

	bad := config
	bad.Boundaries = Source{}
	assert.Error(t, bad.Validate())

	bad = config
	bad.Areas = Source{Url: "ftp://example.com/areas.json"}
	assert.Error(t, bad.Validate())

	bad = config
	bad.Areas = Source{Filename: filepath.Join(t.TempDir(), "missing.json")}
	assert.Error(t, bad.Validate())

	bad = config
	bad.TimeoutSeconds = 0
	assert.Error(t, bad.Validate())

	bad = config
	bad.Retries = -1
	assert.Error(t, bad.Validate())
}
