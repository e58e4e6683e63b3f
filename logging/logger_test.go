package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainFormatter(t *testing.T) {
	f := (&Config{}).newFormatter()

	entry := &logrus.Entry{
		Time:    time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC),
		Level:   logrus.WarnLevel,
		Message: "missing area data",
		Data:    logrus.Fields{"country": "Atlantis", "attempt": 2},
	}

	out, err := f.Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "WARN 2024-03-04 05:06:07 missing area data attempt=2 country=Atlantis\n", string(out))

	entry.Data = nil
	entry.Level = logrus.InfoLevel
	out, err = f.Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "INFO 2024-03-04 05:06:07 missing area data\n", string(out))
}

func TestCreateLogger(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Filename = filepath.Join(t.TempDir(), "sizecompare.log")
	require.NoError(t, cfg.Validate())

	logger := cfg.CreateLogger(false, false)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())

	logger.Debug("hidden")
	logger.Info("registered 3 region(s)")

	data, err := os.ReadFile(cfg.Filename)
	require.NoError(t, err)
	assert.Contains(t, string(data), "INFO ")
	assert.Contains(t, string(data), "registered 3 region(s)")
	assert.NotContains(t, string(data), "hidden")

	cfg.Debug = true
	assert.Equal(t, logrus.DebugLevel, cfg.CreateLogger(false, false).GetLevel())
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{MaxSizeMB: -1}
	assert.NoError(t, cfg.Validate(), "rotation settings only matter with a filename")

	cfg.Filename = "out.log"
	assert.Error(t, cfg.Validate())
}
