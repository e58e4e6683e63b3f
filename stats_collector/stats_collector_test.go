package stats_collector

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	prom PrometheusConfig
}

func (cfg testConfig) GetPrometheusConfig() PrometheusConfig {
	return cfg.prom
}

func TestGetStatsCollector(t *testing.T) {
	col := GetStatsCollector(testConfig{})
	assert.Equal(t, "no-op", col.Name())

	promConfig := GetDefaultPrometheusConfig()
	promConfig.Enabled = true
	col = GetStatsCollector(testConfig{promConfig})
	assert.Equal(t, "prometheus", col.Name())
}

func TestPrometheusCollectorCounts(t *testing.T) {
	promConfig := GetDefaultPrometheusConfig()
	promConfig.Enabled = true
	col, ok := NewPrometheusCollector(promConfig).(*PrometheusCollector)
	require.True(t, ok)

	col.AddSelection()
	col.AddSelection()
	col.AddReset()
	col.AddNoData()
	col.AddDragIgnored()
	col.AddDatasetLoad(true)
	col.AddDatasetLoad(false)
	col.AddDatasetLoad(false)

	assert.Equal(t, float64(2), testutil.ToFloat64(col.selections))
	assert.Equal(t, float64(1), testutil.ToFloat64(col.resets))
	assert.Equal(t, float64(1), testutil.ToFloat64(col.noData))
	assert.Equal(t, float64(1), testutil.ToFloat64(col.dragsIgnored))
	assert.Equal(t, float64(1), testutil.ToFloat64(col.datasetLoads.WithLabelValues("success")))
	assert.Equal(t, float64(2), testutil.ToFloat64(col.datasetLoads.WithLabelValues("failure")))
}

func TestPrometheusConfigValidate(t *testing.T) {
	cfg := PrometheusConfig{}
	assert.NoError(t, cfg.Validate())

	cfg.Enabled = true
	assert.Error(t, cfg.Validate())

	cfg = GetDefaultPrometheusConfig()
	cfg.Enabled = true
	assert.NoError(t, cfg.Validate())
}
