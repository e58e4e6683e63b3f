package stats_collector

import (
	"errors"

	"github.com/Depado/ginprom"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	DEFAULT_PROMETHEUS_NAMESPACE = "sizecompare"
)

type PrometheusConfig struct {
	Enabled    bool      `koanf:"enabled"`
	Token      string    `koanf:"token"`
	BucketSize []float64 `koanf:"bucket_size"`
	Namespace  string    `koanf:"namespace"`
}

func (cfg *PrometheusConfig) Validate() error {
	if !cfg.Enabled {
		return nil
	}
	if len(cfg.BucketSize) == 0 {
		return errors.New("'prometheus.bucket_size' must not be empty when prometheus is enabled")
	}
	return nil
}

func GetDefaultPrometheusConfig() PrometheusConfig {
	return PrometheusConfig{
		BucketSize: []float64{.00005, .0001, .00025, .0005, .001, .0025, .005, .01, .05, .1, .25, .5, 1, 2.5, 5},
		Namespace:  DEFAULT_PROMETHEUS_NAMESPACE,
	}
}

var _ StatsCollector = (*PrometheusCollector)(nil)

type PrometheusCollector struct {
	config   PrometheusConfig
	registry *prometheus.Registry

	selections   prometheus.Counter
	resets       prometheus.Counter
	noData       prometheus.Counter
	dragsIgnored prometheus.Counter
	datasetLoads *prometheus.CounterVec
}

func (col *PrometheusCollector) Name() string {
	return "prometheus"
}

func (col *PrometheusCollector) RegisterGinEngine(engine *gin.Engine) {
	p := ginprom.New(
		ginprom.Engine(engine),
		ginprom.Registry(col.registry),
		ginprom.Subsystem("gin"),
		ginprom.Path("/metrics"),
		ginprom.Token(col.config.Token),
		ginprom.BucketSize(col.config.BucketSize),
	)
	engine.Use(p.Instrument())
}

func (col *PrometheusCollector) AddSelection() {
	col.selections.Inc()
}

func (col *PrometheusCollector) AddReset() {
	col.resets.Inc()
}

func (col *PrometheusCollector) AddNoData() {
	col.noData.Inc()
}

func (col *PrometheusCollector) AddDragIgnored() {
	col.dragsIgnored.Inc()
}

func (col *PrometheusCollector) AddDatasetLoad(success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	col.datasetLoads.WithLabelValues(result).Inc()
}

func NewPrometheusCollector(config PrometheusConfig) StatsCollector {
	ns := config.Namespace
	if ns == "" {
		ns = DEFAULT_PROMETHEUS_NAMESPACE
	}

	registry := prometheus.NewRegistry()
	collector := &PrometheusCollector{
		config:   config,
		registry: registry,
		selections: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "selections",
				Help:      "Total number of countries selected for comparison",
			},
		),
		resets: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "resets",
				Help:      "Total number of comparison resets",
			},
		),
		noData: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "no_area_data",
				Help:      "Total number of selections without area data",
			},
		),
		dragsIgnored: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "drags_ignored",
				Help:      "Total number of presses on a country that turned into a map drag",
			},
		),
		datasetLoads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "dataset_loads",
				Help:      "Total number of dataset load attempts by result",
			},
			[]string{"result"},
		),
	}

	processOpts := collectors.ProcessCollectorOpts{
		Namespace: ns,
	}

	registry.MustRegister(
		collectors.NewProcessCollector(processOpts),
		collectors.NewGoCollector(
			collectors.WithGoCollectorRuntimeMetrics(
				collectors.MetricsGC,
				collectors.MetricsMemory,
			),
		),
		collector.selections,
		collector.resets,
		collector.noData,
		collector.dragsIgnored,
		collector.datasetLoads,
	)

	return collector
}
