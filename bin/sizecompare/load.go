package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/indobig/sizecompare/app_config"
	"github.com/indobig/sizecompare/comparison"
	"github.com/indobig/sizecompare/datasets"
	"github.com/indobig/sizecompare/registry"
	"github.com/indobig/sizecompare/stats_collector"
)

// loadComparator loads both datasets and builds a fresh registry and
// comparator from them.
func loadComparator(ctx context.Context, logger *logrus.Logger, cfg *app_config.Config, statsCollector stats_collector.StatsCollector) (*comparison.Comparator, error) {
	loader, err := datasets.NewLoader(logger, cfg.Datasets, statsCollector)
	if err != nil {
		return nil, err
	}

	ds, err := loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	logger.Infof("boundaries from '%s', areas from '%s'", ds.BoundariesFrom, ds.AreasFrom)

	reg := registry.New(logger, cfg.Registry, ds.Features, ds.Areas)

	return comparison.NewComparator(logger, cfg.Comparison, reg, statsCollector), nil
}
