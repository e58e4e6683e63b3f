package stats_collector

import "github.com/gin-gonic/gin"

var _ StatsCollector = (*noopCollector)(nil)

type noopCollector struct {
}

func (col *noopCollector) Name() string                  { return "no-op" }
func (col *noopCollector) RegisterGinEngine(*gin.Engine) {}
func (col *noopCollector) AddSelection()                 {}
func (col *noopCollector) AddReset()                     {}
func (col *noopCollector) AddNoData()                    {}
func (col *noopCollector) AddDragIgnored()               {}
func (col *noopCollector) AddDatasetLoad(bool)           {}

func NewNoopStatsCollector() StatsCollector {
	return &noopCollector{}
}
