package httpserver

import (
	"net/http"
	"net/http/pprof"

	"github.com/gin-gonic/gin"

	"github.com/indobig/sizecompare/comparison"
)

type APIErrorResponse struct {
	Error string `json:"error"`
}

type comparatorHandler func(*gin.Context, *comparison.Comparator)

// withComparator runs 'fn' holding the comparator lock. Until datasets have
// loaded, it answers 503 instead.
func (srv *HTTPServer) withComparator(fn comparatorHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		srv.mu.Lock()
		defer srv.mu.Unlock()

		if srv.comparator == nil {
			c.JSON(http.StatusServiceUnavailable, &APIErrorResponse{"datasets not loaded"})
			return
		}

		fn(c, srv.comparator)
	}
}

func (srv *HTTPServer) setupRoutes() {
	r := srv.ginRouter

	apiGroup := r.Group("/api")

	apiGroup.GET("/status", srv.handleGetStatus)
	apiGroup.GET("/history", srv.withComparator(srv.handleGetHistory))
	apiGroup.POST("/reset", srv.withComparator(srv.handleReset))
	apiGroup.POST("/compare/:name", srv.withComparator(srv.handleCompare))

	countriesGroup := apiGroup.Group("/countries")
	countriesGroup.GET("", srv.withComparator(srv.handleGetCountries))
	countriesGroup.GET("/_/at", srv.withComparator(srv.handleGetCountriesAt))
	countriesGroup.GET("/:name", srv.withComparator(srv.handleGetCountry))
	countriesGroup.POST("/:name/hover", srv.withComparator(srv.handleHover))
	countriesGroup.POST("/:name/unhover", srv.withComparator(srv.handleUnhover))
	countriesGroup.POST("/:name/pointer", srv.withComparator(srv.handlePointer))

	datasetsGroup := apiGroup.Group("/datasets")
	datasetsGroup.PUT("/reload", srv.handleReload)

	debugGroup := r.Group("/debug/pprof")
	debugGroup.GET("/cmdline", func(c *gin.Context) {
		pprof.Cmdline(c.Writer, c.Request)
	})
	debugGroup.GET("/heap", func(c *gin.Context) {
		pprof.Index(c.Writer, c.Request)
	})
	debugGroup.GET("/profile", func(c *gin.Context) {
		pprof.Profile(c.Writer, c.Request)
	})
	debugGroup.GET("/symbol", func(c *gin.Context) {
		pprof.Symbol(c.Writer, c.Request)
	})
}
