package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/indobig/sizecompare/comparison"
	"github.com/indobig/sizecompare/stats_collector"
)

func init() {
	gin.SetMode(gin.ReleaseMode)
}

// LoadFn builds a comparator from freshly loaded datasets.
type LoadFn func(ctx context.Context) (*comparison.Comparator, error)

type HTTPServer struct {
	logger         *logrus.Logger
	ginRouter      *gin.Engine
	statsCollector stats_collector.StatsCollector
	loadFn         LoadFn

	// mu serializes every call into the comparator.
	mu         sync.Mutex
	comparator *comparison.Comparator
	loadErr    error

	// only one load at a time
	loadMu sync.Mutex
}

// Reload loads the datasets and swaps in a new comparator. On failure the
// previous comparator, if any, keeps serving.
func (srv *HTTPServer) Reload(ctx context.Context) error {
	srv.loadMu.Lock()
	defer srv.loadMu.Unlock()

	comparator, err := srv.loadFn(ctx)

	srv.mu.Lock()
	defer srv.mu.Unlock()

	srv.loadErr = err
	if err != nil {
		return err
	}

	srv.comparator = comparator
	return nil
}

// Run starts and runs the HTTP server until 'ctx' is cancelled or the server fails to start.
func (srv *HTTPServer) Run(ctx context.Context, address string, shutdownWaitTimeout time.Duration) error {
	httpServer := &http.Server{
		Addr:    address,
		Handler: srv.ginRouter,
	}

	doneCh := make(chan error, 1)

	go func() {
		var err error
		defer func() {
			doneCh <- err
		}()
		err = httpServer.ListenAndServe()
		if err != nil {
			if err == http.ErrServerClosed {
				err = nil
			} else {
				err = fmt.Errorf("Failed to listen and start http server: %w", err)
			}
		}
	}()

	srv.logger.Infof("http server listening on %s", address)

	select {
	case <-ctx.Done():
		sdCtx, sdCancelFn := context.WithTimeout(context.Background(), shutdownWaitTimeout)
		defer sdCancelFn()
		err := httpServer.Shutdown(sdCtx)
		if err != nil {
			if err == context.DeadlineExceeded {
				return errors.New("Graceful HTTP server shutdown timed out.")
			}
			return fmt.Errorf("Error during http server shutdown: %w", err)
		}
		return <-doneCh
	case err := <-doneCh:
		return err
	}
}

func NewHTTPServer(logger *logrus.Logger, statsCollector stats_collector.StatsCollector, loadFn LoadFn) (*HTTPServer, error) {
	if loadFn == nil {
		return nil, errors.New("no dataset load function given")
	}
	if statsCollector == nil {
		statsCollector = stats_collector.NewNoopStatsCollector()
	}

	r := gin.New()
	r.Use(gin.RecoveryWithWriter(logger.Writer()))
	statsCollector.RegisterGinEngine(r)

	srv := &HTTPServer{
		logger:         logger,
		ginRouter:      r,
		statsCollector: statsCollector,
		loadFn:         loadFn,
	}

	srv.setupRoutes()
	return srv, nil
}
