package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/indobig/sizecompare/comparison"
	"github.com/indobig/sizecompare/httpserver"
	"github.com/indobig/sizecompare/pyroscope"
	"github.com/indobig/sizecompare/stats_collector"
	"github.com/indobig/sizecompare/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the JSON API for the map UI",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := cfg.CreateLogger(true)
	logger.Infof("STARTUP: Version %s. Config loaded.", version.APP_VERSION)

	statsCollector := stats_collector.GetStatsCollector(cfg)
	logger.Infof("STARTUP: using %s stats collector", statsCollector.Name())

	if cfg.Pyroscope.Enabled() {
		if err := pyroscope.Run(logger, cfg.Pyroscope, map[string]string{"version": version.APP_VERSION}); err != nil {
			logger.Errorf("STARTUP: Failed to Initialized pyroscope: %v", err)
		} else {
			logger.Info("STARTUP: Initialized pyroscope")
		}
	}

	var wg sync.WaitGroup
	defer wg.Wait()

	ctx, cancelFn := context.WithCancel(context.Background())
	defer cancelFn()

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer cancelFn()

		sig_ch := make(chan os.Signal, 1)
		signal.Notify(sig_ch, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-ctx.Done():
			// something else told us to exit
		case sig := <-sig_ch:
			logger.Infof("received signal '%s'", sig.String())
		}
	}()

	logger.Debugf("STARTUP: signal handler installed.")

	loadFn := func(ctx context.Context) (*comparison.Comparator, error) {
		return loadComparator(ctx, logger, cfg, statsCollector)
	}

	httpServer, err := httpserver.NewHTTPServer(logger, statsCollector, loadFn)
	if err != nil {
		logger.Fatalf("failed to create http server: %v", err)
	}

	// Datasets load in the background. Until then, and after a failed
	// load, only /api/status answers.
	wg.Add(1)
	go func() {
		defer wg.Done()

		if err := httpServer.Reload(ctx); err != nil {
			logger.Errorf("STARTUP: failed to load datasets, serving degraded: %v", err)
			return
		}
		logger.Infof("STARTUP: datasets loaded")
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()

		sig_ch := make(chan os.Signal, 1)
		signal.Notify(sig_ch, syscall.SIGHUP)
		defer signal.Stop(sig_ch)
		for {
			select {
			case <-ctx.Done():
				return
			case sig := <-sig_ch:
				logger.Infof("received signal '%s' -- Reloading datasets.", sig.String())
				if err := httpServer.Reload(ctx); err == nil {
					logger.Infof("datasets reloaded")
				} else {
					logger.Errorf("dataset reload failed: %v", err)
				}
			}
		}
	}()
	logger.Debugf("STARTUP: installed reload (SIGHUP) handler")

	logger.Infof("STARTUP: starting http server (final step)")
	err = httpServer.Run(ctx, cfg.HTTP.Addr, cfg.HTTP.ShutdownTimeout())
	if err != nil {
		logger.Errorf("failed to run http server: %v", err)
		cancelFn()
		return err
	}

	return nil
}
