// Command reproj-server serves the coordinate transform API over HTTP, with
// Prometheus metrics and optional OpenTelemetry tracing.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"time"

	"github.com/joho/godotenv"

	"github.com/geodesyworks/reproj/gridshift"
	"github.com/geodesyworks/reproj/internal/api"
	"github.com/geodesyworks/reproj/internal/logging"
	"github.com/geodesyworks/reproj/internal/observability"
	"github.com/geodesyworks/reproj/model"
	"github.com/geodesyworks/reproj/proj"
	"github.com/geodesyworks/reproj/registry"
)

// Config carries everything run needs; main fills it from flags and the
// environment.
type Config struct {
	ListenAddress string
	GridDir       string
	LogLevel      string
	LogFormat     string
}

func main() {
	httpAddr := flag.String("http-addr", ":8080", "TCP address the HTTP API listens on")
	gridDir := flag.String("grid-dir", "", "Directory of JSON datum-correction grids (optional)")
	envFile := flag.String("env-file", "", "Path to a .env file to load before reading the environment")
	flag.Parse()

	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			fmt.Fprintf(os.Stderr, "loading %s: %v\n", *envFile, err)
			os.Exit(1)
		}
	} else {
		// Best effort: a local .env is a development convenience.
		_ = godotenv.Load()
	}

	cfg := Config{
		ListenAddress: *httpAddr,
		GridDir:       *gridDir,
		LogLevel:      os.Getenv("LOG_LEVEL"),
		LogFormat:     os.Getenv("LOG_FORMAT"),
	}
	log := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, AddSource: true})

	lis, err := net.Listen("tcp", cfg.ListenAddress)
	if err != nil {
		log.Error(context.Background(), "failed to listen", logging.String("addr", cfg.ListenAddress), logging.Err(err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, log, lis); err != nil {
		log.Error(context.Background(), "server exited", logging.Err(err))
		os.Exit(1)
	}
}

// run wires the registry, metrics, tracing, and HTTP server, then serves
// until ctx is cancelled.
func run(ctx context.Context, cfg Config, log logging.Logger, lis net.Listener) error {
	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer observability.ShutdownWithTimeout(context.Background(), shutdownTracing, log)

	collector, err := observability.NewTransformCollector(nil)
	if err != nil {
		return fmt.Errorf("init metrics collector: %w", err)
	}

	reg := registry.NewWithBuiltins()
	if cfg.GridDir != "" {
		if err := loadGridCRS(log, reg, cfg.GridDir); err != nil {
			return err
		}
	}
	collector.SetRegistrySize(reg.Len())

	server := api.NewServer(reg, collector, log)
	httpSrv := &http.Server{
		Handler:           server.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Info(ctx, "starting transform API server",
		logging.String("addr", lis.Addr().String()),
		logging.Int("crs", reg.Len()),
	)

	errCh := make(chan error, 1)
	go func() {
		if err := httpSrv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info(context.Background(), "shutting down transform API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// loadGridCRS reads every JSON correction grid in dir, bundles them into one
// shifter, and registers a NAD27 geographic CRS backed by it. Points outside
// all grids fail per point at transform time, not here.
func loadGridCRS(log logging.Logger, reg *registry.Registry, dir string) error {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return fmt.Errorf("scanning grid dir %s: %w", dir, err)
	}
	if len(paths) == 0 {
		log.Warn(context.Background(), "no correction grids found", logging.String("dir", dir))
		return nil
	}
	sort.Strings(paths)

	grids := make([]*gridshift.Grid, 0, len(paths))
	for _, path := range paths {
		g, err := gridshift.LoadGridFile(path)
		if err != nil {
			log.Warn(context.Background(), "skipping correction grid", logging.String("path", path), logging.Err(err))
			continue
		}
		grids = append(grids, g)
		log.Info(context.Background(), "loaded correction grid", logging.String("path", path), logging.String("grid", g.Name))
	}
	if len(grids) == 0 {
		return fmt.Errorf("grid dir %s: no loadable grids", dir)
	}

	shifter, err := gridshift.NewShifter(grids...)
	if err != nil {
		return err
	}
	nad27, err := model.NewGridShiftDatum("NAD27", model.Clarke1866Ellipsoid, shifter)
	if err != nil {
		return err
	}
	return reg.Register(&model.CRS{
		Name:       "EPSG:4267",
		Projection: proj.NewLongLat(model.AxesENU, model.Greenwich),
		Datum:      nad27,
	})
}
