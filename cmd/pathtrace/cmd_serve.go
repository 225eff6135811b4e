package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pdrpinto/pathtrace/internal/config"
	"github.com/pdrpinto/pathtrace/internal/logging"
	"github.com/pdrpinto/pathtrace/internal/maphost"
	"github.com/pdrpinto/pathtrace/internal/runstore"
	"github.com/pdrpinto/pathtrace/internal/server"
	"github.com/pdrpinto/pathtrace/internal/telemetry"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var configPath, mapFile, port string
	var watch bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the search and playback API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath, func(c *config.Config) {
				if mapFile != "" {
					c.MapFile = mapFile
				}
				if port != "" {
					c.Port = port
				}
				if cmd.Flags().Changed("watch") {
					c.WatchMap = watch
				}
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "YAML config file")
	cmd.Flags().StringVar(&mapFile, "map", "", "Map file (env: PATHTRACE_MAP)")
	cmd.Flags().StringVar(&port, "port", "", "Listen port (env: PORT)")
	cmd.Flags().BoolVar(&watch, "watch", false, "Reload the map when its file changes (env: WATCH_MAP)")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	shutdownTracing, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    "pathtrace",
		ServiceVersion: version,
		Exporter:       cfg.TraceExporter,
	})
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.WithError(err).Warn("tracer shutdown failed")
		}
	}()

	host, err := maphost.New(cfg.MapFile, log)
	if err != nil {
		return err
	}
	runs, err := runstore.New(cfg.RunCacheSize)
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	router := server.NewRouter(ctx, &server.RouterDeps{
		Log:         log,
		Maps:        host,
		Runs:        runs,
		Workers:     cfg.SearchWorkers,
		CORSOrigins: cfg.CORSOrigins,
		RateLimit:   cfg.RateLimit,
		RateBurst:   cfg.RateBurst,
		Version:     version,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithField("addr", cfg.Addr()).Info("pathtrace listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if cfg.WatchMap {
		g.Go(func() error {
			return host.Watch(gctx)
		})
	}

	return g.Wait()
}
