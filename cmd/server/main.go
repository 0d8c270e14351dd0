package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/VoidMesh/worldgen/internal/api"
	"github.com/VoidMesh/worldgen/internal/config"
	"github.com/VoidMesh/worldgen/internal/db"
	"github.com/VoidMesh/worldgen/internal/logging"
	"github.com/VoidMesh/worldgen/internal/metrics"
	"github.com/VoidMesh/worldgen/internal/preset"
	"github.com/VoidMesh/worldgen/internal/preview"
	"github.com/VoidMesh/worldgen/internal/terrain"
)

func main() {
	// Load configuration
	cfg, err := config.LoadFile("")
	if err != nil {
		log.Fatal("Failed to load configuration", "error", err)
	}

	// Setup logging
	logging.Configure(os.Stderr, logging.ParseLevel(cfg.Logging.Level), logging.ParseFormat(cfg.Logging.Format))
	log.Debug("Configuration loaded",
		"server_port", cfg.Server.Port,
		"db_path", cfg.Database.Path,
		"log_level", cfg.Logging.Level,
		"render_workers", cfg.Render.Workers,
		"max_dimension", cfg.Render.MaxDimension,
	)

	// Initialize database
	conn, err := db.Open(cfg.Database.Path, db.Options{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		log.Fatal("Failed to initialize database", "error", err)
	}
	defer conn.Close()

	// Run migrations
	if err := db.RunMigrations(conn); err != nil {
		log.Fatal("Failed to run database migrations", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	presetManager := preset.NewManager(conn)
	if cfg.Database.SeedPresets {
		if err := presetManager.SeedDefaults(ctx); err != nil {
			log.Fatal("Failed to seed presets", "error", err)
		}
	}

	// Generation pipeline
	m := metrics.New("worldgen")
	generator := terrain.NewGenerator(
		terrain.WithWorkers(cfg.Render.Workers),
		terrain.WithObserver(m),
	)

	var worker *preview.Worker
	if cfg.Render.Preview {
		worker = preview.NewWorker(generator)
		m.WatchCounter("worldgen_preview_snapshots_total", "Preview snapshots published.", func() float64 {
			return float64(worker.Passes())
		})
		if err := worker.Submit(cfg.Generation); err != nil {
			log.Fatal("Invalid default generation config", "error", err)
		}
	}

	// Initialize API handlers
	handler := api.NewHandler(generator, worker, api.RenderSettings{
		Defaults:     cfg.Generation,
		MaxDimension: cfg.Render.MaxDimension,
	})
	router := api.SetupRoutes(handler, api.NewPresetHandlers(presetManager, handler), api.RouterOptions{
		Middleware: api.MiddlewareOptions{
			AllowedOrigins: cfg.Server.AllowedOrigins,
			Timeout:        cfg.Server.RequestTimeout,
		},
		Metrics:     m,
		RenderLimit: 4,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	if worker != nil {
		g.Go(func() error {
			return worker.Run(gctx)
		})
	}

	g.Go(func() error {
		log.Info("Starting worldgen server", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		log.Debug("Server stopped listening")
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("Server forced to shutdown", "error", err)
			return err
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
	log.Info("Server exited")
}
