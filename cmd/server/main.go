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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/riftlab/predict-api/internal/champions"
	"github.com/riftlab/predict-api/internal/config"
	"github.com/riftlab/predict-api/internal/dataset"
	"github.com/riftlab/predict-api/internal/features"
	"github.com/riftlab/predict-api/internal/handlers"
	"github.com/riftlab/predict-api/internal/predict"
	"github.com/riftlab/predict-api/internal/worker"
)

func main() {
	if err := godotenv.Load(); err != nil {
		// Not an error in production, env vars come from the environment.
		fmt.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	var logger *zap.Logger
	if cfg.Env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	table, err := champions.Load(cfg.ChampionTablePath)
	if err != nil {
		sugar.Fatalw("Failed to load champion table", "error", err, "path", cfg.ChampionTablePath)
	}
	sugar.Infow("Champion table loaded", "champions", table.Len(), "categories", len(table.Categories()))

	model, err := predict.LoadModel(cfg.ModelPath)
	if err != nil {
		sugar.Fatalw("Failed to load model", "error", err, "path", cfg.ModelPath)
	}
	sugar.Infow("Model loaded", "width", model.Width(), "composition", model.HasComposition())

	store, err := dataset.Open(cfg.DatasetPath, features.NewSchema())
	if err != nil {
		sugar.Fatalw("Failed to open dataset store", "error", err, "path", cfg.DatasetPath)
	}
	defer store.Close()

	pool := worker.NewPool(worker.PoolConfig{
		WorkerCount:   cfg.WorkerCount,
		QueueSize:     cfg.QueueSize,
		BatchSize:     cfg.BatchSize,
		FlushInterval: cfg.FlushInterval,
		Store:         store,
		Logger:        logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool.Start(ctx)

	preparer := features.NewPreparer(features.NewServingSchema(), table, table.Categories())

	h := handlers.New(handlers.Config{
		WorkerPool: pool,
		Dataset:    store,
		Preparer:   preparer,
		Model:      model,
		Logger:     logger,
	})

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/", h.Root)
	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/predict", h.Predict)
		r.Post("/matches/summary", h.MatchSummary)
		r.Post("/ingest/matches", h.IngestMatches)
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sugar.Infow("Server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("Server failed", "error", err)
		}
	}()

	<-ctx.Done()
	sugar.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("Server shutdown failed", "error", err)
	}

	// Drain the queue so accepted matches reach the dataset.
	pool.Stop()
	sugar.Info("Shutdown complete")
}
