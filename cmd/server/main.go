// Package main is the entry point for the campus incident triage server.
// It exposes a REST API that ranks unassigned incident reports by
// priority and computes per-team workload and performance metrics for
// supervisor dashboards.
//
// Architecture:
//   - Report/Assignment/Staff records are read from PostgreSQL as an
//     immutable snapshot at the start of each request
//   - The scoring engine is a pure computation over that snapshot:
//     same input, same output, no writes
//   - Team metrics are optionally cached in Redis with a short TTL,
//     and only after a fully successful compute
//   - Dashboard endpoints sit behind JWT auth; report submission and
//     other CRUD surfaces live in a separate service
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adhaghani/cybercrime-platform-sub001/internal/config"
	"github.com/adhaghani/cybercrime-platform-sub001/internal/database"
	"github.com/adhaghani/cybercrime-platform-sub001/internal/handlers"
	"github.com/adhaghani/cybercrime-platform-sub001/internal/middleware"
	"github.com/adhaghani/cybercrime-platform-sub001/internal/services"
	"github.com/adhaghani/cybercrime-platform-sub001/internal/store"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

func main() {
	// Initialize structured logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	sugar := logger.Sugar()

	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		sugar.Fatalf("Failed to load config: %v", err)
	}

	sugar.Infow("Starting incident triage server",
		"port", cfg.Port,
		"env", cfg.Environment,
		"overload_threshold", cfg.Engine.OverloadThreshold,
		"high_priority_threshold", cfg.Engine.HighPriorityThreshold,
	)

	// Initialize database connection pool
	db, err := database.NewPool(cfg.DatabaseURL)
	if err != nil {
		sugar.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Optional Redis cache for team metrics
	cache, err := services.NewMetricsCache(context.Background(), cfg.RedisURL)
	if err != nil {
		sugar.Fatalf("Failed to connect to Redis: %v", err)
	}
	if cache != nil {
		defer cache.Close()
	}

	// Initialize services
	snapshotStore := store.NewPostgresStore(db, sugar)
	triageSvc := services.NewTriageService(snapshotStore, cache, cfg, sugar)

	// Initialize handlers
	triageHandler := handlers.NewTriageHandler(triageSvc, sugar)
	healthHandler := handlers.NewHealthHandler(db, cache, sugar)

	// Build router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.StructuredLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.SecurityHeaders())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Rate limiting
	r.Use(middleware.RateLimit(cfg.RateLimitRPM))

	// API Routes
	r.Route("/api/v1", func(r chi.Router) {
		// Health check
		r.Get("/health", healthHandler.Check)
		r.Get("/health/ready", healthHandler.Ready)

		// Triage endpoints (staff/supervisor dashboards)
		r.Route("/triage", func(r chi.Router) {
			r.Use(middleware.RequireAuth(cfg.JWTSecret))
			r.Get("/reports", triageHandler.PriorityReports) // Ranked unassigned reports
			r.Get("/teams", triageHandler.TeamMetrics)       // Per-team performance metrics
			r.Get("/teams/top", triageHandler.TopPerformers) // Top performing teams
		})
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sugar.Infof("Server listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalf("Server error: %v", err)
		}
	}()

	<-done
	sugar.Info("Shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		sugar.Fatalf("Forced shutdown: %v", err)
	}

	sugar.Info("Server stopped")
}
