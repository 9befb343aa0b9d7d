// Package services contains business logic layers.
// Services are called by handlers and sit between the HTTP surface
// and the snapshot store.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/adhaghani/cybercrime-platform-sub001/internal/config"
	"github.com/adhaghani/cybercrime-platform-sub001/internal/engine"
	"github.com/adhaghani/cybercrime-platform-sub001/internal/models"
	"github.com/adhaghani/cybercrime-platform-sub001/internal/store"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const teamMetricsCacheKey = "triage:team_metrics:v1"

// TriageService runs the scoring engine over fresh snapshots. Each
// request fetches its own snapshot and computes independently; the
// service itself holds no mutable state beyond the optional metrics
// cache.
type TriageService struct {
	src      store.Source
	cache    *redis.Client // nil disables caching
	cacheTTL time.Duration
	opts     engine.Options
	logger   *zap.SugaredLogger
}

// NewTriageService creates a new triage service. cache may be nil.
func NewTriageService(src store.Source, cache *redis.Client, cfg *config.Config, logger *zap.SugaredLogger) *TriageService {
	return &TriageService{
		src:      src,
		cache:    cache,
		cacheTTL: time.Duration(cfg.MetricsCacheTTL) * time.Second,
		opts: engine.Options{
			OverloadThreshold:        cfg.Engine.OverloadThreshold,
			CrimeTypeWeight:          cfg.Engine.CrimeTypeWeight,
			FacilityTypeWeight:       cfg.Engine.FacilityTypeWeight,
			HighPriorityThreshold:    cfg.Engine.HighPriorityThreshold,
			IncludeSupervisorsInPool: cfg.Engine.IncludeSupervisorsInPool,
		},
		logger: logger,
	}
}

// PriorityReports returns one page of the priority ranking of
// unassigned reports. The ranking is computed over the full snapshot
// before slicing, so pages of the same ranking never disagree.
func (s *TriageService) PriorityReports(ctx context.Context, typeFilter *models.ReportType, page, pageSize int) (*models.RankedReportPage, error) {
	snap, err := store.TakeSnapshot(ctx, s.src)
	if err != nil {
		return nil, err
	}

	ranked := engine.Rank(snap.TakenAt, snap.Reports, snap.Assignments, snap.Staff, typeFilter, s.opts, s.logger.Warnw)
	result := engine.Paginate(ranked, page, pageSize)

	s.logger.Infow("Priority ranking computed",
		"eligible", result.Total,
		"page", result.Page,
		"page_size", result.PageSize,
	)
	return &result, nil
}

// TeamMetrics returns performance metrics for every team, ranked by
// performance score. Results are served from the cache when a fresh
// entry exists; only fully computed metrics are ever cached.
func (s *TriageService) TeamMetrics(ctx context.Context) ([]models.TeamMetrics, error) {
	if cached, ok := s.cachedMetrics(ctx); ok {
		return cached, nil
	}

	snap, err := store.TakeSnapshot(ctx, s.src)
	if err != nil {
		return nil, err
	}

	workloads := engine.Aggregate(snap.Reports, snap.Assignments, snap.Staff, s.logger.Warnw)
	metrics := engine.TeamPerformance(workloads.Teams)

	s.storeMetrics(ctx, metrics)
	s.logger.Infow("Team metrics computed", "teams", len(metrics))
	return metrics, nil
}

// TopPerformers returns the leading teams of the current ranking.
func (s *TriageService) TopPerformers(ctx context.Context) ([]models.TeamMetrics, error) {
	metrics, err := s.TeamMetrics(ctx)
	if err != nil {
		return nil, err
	}
	return engine.TopPerformers(metrics), nil
}

func (s *TriageService) cachedMetrics(ctx context.Context) ([]models.TeamMetrics, bool) {
	if s.cache == nil {
		return nil, false
	}

	raw, err := s.cache.Get(ctx, teamMetricsCacheKey).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warnw("Metrics cache read failed", "error", err)
		}
		return nil, false
	}

	var metrics []models.TeamMetrics
	if err := json.Unmarshal([]byte(raw), &metrics); err != nil {
		s.logger.Warnw("Metrics cache entry unreadable, recomputing", "error", err)
		return nil, false
	}
	return metrics, true
}

func (s *TriageService) storeMetrics(ctx context.Context, metrics []models.TeamMetrics) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(metrics)
	if err != nil {
		s.logger.Warnw("Metrics cache encode failed", "error", err)
		return
	}
	if err := s.cache.Set(ctx, teamMetricsCacheKey, raw, s.cacheTTL).Err(); err != nil {
		s.logger.Warnw("Metrics cache write failed", "error", err)
	}
}

// NewMetricsCache connects to Redis for team-metrics caching. An empty
// URL disables caching and returns nil without error.
func NewMetricsCache(ctx context.Context, redisURL string) (*redis.Client, error) {
	if redisURL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}
