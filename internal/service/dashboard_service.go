package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/Nabeelato/job-tracker-app-sub001/internal/models"
	appErrors "github.com/Nabeelato/job-tracker-app-sub001/pkg/errors"
)

const dashboardCacheKey = "dashboard:stats"

type dashboardJobRepository interface {
	DashboardStats(ctx context.Context, now time.Time) (*models.DashboardStats, error)
}

type dashboardCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// DashboardService serves the aggregate dashboard payload, cached in
// Redis to keep the board page off the aggregate queries.
type DashboardService struct {
	repo   dashboardJobRepository
	cache  dashboardCache
	ttl    time.Duration
	logger *zap.Logger
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(repo dashboardJobRepository, cache dashboardCache, ttl time.Duration, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &DashboardService{repo: repo, cache: cache, ttl: ttl, logger: logger}
}

// Stats returns the dashboard aggregates, from cache when fresh.
func (s *DashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	var cached models.DashboardStats
	err := s.cache.Get(ctx, dashboardCacheKey, &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, appErrors.ErrCacheMiss) {
		s.logger.Warn("dashboard cache read failed", zap.Error(err))
	}

	stats, err := s.repo.DashboardStats(ctx, time.Now().UTC())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to compute dashboard stats")
	}

	if err := s.cache.Set(ctx, dashboardCacheKey, stats, s.ttl); err != nil {
		s.logger.Warn("dashboard cache write failed", zap.Error(err))
	}
	return stats, nil
}

// Invalidate drops the cached dashboard payload so the next read
// recomputes it.
func (s *DashboardService) Invalidate(ctx context.Context) {
	if err := s.cache.DeleteByPattern(ctx, dashboardCacheKey); err != nil {
		s.logger.Warn("dashboard cache invalidation failed", zap.Error(err))
	}
}
