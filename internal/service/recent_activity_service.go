package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/platform-admin-api/internal/dto"
	"github.com/noah-isme/platform-admin-api/internal/observability"
	"github.com/noah-isme/platform-admin-api/internal/repository"
)

const (
	defaultRecentLimit = 10
	maxRecentLimit     = 100
)

// RecentActivityService serves the dashboard's most-recent-events feed.
type RecentActivityService interface {
	Recent(ctx context.Context, limit int) (dto.RecentActivityResponse, error)
}

type recentActivityService struct {
	repo   repository.ActivityLogRepository
	cache  *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
	tracer trace.Tracer
}

// NewRecentActivityService builds the recent-activity service. A nil cache
// client disables caching.
func NewRecentActivityService(repo repository.ActivityLogRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) RecentActivityService {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &recentActivityService{
		repo:   repo,
		cache:  cache,
		ttl:    ttl,
		logger: logger.With().Str("component", "recent_activity_service").Logger(),
		tracer: otel.Tracer("github.com/noah-isme/platform-admin-api/internal/service/recent_activity"),
	}
}

func (s *recentActivityService) Recent(ctx context.Context, limit int) (dto.RecentActivityResponse, error) {
	start := time.Now()
	defer func() {
		observability.RecentActivityLatency().Observe(time.Since(start).Seconds())
	}()

	limit = clampRecentLimit(limit)

	ctx, span := s.tracer.Start(ctx, "activity.recent",
		trace.WithAttributes(attribute.Int("activity.limit", limit)))
	defer span.End()

	cacheKey := s.cacheKey(limit)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			var response dto.RecentActivityResponse
			if err := json.Unmarshal([]byte(cached), &response); err == nil {
				response.CacheHit = true
				observability.RecentActivityRequests().WithLabelValues("hit").Inc()
				return response, nil
			}
		}
	}

	entries, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		observability.RecentActivityRequests().WithLabelValues("error").Inc()
		return dto.RecentActivityResponse{}, err
	}

	items := make([]dto.ActivityResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.NewActivityResponse(entry))
	}

	response := dto.RecentActivityResponse{Items: items, CacheHit: false}

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.ttl).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to write recent activity cache")
			}
		}
	}

	observability.RecentActivityRequests().WithLabelValues("miss").Inc()

	return response, nil
}

func (s *recentActivityService) cacheKey(limit int) string {
	return fmt.Sprintf("activities:recent:v1:%d", limit)
}

func clampRecentLimit(limit int) int {
	if limit <= 0 {
		return defaultRecentLimit
	}
	if limit > maxRecentLimit {
		return maxRecentLimit
	}
	return limit
}
