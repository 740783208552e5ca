// Package seo serves the site-wide SEO settings, cached for a short window.
package seo

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"provaa/internal/lib/logger/sl"
	"provaa/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	CacheKey        = "seo:settings"
	DefaultCacheTTL = 5 * time.Minute
)

type SettingsStore interface {
	GetAdminSettings(ctx context.Context, keys []string) (map[string]string, error)
}

type Service struct {
	log   *slog.Logger
	store SettingsStore
	cache *redis.Client
	ttl   time.Duration
}

// New builds the service. A nil cache disables caching.
func New(log *slog.Logger, store SettingsStore, cache *redis.Client, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	return &Service{
		log:   log.With(slog.String("component", "seo")),
		store: store,
		cache: cache,
		ttl:   ttl,
	}
}

// Settings never fails: store errors fall back to the defaults, which are not cached.
func (s *Service) Settings(ctx context.Context) models.SEOSettings {
	if settings, ok := s.cached(ctx); ok {
		return settings
	}

	values, err := s.store.GetAdminSettings(ctx, models.SEOSettingKeys)
	if err != nil {
		s.log.Error("failed to load seo settings, using defaults", sl.Err(err))
		return models.DefaultSEOSettings()
	}

	settings := models.SEOSettingsFromMap(values)
	s.remember(ctx, settings)

	return settings
}

func (s *Service) cached(ctx context.Context) (models.SEOSettings, bool) {
	if s.cache == nil {
		return models.SEOSettings{}, false
	}

	b, err := s.cache.Get(ctx, CacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warn("failed to read seo cache", sl.Err(err))
		}
		return models.SEOSettings{}, false
	}

	var settings models.SEOSettings
	if err = json.Unmarshal(b, &settings); err != nil {
		s.log.Warn("corrupted seo cache entry", sl.Err(err))
		return models.SEOSettings{}, false
	}

	return settings, true
}

func (s *Service) remember(ctx context.Context, settings models.SEOSettings) {
	if s.cache == nil {
		return
	}

	b, err := json.Marshal(settings)
	if err != nil {
		s.log.Warn("failed to encode seo settings", sl.Err(err))
		return
	}

	if err = s.cache.Set(ctx, CacheKey, b, s.ttl).Err(); err != nil {
		s.log.Warn("failed to write seo cache", sl.Err(err))
	}
}
