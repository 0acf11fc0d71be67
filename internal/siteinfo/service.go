package siteinfo

import (
	"context"
	"fmt"

	"live-reservation/internal/cache"
	"live-reservation/internal/logger"
)

type DBLayer interface {
	GetValue(key string) (string, bool, error)
	Upsert(key, value string) error
	Delete(key string) error
}

// Service reads appearance assets on every page render, so values are
// cached; writes flush the whole read cache.
type Service struct {
	DB     DBLayer
	Cache  cache.Cache
	Logger *logger.Logger
}

func NewService(db DBLayer, c cache.Cache, log *logger.Logger) *Service {
	return &Service{DB: db, Cache: c, Logger: log}
}

// Get returns the stored value or def when the key is absent or the
// read fails.
func (s *Service) Get(ctx context.Context, key, def string) string {
	cacheKey := cache.Key("site_info", key)
	if raw, ok := s.Cache.Get(ctx, cacheKey); ok {
		return string(raw)
	}

	value, found, err := s.DB.GetValue(key)
	if err != nil {
		s.Logger.Error("SITEINFO", fmt.Sprintf("Get %s: %v", key, err))
		return def
	}
	if !found {
		return def
	}

	s.Cache.Set(ctx, cacheKey, []byte(value))
	return value
}

func (s *Service) Set(ctx context.Context, key, value string) error {
	if err := s.DB.Upsert(key, value); err != nil {
		return fmt.Errorf("failed to store %s: %w", key, err)
	}
	s.Cache.Flush(ctx)
	s.Logger.Info("SITEINFO", fmt.Sprintf("Updated %s (%d bytes)", key, len(value)))
	return nil
}

func (s *Service) Reset(ctx context.Context, key string) error {
	if err := s.DB.Delete(key); err != nil {
		return fmt.Errorf("failed to reset %s: %w", key, err)
	}
	s.Cache.Flush(ctx)
	s.Logger.Info("SITEINFO", fmt.Sprintf("Reset %s", key))
	return nil
}
