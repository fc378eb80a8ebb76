package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"equipment-dashboard/internal/entities"
	"equipment-dashboard/internal/repositories"
	apperrors "equipment-dashboard/pkg/errors"
)

const themeCacheKeyPrefix = "settings:theme:"

func themeCacheKey(userID uint64) string { return fmt.Sprintf("%s%d", themeCacheKeyPrefix, userID) }

type SettingsServiceInterface interface {
	GetTheme(ctx context.Context, userID uint64) string
	SetTheme(ctx context.Context, userID uint64, theme string) error
}

type SettingsService struct {
	repo   repositories.SettingsRepositoryInterface
	cache  repositories.CacheRepositoryInterface
	ttl    time.Duration
	logger *zap.Logger
}

func NewSettingsService(
	repo repositories.SettingsRepositoryInterface,
	cache repositories.CacheRepositoryInterface,
	ttl time.Duration,
	logger *zap.Logger,
) *SettingsService {
	return &SettingsService{repo: repo, cache: cache, ttl: ttl, logger: logger}
}

// GetTheme always yields a usable theme: storage failures fall back to the default.
func (s *SettingsService) GetTheme(ctx context.Context, userID uint64) string {
	key := themeCacheKey(userID)
	if cached, err := s.cache.Get(ctx, key); err == nil && entities.ValidTheme(cached) {
		return cached
	}

	theme, err := s.repo.GetOrCreateTheme(ctx, userID, entities.DefaultTheme)
	if err != nil || !entities.ValidTheme(theme) {
		s.logger.Warn("theme lookup failed, using default",
			zap.Uint64("userID", userID),
			zap.String("stored", theme),
			zap.Error(err),
		)
		return entities.DefaultTheme
	}

	if err := s.cache.Set(ctx, key, theme, s.ttl); err != nil {
		s.logger.Debug("theme cache write failed", zap.Error(err))
	}
	return theme
}

func (s *SettingsService) SetTheme(ctx context.Context, userID uint64, theme string) error {
	if !entities.ValidTheme(theme) {
		return apperrors.NewInvalidInputError("theme must be %q or %q", entities.ThemeDark, entities.ThemeLight)
	}
	if err := s.repo.UpsertTheme(ctx, userID, theme); err != nil {
		return err
	}
	if err := s.cache.Set(ctx, themeCacheKey(userID), theme, s.ttl); err != nil {
		s.logger.Debug("theme cache write failed", zap.Error(err))
	}
	return nil
}
