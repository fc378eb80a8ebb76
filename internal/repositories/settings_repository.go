package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"equipment-dashboard/internal/entities"
)

type SettingsRepositoryInterface interface {
	// GetOrCreateTheme inserts the default row on first read.
	GetOrCreateTheme(ctx context.Context, userID uint64, defaultTheme string) (string, error)
	UpsertTheme(ctx context.Context, userID uint64, theme string) error
}

type SettingsRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewSettingsRepository(storage *pgxpool.Pool, logger *zap.Logger) SettingsRepositoryInterface {
	return &SettingsRepository{storage: storage, logger: logger}
}

func (r *SettingsRepository) GetOrCreateTheme(ctx context.Context, userID uint64, defaultTheme string) (string, error) {
	if _, err := r.storage.Exec(ctx,
		`INSERT INTO dashboard_settings (user_id, theme) VALUES ($1, $2) ON CONFLICT (user_id) DO NOTHING`,
		userID, defaultTheme); err != nil {
		return "", fmt.Errorf("ensure dashboard settings: %w", err)
	}

	var s entities.DashboardSettings
	if err := r.storage.QueryRow(ctx,
		`SELECT user_id, theme, updated_at FROM dashboard_settings WHERE user_id = $1`, userID,
	).Scan(&s.UserID, &s.Theme, &s.UpdatedAt); err != nil {
		return "", fmt.Errorf("read dashboard settings: %w", err)
	}
	return s.Theme, nil
}

func (r *SettingsRepository) UpsertTheme(ctx context.Context, userID uint64, theme string) error {
	_, err := r.storage.Exec(ctx,
		`INSERT INTO dashboard_settings (user_id, theme, updated_at) VALUES ($1, $2, CURRENT_TIMESTAMP)
		 ON CONFLICT (user_id) DO UPDATE SET theme = EXCLUDED.theme, updated_at = CURRENT_TIMESTAMP`,
		userID, theme)
	if err != nil {
		return fmt.Errorf("upsert dashboard settings: %w", err)
	}
	return nil
}
