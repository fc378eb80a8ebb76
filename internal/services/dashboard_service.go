package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"equipment-dashboard/internal/dto"
	"equipment-dashboard/internal/entities"
	"equipment-dashboard/internal/repositories"
)

const (
	dashboardStatsCacheKey = "dashboard:stats"
	recentActivityLimit    = 10
	upcomingWindowDays     = 7
)

type DashboardServiceInterface interface {
	GetStats(ctx context.Context) (*dto.DashboardStatsDTO, error)
}

type DashboardService struct {
	repo     repositories.DashboardRepositoryInterface
	activity repositories.ActivityLogRepositoryInterface
	cache    repositories.CacheRepositoryInterface
	ttl      time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

func NewDashboardService(
	repo repositories.DashboardRepositoryInterface,
	activity repositories.ActivityLogRepositoryInterface,
	cache repositories.CacheRepositoryInterface,
	ttl time.Duration,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{repo: repo, activity: activity, cache: cache, ttl: ttl, logger: logger, now: time.Now}
}

func (s *DashboardService) GetStats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	if raw, err := s.cache.Get(ctx, dashboardStatsCacheKey); err == nil {
		var cached dto.DashboardStatsDTO
		if json.Unmarshal([]byte(raw), &cached) == nil {
			return &cached, nil
		}
	}

	stats, degraded, err := s.collect(ctx)
	if err != nil {
		return nil, err
	}
	if degraded {
		return stats, nil
	}

	if raw, err := json.Marshal(stats); err == nil {
		if err := s.cache.Set(ctx, dashboardStatsCacheKey, raw, s.ttl); err != nil {
			s.logger.Debug("dashboard cache write failed", zap.Error(err))
		}
	}
	return stats, nil
}

// collect runs the independent stat queries concurrently. A failed stat is logged and
// left at its zero value, and degraded is set so the partial result is not cached. An
// error is returned only when every stat failed.
func (s *DashboardService) collect(ctx context.Context) (stats *dto.DashboardStatsDTO, degraded bool, err error) {
	now := s.now()
	today := truncateDay(now)
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	stats = &dto.DashboardStatsDTO{
		EquipmentByStatus: map[string]int64{},
		RecentActivity:    []entities.ActivityLogEntry{},
	}
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		started  int
		failed   int
		firstErr error
	)
	run := func(name string, fn func() error) {
		started++
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				s.logger.Warn("dashboard stat failed", zap.String("stat", name), zap.Error(err))
				mu.Lock()
				failed++
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}()
	}

	run("equipment_by_status", func() error {
		byStatus, err := s.repo.CountEquipmentByStatus(ctx)
		if err != nil {
			return err
		}
		var total int64
		for _, n := range byStatus {
			total += n
		}
		mu.Lock()
		stats.EquipmentByStatus, stats.EquipmentTotal = byStatus, total
		mu.Unlock()
		return nil
	})
	run("upcoming_maintenance", func() error {
		n, err := s.repo.CountUpcomingMaintenance(ctx, today, today.AddDate(0, 0, upcomingWindowDays))
		if err != nil {
			return err
		}
		mu.Lock()
		stats.UpcomingMaintenance = n
		mu.Unlock()
		return nil
	})
	run("overdue_maintenance", func() error {
		n, err := s.repo.CountOverdueMaintenance(ctx, today)
		if err != nil {
			return err
		}
		mu.Lock()
		stats.OverdueMaintenance = n
		mu.Unlock()
		return nil
	})
	run("completed_this_month", func() error {
		n, err := s.repo.CountCompletedMaintenance(ctx, monthStart, monthEnd)
		if err != nil {
			return err
		}
		mu.Lock()
		stats.CompletedThisMonth = n
		mu.Unlock()
		return nil
	})
	run("inventory_summary", func() error {
		low, value, err := s.repo.InventorySummary(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		stats.LowStockItems, stats.InventoryTotalValue = low, value
		mu.Unlock()
		return nil
	})
	run("recent_activity", func() error {
		recent, err := s.activity.GetRecent(ctx, recentActivityLimit)
		if err != nil {
			return err
		}
		if recent != nil {
			mu.Lock()
			stats.RecentActivity = recent
			mu.Unlock()
		}
		return nil
	})

	wg.Wait()
	if failed == started {
		return nil, true, firstErr
	}
	return stats, failed > 0, nil
}
