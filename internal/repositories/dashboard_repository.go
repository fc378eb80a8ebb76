package repositories

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"equipment-dashboard/internal/entities"
)

type DashboardRepositoryInterface interface {
	CountEquipmentByStatus(ctx context.Context) (map[string]int64, error)
	CountUpcomingMaintenance(ctx context.Context, from, to time.Time) (int64, error)
	CountOverdueMaintenance(ctx context.Context, today time.Time) (int64, error)
	CountCompletedMaintenance(ctx context.Context, from, to time.Time) (int64, error)
	InventorySummary(ctx context.Context) (lowStock int64, totalValue float64, err error)
}

type DashboardRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewDashboardRepository(storage *pgxpool.Pool, logger *zap.Logger) DashboardRepositoryInterface {
	return &DashboardRepository{storage: storage, logger: logger}
}

func equipmentByStatusQuery() sq.SelectBuilder {
	return psql.Select("e.status", "COUNT(*)").
		From("equipment e").
		GroupBy("e.status")
}

// upcomingMaintenanceQuery counts open work scheduled in [from, to].
func upcomingMaintenanceQuery(from, to time.Time) sq.SelectBuilder {
	return psql.Select("COUNT(*)").
		From("maintenance_schedules m").
		Where(sq.Eq{"m.status": openMaintenance}).
		Where(sq.GtOrEq{"m.scheduled_date": from}).
		Where(sq.LtOrEq{"m.scheduled_date": to})
}

func overdueMaintenanceQuery(today time.Time) sq.SelectBuilder {
	return psql.Select("COUNT(*)").
		From("maintenance_schedules m").
		Where(sq.Eq{"m.status": openMaintenance}).
		Where(sq.Lt{"m.scheduled_date": today})
}

func completedMaintenanceQuery(from, to time.Time) sq.SelectBuilder {
	return psql.Select("COUNT(*)").
		From("maintenance_schedules m").
		Where(sq.Eq{"m.status": string(entities.MaintenanceCompleted)}).
		Where(sq.GtOrEq{"COALESCE(m.completion_date, m.scheduled_date)": from}).
		Where(sq.LtOrEq{"COALESCE(m.completion_date, m.scheduled_date)": to})
}

func inventorySummaryQuery() sq.SelectBuilder {
	return psql.Select(
		"COUNT(*) FILTER (WHERE i.quantity <= i.min_quantity)",
		"COALESCE(SUM(i.quantity * i.unit_price), 0)::float8",
	).From("inventory_items i")
}

func (r *DashboardRepository) count(ctx context.Context, b sq.SelectBuilder, what string) (int64, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build %s count: %w", what, err)
	}
	var n int64
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", what, err)
	}
	return n, nil
}

func (r *DashboardRepository) CountEquipmentByStatus(ctx context.Context) (map[string]int64, error) {
	query, args, err := equipmentByStatusQuery().ToSql()
	if err != nil {
		return nil, fmt.Errorf("build equipment status query: %w", err)
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count equipment by status: %w", err)
	}
	defer rows.Close()

	result := make(map[string]int64, len(entities.EquipmentStatuses))
	for _, s := range entities.EquipmentStatuses {
		result[string(s)] = 0
	}
	for rows.Next() {
		var (
			status string
			n      int64
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan equipment status count: %w", err)
		}
		result[status] = n
	}
	return result, rows.Err()
}

func (r *DashboardRepository) CountUpcomingMaintenance(ctx context.Context, from, to time.Time) (int64, error) {
	return r.count(ctx, upcomingMaintenanceQuery(from, to), "upcoming maintenance")
}

func (r *DashboardRepository) CountOverdueMaintenance(ctx context.Context, today time.Time) (int64, error) {
	return r.count(ctx, overdueMaintenanceQuery(today), "overdue maintenance")
}

func (r *DashboardRepository) CountCompletedMaintenance(ctx context.Context, from, to time.Time) (int64, error) {
	return r.count(ctx, completedMaintenanceQuery(from, to), "completed maintenance")
}

func (r *DashboardRepository) InventorySummary(ctx context.Context) (int64, float64, error) {
	query, args, err := inventorySummaryQuery().ToSql()
	if err != nil {
		return 0, 0, fmt.Errorf("build inventory summary: %w", err)
	}
	var (
		low   int64
		value float64
	)
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&low, &value); err != nil {
		return 0, 0, fmt.Errorf("inventory summary: %w", err)
	}
	return low, value, nil
}
