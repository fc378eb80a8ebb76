package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"equipment-dashboard/internal/entities"
	apperrors "equipment-dashboard/pkg/errors"
)

// MaxReportRows caps the rows of a single report.
const MaxReportRows = 50000

type ReportRepositoryInterface interface {
	FetchReport(ctx context.Context, filter entities.ReportFilter) ([]map[string]any, error)
}

type ReportRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewReportRepository(storage *pgxpool.Pool, logger *zap.Logger) ReportRepositoryInterface {
	return &ReportRepository{storage: storage, logger: logger}
}

func (r *ReportRepository) FetchReport(ctx context.Context, filter entities.ReportFilter) ([]map[string]any, error) {
	builder, err := BuildReportQuery(filter)
	if err != nil {
		return nil, err
	}
	query, args, err := builder.Limit(MaxReportRows).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s report: %w", filter.Kind, err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s report: %w", filter.Kind, err)
	}
	result, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, fmt.Errorf("collect %s report: %w", filter.Kind, err)
	}
	return result, nil
}

var openMaintenance = []interface{}{string(entities.MaintenanceScheduled), string(entities.MaintenanceInProgress)}

// BuildReportQuery returns the fixed query for a report kind. Filter values only ever
// reach the database as bind arguments.
func BuildReportQuery(f entities.ReportFilter) (sq.SelectBuilder, error) {
	switch f.Kind {
	case entities.ReportEquipment:
		return equipmentReport(f), nil
	case entities.ReportMaintenance:
		return maintenanceReport(f), nil
	case entities.ReportInventory:
		return inventoryReport(f), nil
	case entities.ReportUsage:
		return usageReport(f), nil
	case entities.ReportCost:
		return costReport(f), nil
	case entities.ReportPerformance:
		return performanceReport(f), nil
	case entities.ReportActivity:
		return activityReport(f), nil
	default:
		return sq.SelectBuilder{}, apperrors.NewInvalidInputError("unknown report type %q", f.Kind)
	}
}

func equipmentEquality(b sq.SelectBuilder, f entities.ReportFilter) sq.SelectBuilder {
	if f.EquipmentType != "" {
		b = b.Where(sq.Eq{"e.type": f.EquipmentType})
	}
	if f.Status != "" {
		b = b.Where(sq.Eq{"e.status": f.Status})
	}
	return b
}

func equipmentReport(f entities.ReportFilter) sq.SelectBuilder {
	b := psql.Select(
		"e.id", "e.name", "e.type", "e.status", "e.location", "e.serial_number", "e.manufacturer",
		"e.purchase_date", "e.warranty_expiry", "e.cost::float8 AS cost", "e.last_maintenance_date",
	).
		Column("(SELECT COUNT(*) FROM maintenance_schedules ms WHERE ms.equipment_id = e.id AND ms.status IN (?, ?)) AS pending_maintenance", openMaintenance...).
		From("equipment e")
	return equipmentEquality(b, f).OrderBy("e.name ASC", "e.id ASC")
}

func maintenanceReport(f entities.ReportFilter) sq.SelectBuilder {
	b := psql.Select(
		"m.id", "e.name AS equipment_name", "e.type AS equipment_type", "m.scheduled_date",
		"m.description", "m.priority", "m.status",
	).
		Column("CASE WHEN m.status IN (?, ?) AND m.scheduled_date < CURRENT_DATE THEN ? ELSE m.status END AS display_status",
			append(append([]interface{}{}, openMaintenance...), string(entities.MaintenanceOverdue))...).
		Columns("u.name AS assigned_to", "m.completion_date", "m.completion_notes", "m.cost::float8 AS cost").
		From("maintenance_schedules m").
		Join("equipment e ON e.id = m.equipment_id").
		LeftJoin("users u ON u.id = m.assigned_to").
		Where(sq.GtOrEq{"m.scheduled_date": f.From}).
		Where(sq.LtOrEq{"m.scheduled_date": f.To})

	if f.Status != "" {
		if pred := MaintenanceStatusPredicate([]string{f.Status}); pred != nil {
			b = b.Where(pred)
		}
	}
	if f.EquipmentType != "" {
		b = b.Where(sq.Eq{"e.type": f.EquipmentType})
	}
	return b.OrderBy("m.scheduled_date DESC", "m.id DESC")
}

func inventoryReport(f entities.ReportFilter) sq.SelectBuilder {
	b := psql.Select(
		"i.id", "i.name", "i.category", "i.quantity", "i.min_quantity", "i.unit_price::float8 AS unit_price",
		"(i.quantity * i.unit_price)::float8 AS total_value",
	).
		Column("CASE WHEN i.quantity <= 0 THEN ? WHEN i.quantity <= i.min_quantity THEN ? ELSE ? END AS stock_status",
			entities.StockEmpty, entities.StockLow, entities.StockIn).
		Columns("i.supplier", "i.location", "i.updated_at").
		From("inventory_items i")

	if f.EquipmentType != "" {
		b = b.Where(sq.Eq{"i.category": f.EquipmentType})
	}
	if f.Status != "" {
		if pred := StockStatusPredicate("i", []string{f.Status}); pred != nil {
			b = b.Where(pred)
		}
	}
	return b.OrderBy("i.name ASC", "i.id ASC")
}

func usageReport(f entities.ReportFilter) sq.SelectBuilder {
	b := psql.Select(
		"eu.id", "e.name AS equipment_name", "e.type AS equipment_type", "u.name AS user_name",
		"eu.started_at", "eu.ended_at", "eu.duration_minutes",
	).
		From("equipment_usage eu").
		Join("equipment e ON e.id = eu.equipment_id").
		LeftJoin("users u ON u.id = eu.user_id").
		Where(sq.GtOrEq{"eu.started_at": f.From}).
		Where(sq.Lt{"eu.started_at": f.To.AddDate(0, 0, 1)})

	if f.EquipmentType != "" {
		b = b.Where(sq.Eq{"e.type": f.EquipmentType})
	}
	return b.OrderBy("eu.started_at DESC", "eu.id DESC")
}

func costReport(f entities.ReportFilter) sq.SelectBuilder {
	b := psql.Select("e.id", "e.name", "e.type", "e.status", "e.cost::float8 AS purchase_cost").
		Column("(SELECT COALESCE(SUM(ms.cost), 0) FROM maintenance_schedules ms WHERE ms.equipment_id = e.id AND ms.scheduled_date BETWEEN ? AND ?)::float8 AS maintenance_cost", f.From, f.To).
		Column("(SELECT COUNT(*) FROM maintenance_schedules ms WHERE ms.equipment_id = e.id AND ms.scheduled_date BETWEEN ? AND ?) AS maintenance_count", f.From, f.To).
		Column("(COALESCE(e.cost, 0) + (SELECT COALESCE(SUM(ms.cost), 0) FROM maintenance_schedules ms WHERE ms.equipment_id = e.id AND ms.scheduled_date BETWEEN ? AND ?))::float8 AS total_cost", f.From, f.To).
		From("equipment e")
	return equipmentEquality(b, f).OrderBy("e.name ASC", "e.id ASC")
}

func performanceReport(f entities.ReportFilter) sq.SelectBuilder {
	until := f.To.AddDate(0, 0, 1)
	b := psql.Select("e.id", "e.name", "e.type", "e.status", "e.purchase_date").
		Column("(SELECT COUNT(*) FROM equipment_usage eu WHERE eu.equipment_id = e.id AND eu.started_at >= ? AND eu.started_at < ?) AS usage_count", f.From, until).
		Column("(SELECT COALESCE(SUM(eu.duration_minutes), 0) FROM equipment_usage eu WHERE eu.equipment_id = e.id AND eu.started_at >= ? AND eu.started_at < ?)::bigint AS usage_minutes", f.From, until).
		Column("(SELECT COUNT(*) FROM maintenance_schedules ms WHERE ms.equipment_id = e.id AND ms.scheduled_date BETWEEN ? AND ?) AS maintenance_count", f.From, f.To).
		Column("COALESCE((SELECT MAX(COALESCE(ms.completion_date, ms.scheduled_date)) FROM maintenance_schedules ms WHERE ms.equipment_id = e.id AND ms.status = ?), e.last_maintenance_date) AS last_maintenance", string(entities.MaintenanceCompleted)).
		Columns(
			"(CURRENT_DATE - COALESCE(e.purchase_date, e.created_at::date)) AS age_days",
			"e.expected_lifetime_days",
			"ROUND((CURRENT_DATE - COALESCE(e.purchase_date, e.created_at::date))::numeric * 100 / NULLIF(e.expected_lifetime_days, 0), 1)::float8 AS lifecycle_percentage",
		).
		From("equipment e")
	return equipmentEquality(b, f).OrderBy("e.name ASC", "e.id ASC")
}

func activityReport(f entities.ReportFilter) sq.SelectBuilder {
	return psql.Select(
		"a.id", "a.created_at", "u.name AS user_name", "e.name AS equipment_name", "a.action", "a.details::text AS details",
	).
		From("activity_log a").
		LeftJoin("users u ON u.id = a.user_id").
		LeftJoin("equipment e ON e.id = a.equipment_id").
		Where(sq.GtOrEq{"a.created_at": f.From}).
		Where(sq.Lt{"a.created_at": f.To.AddDate(0, 0, 1)}).
		OrderBy("a.created_at DESC", "a.id DESC")
}
