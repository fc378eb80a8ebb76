package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"equipment-dashboard/internal/entities"
	db "equipment-dashboard/internal/infrastructure/bd"
	apperrors "equipment-dashboard/pkg/errors"
	"equipment-dashboard/pkg/types"
)

const maintenanceTable = "maintenance_schedules"

var maintenanceMap = map[string]string{
	"id":              "m.id",
	"equipment_id":    "m.equipment_id",
	"scheduled_date":  "m.scheduled_date",
	"priority":        "m.priority",
	"assigned_to":     "m.assigned_to",
	"completion_date": "m.completion_date",
	"cost":            "m.cost",
	"created_at":      "m.created_at",
	"equipment_name":  "e.name",
	"equipment_type":  "e.type",
}

// status is sortable but filtered separately because Overdue is not a stored value.
var maintenanceSortMap = mergeMaps(maintenanceMap, map[string]string{"status": "m.status"})

var maintenanceColumns = []string{
	"m.id", "m.equipment_id", "m.scheduled_date", "m.description", "m.priority", "m.status",
	"m.assigned_to", "m.completion_date", "m.completion_notes", "m.cost::float8", "m.created_by",
	"m.created_at", "m.updated_at",
	"e.name", "e.type", "u.name",
}

type MaintenanceRepositoryInterface interface {
	GetMaintenance(ctx context.Context, filter types.Filter) ([]entities.MaintenanceSchedule, uint64, error)
	FindMaintenance(ctx context.Context, tx pgx.Tx, id uint64) (*entities.MaintenanceSchedule, error)
	FindMaintenanceForUpdate(ctx context.Context, tx pgx.Tx, id uint64) (*entities.MaintenanceSchedule, error)
	CreateMaintenance(ctx context.Context, tx pgx.Tx, m entities.MaintenanceSchedule) (uint64, error)
	UpdateMaintenance(ctx context.Context, tx pgx.Tx, m entities.MaintenanceSchedule) error
	DeleteMaintenance(ctx context.Context, tx pgx.Tx, id uint64) error
	ListScheduledBetween(ctx context.Context, from, to time.Time) ([]entities.MaintenanceSchedule, error)
}

type MaintenanceRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewMaintenanceRepository(storage *pgxpool.Pool, logger *zap.Logger) MaintenanceRepositoryInterface {
	return &MaintenanceRepository{storage: storage, logger: logger}
}

func scanMaintenance(row pgx.Row) (*entities.MaintenanceSchedule, error) {
	var m entities.MaintenanceSchedule
	var priority, status string
	err := row.Scan(
		&m.ID, &m.EquipmentID, &m.ScheduledDate, &m.Description, &priority, &status,
		&m.AssignedTo, &m.CompletionDate, &m.CompletionNotes, &m.Cost, &m.CreatedBy,
		&m.CreatedAt, &m.UpdatedAt,
		&m.EquipmentName, &m.EquipmentType, &m.AssignedToName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan maintenance: %w", err)
	}
	m.Priority = entities.MaintenancePriority(priority)
	m.Status = entities.MaintenanceStatus(status)
	return &m, nil
}

func maintenanceBase(b sq.SelectBuilder) sq.SelectBuilder {
	return b.From(maintenanceTable + " AS m").
		Join("equipment e ON e.id = m.equipment_id").
		LeftJoin("users u ON u.id = m.assigned_to")
}

// MaintenanceStatusPredicate turns status filter values into a condition. Overdue means
// open work (Scheduled or In Progress) dated before today.
func MaintenanceStatusPredicate(values []string) sq.Sqlizer {
	var stored []string
	overdue := false
	for _, v := range values {
		v = strings.TrimSpace(v)
		switch {
		case v == "":
		case strings.EqualFold(v, string(entities.MaintenanceOverdue)):
			overdue = true
		default:
			stored = append(stored, v)
		}
	}

	var preds sq.Or
	if len(stored) == 1 {
		preds = append(preds, sq.Eq{"m.status": stored[0]})
	} else if len(stored) > 1 {
		preds = append(preds, sq.Eq{"m.status": stored})
	}
	if overdue {
		preds = append(preds, sq.And{
			sq.Eq{"m.status": []string{string(entities.MaintenanceScheduled), string(entities.MaintenanceInProgress)}},
			sq.Expr("m.scheduled_date < CURRENT_DATE"),
		})
	}

	switch len(preds) {
	case 0:
		return nil
	case 1:
		return preds[0]
	default:
		return preds
	}
}

func maintenanceFilters(b sq.SelectBuilder, filter types.Filter) sq.SelectBuilder {
	if filter.Search != "" {
		pat := "%" + filter.Search + "%"
		b = b.Where(sq.Or{
			sq.ILike{"m.description": pat},
			sq.ILike{"e.name": pat},
			sq.ILike{"e.type": pat},
		})
	}
	if raw, ok := filter.Filter["status"].(string); ok {
		if pred := MaintenanceStatusPredicate(strings.Split(raw, ",")); pred != nil {
			b = b.Where(pred)
		}
	}
	if from, ok := filter.Filter["date_from"].(string); ok && from != "" {
		b = b.Where(sq.GtOrEq{"m.scheduled_date": from})
	}
	if to, ok := filter.Filter["date_to"].(string); ok && to != "" {
		b = b.Where(sq.LtOrEq{"m.scheduled_date": to})
	}
	return b
}

func buildMaintenanceListQueries(filter types.Filter) (sq.SelectBuilder, sq.SelectBuilder) {
	countBuilder := maintenanceBase(psql.Select("COUNT(m.id)"))
	countBuilder = maintenanceFilters(countBuilder, filter)
	countBuilder = applyEqualityFilters(countBuilder, filter, maintenanceMap)

	selectBuilder := maintenanceBase(psql.Select(maintenanceColumns...))
	selectBuilder = maintenanceFilters(selectBuilder, filter)
	selectBuilder = applyEqualityFilters(selectBuilder, filter, maintenanceMap)
	if !db.HasSort(filter, maintenanceSortMap) {
		selectBuilder = selectBuilder.OrderBy("m.scheduled_date DESC", "m.id DESC")
	}
	selectBuilder = db.ApplyListParams(selectBuilder, withoutFilters(filter), maintenanceSortMap)
	return countBuilder, selectBuilder
}

// applyEqualityFilters applies only the allow-listed filter[...] values.
func applyEqualityFilters(b sq.SelectBuilder, filter types.Filter, allowed map[string]string) sq.SelectBuilder {
	return db.ApplyListParams(b, types.Filter{Filter: filter.Filter}, allowed)
}

// withoutFilters keeps ordering and paging only.
func withoutFilters(filter types.Filter) types.Filter {
	filter.Filter = nil
	return filter
}

func (r *MaintenanceRepository) GetMaintenance(ctx context.Context, filter types.Filter) ([]entities.MaintenanceSchedule, uint64, error) {
	countBuilder, selectBuilder := buildMaintenanceListQueries(filter)

	var total uint64
	sqlCount, argsCount, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count maintenance: %w", err)
	}
	if total == 0 {
		return []entities.MaintenanceSchedule{}, 0, nil
	}

	list, err := r.query(ctx, selectBuilder)
	return list, total, err
}

func (r *MaintenanceRepository) query(ctx context.Context, b sq.SelectBuilder) ([]entities.MaintenanceSchedule, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list maintenance: %w", err)
	}
	defer rows.Close()

	list := make([]entities.MaintenanceSchedule, 0)
	for rows.Next() {
		m, err := scanMaintenance(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *m)
	}
	return list, rows.Err()
}

func (r *MaintenanceRepository) findOne(ctx context.Context, q Querier, id uint64, suffix string) (*entities.MaintenanceSchedule, error) {
	b := maintenanceBase(psql.Select(maintenanceColumns...)).Where(sq.Eq{"m.id": id})
	if suffix != "" {
		b = b.Suffix(suffix)
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	return scanMaintenance(q.QueryRow(ctx, query, args...))
}

func (r *MaintenanceRepository) FindMaintenance(ctx context.Context, tx pgx.Tx, id uint64) (*entities.MaintenanceSchedule, error) {
	return r.findOne(ctx, pick(r.storage, tx), id, "")
}

func (r *MaintenanceRepository) FindMaintenanceForUpdate(ctx context.Context, tx pgx.Tx, id uint64) (*entities.MaintenanceSchedule, error) {
	return r.findOne(ctx, pick(r.storage, tx), id, "FOR UPDATE OF m")
}

func (r *MaintenanceRepository) CreateMaintenance(ctx context.Context, tx pgx.Tx, m entities.MaintenanceSchedule) (uint64, error) {
	query, args, err := psql.Insert(maintenanceTable).
		Columns("equipment_id", "scheduled_date", "description", "priority", "status",
			"assigned_to", "cost", "created_by").
		Values(m.EquipmentID, m.ScheduledDate, m.Description, string(m.Priority), string(m.Status),
			m.AssignedTo, m.Cost, m.CreatedBy).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, err
	}
	var id uint64
	if err := pick(r.storage, tx).QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, writeError("insert maintenance", maintenanceTable, err)
	}
	return id, nil
}

func (r *MaintenanceRepository) UpdateMaintenance(ctx context.Context, tx pgx.Tx, m entities.MaintenanceSchedule) error {
	query, args, err := psql.Update(maintenanceTable).
		SetMap(map[string]interface{}{
			"scheduled_date":   m.ScheduledDate,
			"description":      m.Description,
			"priority":         string(m.Priority),
			"status":           string(m.Status),
			"assigned_to":      m.AssignedTo,
			"completion_date":  m.CompletionDate,
			"completion_notes": m.CompletionNotes,
			"cost":             m.Cost,
			"updated_at":       sq.Expr("CURRENT_TIMESTAMP"),
		}).
		Where(sq.Eq{"id": m.ID}).
		ToSql()
	if err != nil {
		return err
	}
	tag, err := pick(r.storage, tx).Exec(ctx, query, args...)
	if err != nil {
		return writeError("update maintenance", maintenanceTable, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *MaintenanceRepository) DeleteMaintenance(ctx context.Context, tx pgx.Tx, id uint64) error {
	tag, err := pick(r.storage, tx).Exec(ctx, "DELETE FROM "+maintenanceTable+" WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete maintenance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListScheduledBetween returns every record scheduled in [from, to], oldest first.
func (r *MaintenanceRepository) ListScheduledBetween(ctx context.Context, from, to time.Time) ([]entities.MaintenanceSchedule, error) {
	b := maintenanceBase(psql.Select(maintenanceColumns...)).
		Where(sq.GtOrEq{"m.scheduled_date": from}).
		Where(sq.LtOrEq{"m.scheduled_date": to}).
		OrderBy("m.scheduled_date ASC", "m.id ASC")
	return r.query(ctx, b)
}

func mergeMaps(maps ...map[string]string) map[string]string {
	out := make(map[string]string)
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}
