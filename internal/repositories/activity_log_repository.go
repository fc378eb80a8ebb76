package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"equipment-dashboard/internal/entities"
	db "equipment-dashboard/internal/infrastructure/bd"
	"equipment-dashboard/pkg/types"
)

const activityLogTable = "activity_log"

var activityLogMap = map[string]string{
	"id":           "a.id",
	"user_id":      "a.user_id",
	"equipment_id": "a.equipment_id",
	"action":       "a.action",
	"created_at":   "a.created_at",
}

var activityLogColumns = []string{
	"a.id", "a.user_id", "a.equipment_id", "a.action", "a.details", "a.created_at", "u.name", "e.name",
}

// ActivityLogRepositoryInterface is append-only: there is no update or delete.
type ActivityLogRepositoryInterface interface {
	CreateEntry(ctx context.Context, tx pgx.Tx, entry entities.ActivityLogEntry) error
	GetEntries(ctx context.Context, filter types.Filter) ([]entities.ActivityLogEntry, uint64, error)
	GetRecent(ctx context.Context, limit uint64) ([]entities.ActivityLogEntry, error)
}

type ActivityLogRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewActivityLogRepository(storage *pgxpool.Pool, logger *zap.Logger) ActivityLogRepositoryInterface {
	return &ActivityLogRepository{storage: storage, logger: logger}
}

// emptyDetails matches the column default; details is NOT NULL.
const emptyDetails = "{}"

func activityInsert(entry entities.ActivityLogEntry) sq.InsertBuilder {
	details := emptyDetails
	if len(entry.Details) > 0 {
		details = string(entry.Details)
	}
	return psql.Insert(activityLogTable).
		Columns("user_id", "equipment_id", "action", "details").
		Values(entry.UserID, entry.EquipmentID, entry.Action, details)
}

func (r *ActivityLogRepository) CreateEntry(ctx context.Context, tx pgx.Tx, entry entities.ActivityLogEntry) error {
	query, args, err := activityInsert(entry).ToSql()
	if err != nil {
		return err
	}
	if _, err := pick(r.storage, tx).Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert activity log entry: %w", err)
	}
	return nil
}

func activityBase(b sq.SelectBuilder) sq.SelectBuilder {
	return b.From(activityLogTable + " AS a").
		LeftJoin("users u ON u.id = a.user_id").
		LeftJoin("equipment e ON e.id = a.equipment_id")
}

func activitySearch(b sq.SelectBuilder, search string) sq.SelectBuilder {
	if search == "" {
		return b
	}
	pat := "%" + search + "%"
	return b.Where(sq.Or{sq.ILike{"a.action": pat}, sq.ILike{"u.name": pat}, sq.ILike{"e.name": pat}})
}

func scanActivity(row pgx.Row) (entities.ActivityLogEntry, error) {
	var a entities.ActivityLogEntry
	var details []byte
	if err := row.Scan(&a.ID, &a.UserID, &a.EquipmentID, &a.Action, &details, &a.CreatedAt,
		&a.UserName, &a.EquipmentName); err != nil {
		return a, fmt.Errorf("scan activity log entry: %w", err)
	}
	if len(details) > 0 {
		a.Details = details
	}
	return a, nil
}

func (r *ActivityLogRepository) list(ctx context.Context, b sq.SelectBuilder) ([]entities.ActivityLogEntry, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list activity log: %w", err)
	}
	defer rows.Close()

	entries := make([]entities.ActivityLogEntry, 0)
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, a)
	}
	return entries, rows.Err()
}

func (r *ActivityLogRepository) GetEntries(ctx context.Context, filter types.Filter) ([]entities.ActivityLogEntry, uint64, error) {
	countBuilder := activityBase(psql.Select("COUNT(a.id)"))
	countBuilder = activitySearch(countBuilder, filter.Search)
	countBuilder = db.ApplyListParams(countBuilder, db.ForCount(filter), activityLogMap)

	var total uint64
	sqlCount, argsCount, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count activity log: %w", err)
	}
	if total == 0 {
		return []entities.ActivityLogEntry{}, 0, nil
	}

	selectBuilder := activityBase(psql.Select(activityLogColumns...))
	selectBuilder = activitySearch(selectBuilder, filter.Search)
	if !db.HasSort(filter, activityLogMap) {
		selectBuilder = selectBuilder.OrderBy("a.created_at DESC", "a.id DESC")
	}
	selectBuilder = db.ApplyListParams(selectBuilder, filter, activityLogMap)

	entries, err := r.list(ctx, selectBuilder)
	return entries, total, err
}

func (r *ActivityLogRepository) GetRecent(ctx context.Context, limit uint64) ([]entities.ActivityLogEntry, error) {
	return r.list(ctx, activityBase(psql.Select(activityLogColumns...)).
		OrderBy("a.created_at DESC", "a.id DESC").
		Limit(limit))
}
