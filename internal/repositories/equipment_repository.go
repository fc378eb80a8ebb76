package repositories

import (
	"context"
	"errors"
	"fmt"
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

const equipmentTable = "equipment"

// Filter and sort allow-list: API field -> column.
var equipmentMap = map[string]string{
	"id":                    "e.id",
	"name":                  "e.name",
	"type":                  "e.type",
	"status":                "e.status",
	"location":              "e.location",
	"serial_number":         "e.serial_number",
	"manufacturer":          "e.manufacturer",
	"purchase_date":         "e.purchase_date",
	"warranty_expiry":       "e.warranty_expiry",
	"cost":                  "e.cost",
	"last_maintenance_date": "e.last_maintenance_date",
	"created_at":            "e.created_at",
	"updated_at":            "e.updated_at",
}

var equipmentColumns = []string{
	"e.id", "e.name", "e.type", "e.status", "e.location", "e.serial_number", "e.manufacturer",
	"e.purchase_date", "e.warranty_expiry", "e.cost::float8", "e.last_maintenance_date",
	"e.expected_lifetime_days", "e.updated_by", "e.created_at", "e.updated_at",
}

type EquipmentRepositoryInterface interface {
	GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error)
	FindEquipment(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Equipment, error)
	FindBySerialNumber(ctx context.Context, tx pgx.Tx, serial string) (*entities.Equipment, error)
	CreateEquipment(ctx context.Context, tx pgx.Tx, equipment entities.Equipment) (uint64, error)
	UpdateEquipment(ctx context.Context, tx pgx.Tx, equipment entities.Equipment) error
	DeleteEquipment(ctx context.Context, tx pgx.Tx, id uint64) error
	UpdateStatus(ctx context.Context, tx pgx.Tx, id uint64, status entities.EquipmentStatus, userID uint64) error
	MarkMaintained(ctx context.Context, tx pgx.Tx, id uint64, date time.Time, userID uint64) error
	CreateUsage(ctx context.Context, tx pgx.Tx, usage entities.EquipmentUsage) (uint64, error)
}

type EquipmentRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewEquipmentRepository(storage *pgxpool.Pool, logger *zap.Logger) EquipmentRepositoryInterface {
	return &EquipmentRepository{storage: storage, logger: logger}
}

func scanEquipment(row pgx.Row) (*entities.Equipment, error) {
	var e entities.Equipment
	var status string
	err := row.Scan(
		&e.ID, &e.Name, &e.Type, &status, &e.Location, &e.SerialNumber, &e.Manufacturer,
		&e.PurchaseDate, &e.WarrantyExpiry, &e.Cost, &e.LastMaintenanceDate,
		&e.ExpectedLifetimeDays, &e.UpdatedBy, &e.CreatedAt, &e.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan equipment: %w", err)
	}
	e.Status = entities.EquipmentStatus(status)
	return &e, nil
}

func equipmentSearch(b sq.SelectBuilder, search string) sq.SelectBuilder {
	if search == "" {
		return b
	}
	pat := "%" + search + "%"
	return b.Where(sq.Or{
		sq.ILike{"e.name": pat},
		sq.ILike{"e.type": pat},
		sq.ILike{"e.location": pat},
		sq.ILike{"e.serial_number": pat},
		sq.ILike{"e.manufacturer": pat},
	})
}

// buildEquipmentListQueries returns the COUNT and page queries sharing one predicate.
func buildEquipmentListQueries(filter types.Filter) (sq.SelectBuilder, sq.SelectBuilder) {
	countBuilder := psql.Select("COUNT(e.id)").From(equipmentTable + " AS e")
	countBuilder = equipmentSearch(countBuilder, filter.Search)
	countBuilder = db.ApplyListParams(countBuilder, db.ForCount(filter), equipmentMap)

	selectBuilder := psql.Select(equipmentColumns...).From(equipmentTable + " AS e")
	selectBuilder = equipmentSearch(selectBuilder, filter.Search)
	if !db.HasSort(filter, equipmentMap) {
		selectBuilder = selectBuilder.OrderBy("e.id DESC")
	}
	selectBuilder = db.ApplyListParams(selectBuilder, filter, equipmentMap)
	return countBuilder, selectBuilder
}

func (r *EquipmentRepository) GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error) {
	countBuilder, selectBuilder := buildEquipmentListQueries(filter)

	var total uint64
	sqlCount, argsCount, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count equipment: %w", err)
	}
	if total == 0 {
		return []entities.Equipment{}, 0, nil
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list equipment: %w", err)
	}
	defer rows.Close()

	list := make([]entities.Equipment, 0, filter.Limit)
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, *e)
	}
	return list, total, rows.Err()
}

func (r *EquipmentRepository) findOne(ctx context.Context, q Querier, where sq.Sqlizer) (*entities.Equipment, error) {
	query, args, err := psql.Select(equipmentColumns...).From(equipmentTable + " AS e").Where(where).ToSql()
	if err != nil {
		return nil, err
	}
	return scanEquipment(q.QueryRow(ctx, query, args...))
}

func (r *EquipmentRepository) FindEquipment(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Equipment, error) {
	return r.findOne(ctx, pick(r.storage, tx), sq.Eq{"e.id": id})
}

func (r *EquipmentRepository) FindBySerialNumber(ctx context.Context, tx pgx.Tx, serial string) (*entities.Equipment, error) {
	return r.findOne(ctx, pick(r.storage, tx), sq.Eq{"e.serial_number": serial})
}

func (r *EquipmentRepository) CreateEquipment(ctx context.Context, tx pgx.Tx, e entities.Equipment) (uint64, error) {
	lifetime := e.ExpectedLifetimeDays
	if lifetime <= 0 {
		lifetime = entities.DefaultExpectedLifetimeDays
	}
	query, args, err := psql.Insert(equipmentTable).
		Columns("name", "type", "status", "location", "serial_number", "manufacturer",
			"purchase_date", "warranty_expiry", "cost", "expected_lifetime_days", "updated_by").
		Values(e.Name, e.Type, string(e.Status), e.Location, e.SerialNumber, e.Manufacturer,
			e.PurchaseDate, e.WarrantyExpiry, e.Cost, lifetime, e.UpdatedBy).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, err
	}

	var id uint64
	if err := pick(r.storage, tx).QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if _, ok := uniqueConstraint(err); ok {
			return 0, apperrors.NewConflictError("serial_number", "equipment with serial number %q already exists", e.SerialNumber)
		}
		return 0, writeError("insert equipment", equipmentTable, err)
	}
	return id, nil
}

func (r *EquipmentRepository) UpdateEquipment(ctx context.Context, tx pgx.Tx, e entities.Equipment) error {
	query, args, err := psql.Update(equipmentTable).
		SetMap(map[string]interface{}{
			"name":                   e.Name,
			"type":                   e.Type,
			"status":                 string(e.Status),
			"location":               e.Location,
			"serial_number":          e.SerialNumber,
			"manufacturer":           e.Manufacturer,
			"purchase_date":          e.PurchaseDate,
			"warranty_expiry":        e.WarrantyExpiry,
			"cost":                   e.Cost,
			"expected_lifetime_days": e.ExpectedLifetimeDays,
			"updated_by":             e.UpdatedBy,
			"updated_at":             sq.Expr("CURRENT_TIMESTAMP"),
		}).
		Where(sq.Eq{"id": e.ID}).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := pick(r.storage, tx).Exec(ctx, query, args...)
	if err != nil {
		if _, ok := uniqueConstraint(err); ok {
			return apperrors.NewConflictError("serial_number", "equipment with serial number %q already exists", e.SerialNumber)
		}
		return writeError("update equipment", equipmentTable, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) DeleteEquipment(ctx context.Context, tx pgx.Tx, id uint64) error {
	tag, err := pick(r.storage, tx).Exec(ctx, "DELETE FROM "+equipmentTable+" WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete equipment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) UpdateStatus(ctx context.Context, tx pgx.Tx, id uint64, status entities.EquipmentStatus, userID uint64) error {
	tag, err := pick(r.storage, tx).Exec(ctx,
		"UPDATE "+equipmentTable+" SET status = $1, updated_by = $2, updated_at = CURRENT_TIMESTAMP WHERE id = $3",
		string(status), userID, id)
	if err != nil {
		return fmt.Errorf("update equipment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MarkMaintained makes the equipment Available and records the maintenance date.
func (r *EquipmentRepository) MarkMaintained(ctx context.Context, tx pgx.Tx, id uint64, date time.Time, userID uint64) error {
	tag, err := pick(r.storage, tx).Exec(ctx,
		"UPDATE "+equipmentTable+" SET status = $1, last_maintenance_date = $2, updated_by = $3, updated_at = CURRENT_TIMESTAMP WHERE id = $4",
		string(entities.EquipmentAvailable), date, userID, id)
	if err != nil {
		return fmt.Errorf("mark equipment maintained: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) CreateUsage(ctx context.Context, tx pgx.Tx, u entities.EquipmentUsage) (uint64, error) {
	query, args, err := psql.Insert("equipment_usage").
		Columns("equipment_id", "user_id", "started_at", "ended_at", "duration_minutes").
		Values(u.EquipmentID, u.UserID, u.StartedAt, u.EndedAt, u.DurationMinutes).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, err
	}
	var id uint64
	if err := pick(r.storage, tx).QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert equipment usage: %w", err)
	}
	return id, nil
}
