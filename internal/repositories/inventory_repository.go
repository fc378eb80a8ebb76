package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"equipment-dashboard/internal/entities"
	db "equipment-dashboard/internal/infrastructure/bd"
	apperrors "equipment-dashboard/pkg/errors"
	"equipment-dashboard/pkg/types"
)

const (
	inventoryTable            = "inventory_items"
	inventoryTransactionTable = "inventory_transactions"
)

var inventoryMap = map[string]string{
	"id":           "i.id",
	"name":         "i.name",
	"category":     "i.category",
	"quantity":     "i.quantity",
	"min_quantity": "i.min_quantity",
	"unit_price":   "i.unit_price",
	"supplier":     "i.supplier",
	"location":     "i.location",
	"created_at":   "i.created_at",
	"updated_at":   "i.updated_at",
}

var inventoryColumns = []string{
	"i.id", "i.name", "i.category", "i.quantity", "i.min_quantity", "i.unit_price::float8",
	"i.supplier", "i.location", "i.description", "i.updated_by", "i.created_at", "i.updated_at",
}

type InventoryRepositoryInterface interface {
	GetItems(ctx context.Context, filter types.Filter) ([]entities.InventoryItem, uint64, error)
	FindItem(ctx context.Context, tx pgx.Tx, id uint64) (*entities.InventoryItem, error)
	FindItemForUpdate(ctx context.Context, tx pgx.Tx, id uint64) (*entities.InventoryItem, error)
	CreateItem(ctx context.Context, tx pgx.Tx, item entities.InventoryItem) (uint64, error)
	UpdateItem(ctx context.Context, tx pgx.Tx, item entities.InventoryItem) error
	DeleteItem(ctx context.Context, tx pgx.Tx, id uint64) error
	SetQuantity(ctx context.Context, tx pgx.Tx, id uint64, quantity int, userID uint64) error
	CreateTransaction(ctx context.Context, tx pgx.Tx, t entities.InventoryTransaction) (uint64, error)
	GetTransactions(ctx context.Context, itemID uint64, filter types.Filter) ([]entities.InventoryTransaction, uint64, error)
}

type InventoryRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewInventoryRepository(storage *pgxpool.Pool, logger *zap.Logger) InventoryRepositoryInterface {
	return &InventoryRepository{storage: storage, logger: logger}
}

func scanInventoryItem(row pgx.Row) (*entities.InventoryItem, error) {
	var i entities.InventoryItem
	err := row.Scan(
		&i.ID, &i.Name, &i.Category, &i.Quantity, &i.MinQuantity, &i.UnitPrice,
		&i.Supplier, &i.Location, &i.Description, &i.UpdatedBy, &i.CreatedAt, &i.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan inventory item: %w", err)
	}
	return &i, nil
}

// StockStatusPredicate maps derived stock statuses onto quantity comparisons for the
// table aliased as alias.
func StockStatusPredicate(alias string, values []string) sq.Sqlizer {
	qty, minQty := alias+".quantity", alias+".min_quantity"
	var preds sq.Or
	for _, v := range values {
		switch strings.TrimSpace(v) {
		case entities.StockEmpty:
			preds = append(preds, sq.Expr(qty+" <= 0"))
		case entities.StockLow:
			preds = append(preds, sq.Expr(qty+" > 0 AND "+qty+" <= "+minQty))
		case entities.StockIn:
			preds = append(preds, sq.Expr(qty+" > 0 AND "+qty+" > "+minQty))
		}
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

func inventoryFilters(b sq.SelectBuilder, filter types.Filter) sq.SelectBuilder {
	if filter.Search != "" {
		pat := "%" + filter.Search + "%"
		b = b.Where(sq.Or{
			sq.ILike{"i.name": pat},
			sq.ILike{"i.category": pat},
			sq.ILike{"i.supplier": pat},
			sq.ILike{"i.location": pat},
		})
	}
	if raw, ok := filter.Filter["stock_status"].(string); ok {
		if pred := StockStatusPredicate("i", strings.Split(raw, ",")); pred != nil {
			b = b.Where(pred)
		}
	}
	return b
}

func buildInventoryListQueries(filter types.Filter) (sq.SelectBuilder, sq.SelectBuilder) {
	countBuilder := psql.Select("COUNT(i.id)").From(inventoryTable + " AS i")
	countBuilder = inventoryFilters(countBuilder, filter)
	countBuilder = db.ApplyListParams(countBuilder, db.ForCount(filter), inventoryMap)

	selectBuilder := psql.Select(inventoryColumns...).From(inventoryTable + " AS i")
	selectBuilder = inventoryFilters(selectBuilder, filter)
	if !db.HasSort(filter, inventoryMap) {
		selectBuilder = selectBuilder.OrderBy("i.name ASC", "i.id ASC")
	}
	selectBuilder = db.ApplyListParams(selectBuilder, filter, inventoryMap)
	return countBuilder, selectBuilder
}

func (r *InventoryRepository) GetItems(ctx context.Context, filter types.Filter) ([]entities.InventoryItem, uint64, error) {
	countBuilder, selectBuilder := buildInventoryListQueries(filter)

	var total uint64
	sqlCount, argsCount, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count inventory: %w", err)
	}
	if total == 0 {
		return []entities.InventoryItem{}, 0, nil
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()

	items := make([]entities.InventoryItem, 0, filter.Limit)
	for rows.Next() {
		item, err := scanInventoryItem(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *item)
	}
	return items, total, rows.Err()
}

func (r *InventoryRepository) findOne(ctx context.Context, q Querier, id uint64, suffix string) (*entities.InventoryItem, error) {
	b := psql.Select(inventoryColumns...).From(inventoryTable + " AS i").Where(sq.Eq{"i.id": id})
	if suffix != "" {
		b = b.Suffix(suffix)
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	return scanInventoryItem(q.QueryRow(ctx, query, args...))
}

func (r *InventoryRepository) FindItem(ctx context.Context, tx pgx.Tx, id uint64) (*entities.InventoryItem, error) {
	return r.findOne(ctx, pick(r.storage, tx), id, "")
}

// FindItemForUpdate locks the row until tx ends.
func (r *InventoryRepository) FindItemForUpdate(ctx context.Context, tx pgx.Tx, id uint64) (*entities.InventoryItem, error) {
	return r.findOne(ctx, pick(r.storage, tx), id, "FOR UPDATE")
}

func (r *InventoryRepository) CreateItem(ctx context.Context, tx pgx.Tx, item entities.InventoryItem) (uint64, error) {
	query, args, err := psql.Insert(inventoryTable).
		Columns("name", "category", "quantity", "min_quantity", "unit_price", "supplier",
			"location", "description", "updated_by").
		Values(item.Name, item.Category, item.Quantity, item.MinQuantity, item.UnitPrice, item.Supplier,
			item.Location, item.Description, item.UpdatedBy).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, err
	}
	var id uint64
	if err := pick(r.storage, tx).QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, writeError("insert inventory item", inventoryTable, err)
	}
	return id, nil
}

// UpdateItem writes everything except quantity.
func (r *InventoryRepository) UpdateItem(ctx context.Context, tx pgx.Tx, item entities.InventoryItem) error {
	query, args, err := psql.Update(inventoryTable).
		SetMap(map[string]interface{}{
			"name":         item.Name,
			"category":     item.Category,
			"min_quantity": item.MinQuantity,
			"unit_price":   item.UnitPrice,
			"supplier":     item.Supplier,
			"location":     item.Location,
			"description":  item.Description,
			"updated_by":   item.UpdatedBy,
			"updated_at":   sq.Expr("CURRENT_TIMESTAMP"),
		}).
		Where(sq.Eq{"id": item.ID}).
		ToSql()
	if err != nil {
		return err
	}
	tag, err := pick(r.storage, tx).Exec(ctx, query, args...)
	if err != nil {
		return writeError("update inventory item", inventoryTable, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *InventoryRepository) DeleteItem(ctx context.Context, tx pgx.Tx, id uint64) error {
	tag, err := pick(r.storage, tx).Exec(ctx, "DELETE FROM "+inventoryTable+" WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete inventory item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *InventoryRepository) SetQuantity(ctx context.Context, tx pgx.Tx, id uint64, quantity int, userID uint64) error {
	tag, err := pick(r.storage, tx).Exec(ctx,
		"UPDATE "+inventoryTable+" SET quantity = $1, updated_by = $2, updated_at = CURRENT_TIMESTAMP WHERE id = $3",
		quantity, userID, id)
	if err != nil {
		return fmt.Errorf("set inventory quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *InventoryRepository) CreateTransaction(ctx context.Context, tx pgx.Tx, t entities.InventoryTransaction) (uint64, error) {
	query, args, err := psql.Insert(inventoryTransactionTable).
		Columns("item_id", "previous_quantity", "adjustment", "new_quantity", "reason", "user_id").
		Values(t.ItemID, t.PreviousQuantity, t.Adjustment, t.NewQuantity, t.Reason, t.UserID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, err
	}
	var id uint64
	if err := pick(r.storage, tx).QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert inventory transaction: %w", err)
	}
	return id, nil
}

// GetTransactions lists an item's ledger, newest first.
func (r *InventoryRepository) GetTransactions(ctx context.Context, itemID uint64, filter types.Filter) ([]entities.InventoryTransaction, uint64, error) {
	var total uint64
	if err := r.storage.QueryRow(ctx,
		"SELECT COUNT(id) FROM "+inventoryTransactionTable+" WHERE item_id = $1", itemID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count inventory transactions: %w", err)
	}
	if total == 0 {
		return []entities.InventoryTransaction{}, 0, nil
	}

	b := psql.Select("t.id", "t.item_id", "t.previous_quantity", "t.adjustment", "t.new_quantity",
		"t.reason", "t.user_id", "u.name", "t.created_at").
		From(inventoryTransactionTable + " AS t").
		LeftJoin("users u ON u.id = t.user_id").
		Where(sq.Eq{"t.item_id": itemID}).
		OrderBy("t.created_at DESC", "t.id DESC")
	if filter.WithPagination && filter.Limit > 0 {
		b = b.Limit(uint64(filter.Limit)).Offset(uint64(filter.Offset))
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list inventory transactions: %w", err)
	}
	defer rows.Close()

	list := make([]entities.InventoryTransaction, 0)
	for rows.Next() {
		var t entities.InventoryTransaction
		if err := rows.Scan(&t.ID, &t.ItemID, &t.PreviousQuantity, &t.Adjustment, &t.NewQuantity,
			&t.Reason, &t.UserID, &t.UserName, &t.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan inventory transaction: %w", err)
		}
		list = append(list, t)
	}
	return list, total, rows.Err()
}
