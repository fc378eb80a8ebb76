package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"equipment-dashboard/internal/authz"
	"equipment-dashboard/internal/dto"
	"equipment-dashboard/internal/entities"
	"equipment-dashboard/internal/repositories"
	apperrors "equipment-dashboard/pkg/errors"
	"equipment-dashboard/pkg/types"
)

type InventoryServiceInterface interface {
	GetItems(ctx context.Context, filter types.Filter) ([]dto.InventoryItemDTO, uint64, error)
	FindItem(ctx context.Context, id uint64) (*dto.InventoryItemDTO, error)
	CreateItem(ctx context.Context, session authz.Session, payload dto.CreateInventoryItemDTO) (*dto.InventoryItemDTO, error)
	UpdateItem(ctx context.Context, session authz.Session, id uint64, payload dto.UpdateInventoryItemDTO) (*dto.InventoryItemDTO, error)
	DeleteItem(ctx context.Context, session authz.Session, id uint64) error
	AdjustQuantity(ctx context.Context, session authz.Session, id uint64, payload dto.AdjustInventoryDTO) (*dto.InventoryItemDTO, *entities.InventoryTransaction, error)
	GetTransactions(ctx context.Context, id uint64, filter types.Filter) ([]entities.InventoryTransaction, uint64, error)
}

type InventoryService struct {
	txManager    repositories.TxManagerInterface
	inventory    repositories.InventoryRepositoryInterface
	activityRepo repositories.ActivityLogRepositoryInterface
	logger       *zap.Logger
}

func NewInventoryService(
	txManager repositories.TxManagerInterface,
	inventory repositories.InventoryRepositoryInterface,
	activityRepo repositories.ActivityLogRepositoryInterface,
	logger *zap.Logger,
) *InventoryService {
	return &InventoryService{txManager: txManager, inventory: inventory, activityRepo: activityRepo, logger: logger}
}

func toInventoryDTO(i entities.InventoryItem) dto.InventoryItemDTO {
	return dto.InventoryItemDTO{
		ID:          i.ID,
		Name:        i.Name,
		Category:    i.Category,
		Quantity:    i.Quantity,
		MinQuantity: i.MinQuantity,
		UnitPrice:   i.UnitPrice,
		TotalValue:  float64(i.Quantity) * i.UnitPrice,
		StockStatus: i.StockStatus(),
		Supplier:    i.Supplier,
		Location:    i.Location,
		Description: i.Description,
	}
}

func (s *InventoryService) GetItems(ctx context.Context, filter types.Filter) ([]dto.InventoryItemDTO, uint64, error) {
	items, total, err := s.inventory.GetItems(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.InventoryItemDTO, 0, len(items))
	for _, i := range items {
		out = append(out, toInventoryDTO(i))
	}
	return out, total, nil
}

func (s *InventoryService) FindItem(ctx context.Context, id uint64) (*dto.InventoryItemDTO, error) {
	item, err := s.inventory.FindItem(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	res := toInventoryDTO(*item)
	return &res, nil
}

func (s *InventoryService) CreateItem(ctx context.Context, session authz.Session, payload dto.CreateInventoryItemDTO) (*dto.InventoryItemDTO, error) {
	item := entities.InventoryItem{
		Name:        strings.TrimSpace(payload.Name),
		Category:    strings.TrimSpace(payload.Category),
		Quantity:    payload.Quantity,
		MinQuantity: payload.MinQuantity,
		UnitPrice:   payload.UnitPrice,
		Supplier:    payload.Supplier,
		Location:    payload.Location,
		Description: payload.Description,
		UpdatedBy:   null.Uint64From(session.UserID),
	}
	if item.Quantity < 0 || item.MinQuantity < 0 {
		return nil, apperrors.NewInvalidInputError("quantities cannot be negative")
	}

	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		id, err := s.inventory.CreateItem(ctx, tx, item)
		if err != nil {
			return err
		}
		item.ID = id
		if item.Quantity > 0 {
			if _, err := s.inventory.CreateTransaction(ctx, tx, entities.InventoryTransaction{
				ItemID:      id,
				Adjustment:  item.Quantity,
				NewQuantity: item.Quantity,
				Reason:      "Initial stock",
				UserID:      null.Uint64From(session.UserID),
			}); err != nil {
				return err
			}
		}
		return recordActivity(ctx, s.activityRepo, tx, session, 0,
			fmt.Sprintf("Added inventory item %s", item.Name), item)
	})
	if err != nil {
		return nil, err
	}
	res := toInventoryDTO(item)
	return &res, nil
}

func (s *InventoryService) UpdateItem(ctx context.Context, session authz.Session, id uint64, payload dto.UpdateInventoryItemDTO) (*dto.InventoryItemDTO, error) {
	var next entities.InventoryItem
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		current, err := s.inventory.FindItemForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		before := *current
		next = *current

		if payload.Name != nil {
			next.Name = strings.TrimSpace(*payload.Name)
		}
		if payload.Category != nil {
			next.Category = strings.TrimSpace(*payload.Category)
		}
		if payload.MinQuantity != nil {
			next.MinQuantity = *payload.MinQuantity
		}
		if payload.UnitPrice != nil {
			next.UnitPrice = *payload.UnitPrice
		}
		if payload.Supplier.Valid {
			next.Supplier = payload.Supplier
		}
		if payload.Location.Valid {
			next.Location = payload.Location
		}
		if payload.Description.Valid {
			next.Description = payload.Description
		}
		next.UpdatedBy = null.Uint64From(session.UserID)

		if err := s.inventory.UpdateItem(ctx, tx, next); err != nil {
			return err
		}
		return recordActivity(ctx, s.activityRepo, tx, session, 0,
			fmt.Sprintf("Updated inventory item %s", next.Name),
			entities.Snapshot{Before: before, After: next})
	})
	if err != nil {
		return nil, err
	}
	res := toInventoryDTO(next)
	return &res, nil
}

func (s *InventoryService) DeleteItem(ctx context.Context, session authz.Session, id uint64) error {
	return s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		current, err := s.inventory.FindItem(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := s.inventory.DeleteItem(ctx, tx, id); err != nil {
			return err
		}
		return recordActivity(ctx, s.activityRepo, tx, session, 0,
			fmt.Sprintf("Deleted inventory item %s", current.Name), current)
	})
}

// AdjustQuantity applies a signed delta under a row lock. A result below zero is rejected
// and leaves both the item and the ledger untouched.
func (s *InventoryService) AdjustQuantity(ctx context.Context, session authz.Session, id uint64, payload dto.AdjustInventoryDTO) (*dto.InventoryItemDTO, *entities.InventoryTransaction, error) {
	if payload.Adjustment == 0 {
		return nil, nil, apperrors.NewInvalidInputError("adjustment must not be zero")
	}
	reason := strings.TrimSpace(payload.Reason)
	if reason == "" {
		return nil, nil, apperrors.NewInvalidInputError("reason is required")
	}

	var (
		item   entities.InventoryItem
		ledger entities.InventoryTransaction
	)
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		current, err := s.inventory.FindItemForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		newQuantity := current.Quantity + payload.Adjustment
		if newQuantity < 0 {
			return apperrors.NewInvalidInputError(
				"cannot remove %d units of %s: only %d in stock", -payload.Adjustment, current.Name, current.Quantity)
		}

		if err := s.inventory.SetQuantity(ctx, tx, id, newQuantity, session.UserID); err != nil {
			return err
		}
		ledger = entities.InventoryTransaction{
			ItemID:           id,
			PreviousQuantity: current.Quantity,
			Adjustment:       payload.Adjustment,
			NewQuantity:      newQuantity,
			Reason:           reason,
			UserID:           null.Uint64From(session.UserID),
		}
		if ledger.ID, err = s.inventory.CreateTransaction(ctx, tx, ledger); err != nil {
			return err
		}

		item = *current
		item.Quantity = newQuantity
		return recordActivity(ctx, s.activityRepo, tx, session, 0,
			fmt.Sprintf("Adjusted %s by %+d (%s)", current.Name, payload.Adjustment, reason), ledger)
	})
	if err != nil {
		return nil, nil, err
	}

	res := toInventoryDTO(item)
	return &res, &ledger, nil
}

func (s *InventoryService) GetTransactions(ctx context.Context, id uint64, filter types.Filter) ([]entities.InventoryTransaction, uint64, error) {
	if _, err := s.inventory.FindItem(ctx, nil, id); err != nil {
		return nil, 0, err
	}
	return s.inventory.GetTransactions(ctx, id, filter)
}
