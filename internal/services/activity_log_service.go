package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"equipment-dashboard/internal/authz"
	"equipment-dashboard/internal/entities"
	"equipment-dashboard/internal/repositories"
	"equipment-dashboard/pkg/types"
)

type ActivityLogServiceInterface interface {
	GetEntries(ctx context.Context, filter types.Filter) ([]entities.ActivityLogEntry, uint64, error)
}

type ActivityLogService struct {
	repo   repositories.ActivityLogRepositoryInterface
	logger *zap.Logger
}

func NewActivityLogService(repo repositories.ActivityLogRepositoryInterface, logger *zap.Logger) ActivityLogServiceInterface {
	return &ActivityLogService{repo: repo, logger: logger}
}

func (s *ActivityLogService) GetEntries(ctx context.Context, filter types.Filter) ([]entities.ActivityLogEntry, uint64, error) {
	return s.repo.GetEntries(ctx, filter)
}

// recordActivity appends one audit row inside tx. equipmentID 0 means the entry is not
// tied to a piece of equipment.
func recordActivity(
	ctx context.Context,
	repo repositories.ActivityLogRepositoryInterface,
	tx pgx.Tx,
	session authz.Session,
	equipmentID uint64,
	action string,
	details interface{},
) error {
	entry := entities.ActivityLogEntry{
		UserID: null.Uint64From(session.UserID),
		Action: action,
	}
	if equipmentID != 0 {
		entry.EquipmentID = null.Uint64From(equipmentID)
	}
	if details != nil {
		raw, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("encode activity details: %w", err)
		}
		entry.Details = raw
	}
	return repo.CreateEntry(ctx, tx, entry)
}
