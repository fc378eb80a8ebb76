package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

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

type EquipmentServiceInterface interface {
	GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error)
	FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error)
	CreateEquipment(ctx context.Context, session authz.Session, payload dto.CreateEquipmentDTO) (*entities.Equipment, error)
	UpdateEquipment(ctx context.Context, session authz.Session, id uint64, payload dto.UpdateEquipmentDTO) (*entities.Equipment, error)
	DeleteEquipment(ctx context.Context, session authz.Session, id uint64) error
	BulkUpdateStatus(ctx context.Context, session authz.Session, payload dto.BulkEquipmentStatusDTO) (int, error)
	RecordUsage(ctx context.Context, session authz.Session, id uint64, payload dto.RecordUsageDTO) (*entities.EquipmentUsage, error)
}

type EquipmentService struct {
	txManager    repositories.TxManagerInterface
	equipment    repositories.EquipmentRepositoryInterface
	activityRepo repositories.ActivityLogRepositoryInterface
	logger       *zap.Logger
	now          func() time.Time
}

func NewEquipmentService(
	txManager repositories.TxManagerInterface,
	equipment repositories.EquipmentRepositoryInterface,
	activityRepo repositories.ActivityLogRepositoryInterface,
	logger *zap.Logger,
) *EquipmentService {
	return &EquipmentService{
		txManager:    txManager,
		equipment:    equipment,
		activityRepo: activityRepo,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *EquipmentService) GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error) {
	return s.equipment.GetEquipments(ctx, filter)
}

func (s *EquipmentService) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	return s.equipment.FindEquipment(ctx, nil, id)
}

// ensureSerialFree fails with ConflictError when another row already uses serial.
func (s *EquipmentService) ensureSerialFree(ctx context.Context, tx pgx.Tx, serial string, selfID uint64) error {
	existing, err := s.equipment.FindBySerialNumber(ctx, tx, serial)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID == selfID {
		return nil
	}
	return apperrors.NewConflictError("serial_number", "equipment with serial number %q already exists", serial)
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, session authz.Session, payload dto.CreateEquipmentDTO) (*entities.Equipment, error) {
	purchase, err := dto.ParseDate("purchase_date", payload.PurchaseDate)
	if err != nil {
		return nil, err
	}
	warranty, err := dto.ParseDate("warranty_expiry", payload.WarrantyExpiry)
	if err != nil {
		return nil, err
	}

	equipment := entities.Equipment{
		Name:                 strings.TrimSpace(payload.Name),
		Type:                 strings.TrimSpace(payload.Type),
		Status:               entities.EquipmentStatus(payload.Status),
		Location:             strings.TrimSpace(payload.Location),
		SerialNumber:         strings.TrimSpace(payload.SerialNumber),
		Manufacturer:         payload.Manufacturer,
		PurchaseDate:         purchase,
		WarrantyExpiry:       warranty,
		Cost:                 payload.Cost,
		ExpectedLifetimeDays: payload.ExpectedLifetimeDays,
		UpdatedBy:            null.Uint64From(session.UserID),
	}
	if equipment.ExpectedLifetimeDays == 0 {
		equipment.ExpectedLifetimeDays = entities.DefaultExpectedLifetimeDays
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.ensureSerialFree(ctx, tx, equipment.SerialNumber, 0); err != nil {
			return err
		}
		id, err := s.equipment.CreateEquipment(ctx, tx, equipment)
		if err != nil {
			return err
		}
		equipment.ID = id
		return recordActivity(ctx, s.activityRepo, tx, session, id,
			fmt.Sprintf("Created equipment %s", equipment.Name), equipment)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("equipment created", zap.Uint64("id", equipment.ID), zap.String("serial", equipment.SerialNumber))
	return &equipment, nil
}

func applyEquipmentUpdate(e *entities.Equipment, payload dto.UpdateEquipmentDTO) error {
	if payload.Name != nil {
		e.Name = strings.TrimSpace(*payload.Name)
	}
	if payload.Type != nil {
		e.Type = strings.TrimSpace(*payload.Type)
	}
	if payload.Status != nil {
		e.Status = entities.EquipmentStatus(*payload.Status)
	}
	if payload.Location != nil {
		e.Location = strings.TrimSpace(*payload.Location)
	}
	if payload.SerialNumber != nil {
		e.SerialNumber = strings.TrimSpace(*payload.SerialNumber)
	}
	if payload.Manufacturer.Valid {
		e.Manufacturer = payload.Manufacturer
	}
	if payload.PurchaseDate != nil {
		d, err := dto.ParseDate("purchase_date", payload.PurchaseDate)
		if err != nil {
			return err
		}
		e.PurchaseDate = d
	}
	if payload.WarrantyExpiry != nil {
		d, err := dto.ParseDate("warranty_expiry", payload.WarrantyExpiry)
		if err != nil {
			return err
		}
		e.WarrantyExpiry = d
	}
	if payload.Cost.Valid {
		e.Cost = payload.Cost
	}
	if payload.ExpectedLifetimeDays != nil {
		e.ExpectedLifetimeDays = *payload.ExpectedLifetimeDays
	}
	return nil
}

func (s *EquipmentService) UpdateEquipment(ctx context.Context, session authz.Session, id uint64, payload dto.UpdateEquipmentDTO) (*entities.Equipment, error) {
	var after entities.Equipment
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		current, err := s.equipment.FindEquipment(ctx, tx, id)
		if err != nil {
			return err
		}
		before := *current
		after = *current
		if err := applyEquipmentUpdate(&after, payload); err != nil {
			return err
		}
		after.UpdatedBy = null.Uint64From(session.UserID)

		if after.SerialNumber != before.SerialNumber {
			if err := s.ensureSerialFree(ctx, tx, after.SerialNumber, id); err != nil {
				return err
			}
		}
		if err := s.equipment.UpdateEquipment(ctx, tx, after); err != nil {
			return err
		}
		return recordActivity(ctx, s.activityRepo, tx, session, id,
			fmt.Sprintf("Updated equipment %s", after.Name),
			entities.Snapshot{Before: before, After: after})
	})
	if err != nil {
		return nil, err
	}
	return &after, nil
}

func (s *EquipmentService) DeleteEquipment(ctx context.Context, session authz.Session, id uint64) error {
	return s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		current, err := s.equipment.FindEquipment(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := s.equipment.DeleteEquipment(ctx, tx, id); err != nil {
			return err
		}
		// The row is gone, so the entry carries the snapshot instead of an equipment reference.
		return recordActivity(ctx, s.activityRepo, tx, session, 0,
			fmt.Sprintf("Deleted equipment %s", current.Name), current)
	})
}

func (s *EquipmentService) BulkUpdateStatus(ctx context.Context, session authz.Session, payload dto.BulkEquipmentStatusDTO) (int, error) {
	status := entities.EquipmentStatus(payload.Status)
	if !status.Valid() {
		return 0, apperrors.NewInvalidInputError("unknown equipment status %q", payload.Status)
	}

	updated := 0
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		for _, id := range payload.IDs {
			current, err := s.equipment.FindEquipment(ctx, tx, id)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return apperrors.NewInvalidInputError("equipment %d does not exist", id)
				}
				return err
			}
			if err := s.equipment.UpdateStatus(ctx, tx, id, status, session.UserID); err != nil {
				return err
			}
			if err := recordActivity(ctx, s.activityRepo, tx, session, id,
				fmt.Sprintf("Changed status of %s to %s", current.Name, status),
				map[string]string{"before": string(current.Status), "after": string(status)},
			); err != nil {
				return err
			}
			updated++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}

func (s *EquipmentService) RecordUsage(ctx context.Context, session authz.Session, id uint64, payload dto.RecordUsageDTO) (*entities.EquipmentUsage, error) {
	started := s.now().UTC()
	if payload.StartedAt != nil && *payload.StartedAt != "" {
		t, err := time.Parse(time.RFC3339, *payload.StartedAt)
		if err != nil {
			return nil, apperrors.NewInvalidInputError("started_at must be an RFC 3339 timestamp")
		}
		started = t.UTC()
	}

	usage := entities.EquipmentUsage{
		EquipmentID:     id,
		UserID:          null.Uint64From(session.UserID),
		StartedAt:       started,
		EndedAt:         null.TimeFrom(started.Add(time.Duration(payload.DurationMinutes) * time.Minute)),
		DurationMinutes: payload.DurationMinutes,
	}

	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		equipment, err := s.equipment.FindEquipment(ctx, tx, id)
		if err != nil {
			return err
		}
		usageID, err := s.equipment.CreateUsage(ctx, tx, usage)
		if err != nil {
			return err
		}
		usage.ID = usageID
		return recordActivity(ctx, s.activityRepo, tx, session, id,
			fmt.Sprintf("Logged %d min of use on %s", usage.DurationMinutes, equipment.Name), usage)
	})
	if err != nil {
		return nil, err
	}
	return &usage, nil
}
