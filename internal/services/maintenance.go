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

type MaintenanceServiceInterface interface {
	GetMaintenance(ctx context.Context, filter types.Filter) ([]dto.MaintenanceDTO, uint64, error)
	FindMaintenance(ctx context.Context, id uint64) (*dto.MaintenanceDTO, error)
	CreateMaintenance(ctx context.Context, session authz.Session, payload dto.CreateMaintenanceDTO) (*dto.MaintenanceDTO, error)
	UpdateMaintenance(ctx context.Context, session authz.Session, id uint64, payload dto.UpdateMaintenanceDTO) (*dto.MaintenanceDTO, error)
	DeleteMaintenance(ctx context.Context, session authz.Session, id uint64) error
	CompleteMaintenance(ctx context.Context, session authz.Session, id uint64, payload dto.CompleteMaintenanceDTO) (*dto.MaintenanceDTO, error)
}

type MaintenanceService struct {
	txManager    repositories.TxManagerInterface
	maintenance  repositories.MaintenanceRepositoryInterface
	equipment    repositories.EquipmentRepositoryInterface
	activityRepo repositories.ActivityLogRepositoryInterface
	logger       *zap.Logger
	now          func() time.Time
}

func NewMaintenanceService(
	txManager repositories.TxManagerInterface,
	maintenance repositories.MaintenanceRepositoryInterface,
	equipment repositories.EquipmentRepositoryInterface,
	activityRepo repositories.ActivityLogRepositoryInterface,
	logger *zap.Logger,
) *MaintenanceService {
	return &MaintenanceService{
		txManager:    txManager,
		maintenance:  maintenance,
		equipment:    equipment,
		activityRepo: activityRepo,
		logger:       logger,
		now:          time.Now,
	}
}

func toMaintenanceDTO(m entities.MaintenanceSchedule, now time.Time) dto.MaintenanceDTO {
	return dto.MaintenanceDTO{
		ID:              m.ID,
		EquipmentID:     m.EquipmentID,
		EquipmentName:   m.EquipmentName,
		EquipmentType:   m.EquipmentType,
		ScheduledDate:   m.ScheduledDate.Format(dto.DateLayout),
		Description:     m.Description,
		Priority:        string(m.Priority),
		Status:          string(m.Status),
		DisplayStatus:   string(entities.DeriveDisplayStatus(m, now)),
		AssignedTo:      m.AssignedTo,
		AssignedToName:  m.AssignedToName,
		CompletionDate:  dto.FormatDate(m.CompletionDate),
		CompletionNotes: m.CompletionNotes,
		Cost:            m.Cost,
	}
}

func (s *MaintenanceService) GetMaintenance(ctx context.Context, filter types.Filter) ([]dto.MaintenanceDTO, uint64, error) {
	records, total, err := s.maintenance.GetMaintenance(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	now := s.now()
	out := make([]dto.MaintenanceDTO, 0, len(records))
	for _, m := range records {
		out = append(out, toMaintenanceDTO(m, now))
	}
	return out, total, nil
}

func (s *MaintenanceService) FindMaintenance(ctx context.Context, id uint64) (*dto.MaintenanceDTO, error) {
	m, err := s.maintenance.FindMaintenance(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	res := toMaintenanceDTO(*m, s.now())
	return &res, nil
}

// reload re-reads a record inside tx so the response carries the joined names.
func (s *MaintenanceService) reload(ctx context.Context, tx pgx.Tx, id uint64) (*entities.MaintenanceSchedule, error) {
	return s.maintenance.FindMaintenance(ctx, tx, id)
}

func (s *MaintenanceService) CreateMaintenance(ctx context.Context, session authz.Session, payload dto.CreateMaintenanceDTO) (*dto.MaintenanceDTO, error) {
	scheduled, err := time.Parse(dto.DateLayout, payload.ScheduledDate)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("scheduled_date must be a date in YYYY-MM-DD format")
	}
	status := entities.MaintenanceScheduled
	if payload.Status != "" {
		status = entities.MaintenanceStatus(payload.Status)
	}
	if !status.Stored() {
		return nil, apperrors.NewInvalidInputError("status %q cannot be stored", payload.Status)
	}

	record := entities.MaintenanceSchedule{
		EquipmentID:   payload.EquipmentID,
		ScheduledDate: scheduled,
		Description:   strings.TrimSpace(payload.Description),
		Priority:      entities.MaintenancePriority(payload.Priority),
		Status:        status,
		AssignedTo:    payload.AssignedTo,
		Cost:          payload.Cost,
		CreatedBy:     null.Uint64From(session.UserID),
	}

	var created *entities.MaintenanceSchedule
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		equipment, err := s.equipment.FindEquipment(ctx, tx, record.EquipmentID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewInvalidInputError("equipment %d does not exist", record.EquipmentID)
			}
			return err
		}
		id, err := s.maintenance.CreateMaintenance(ctx, tx, record)
		if err != nil {
			return err
		}
		if err := recordActivity(ctx, s.activityRepo, tx, session, equipment.ID,
			fmt.Sprintf("Scheduled maintenance for %s on %s", equipment.Name, payload.ScheduledDate),
			map[string]interface{}{"maintenance_id": id, "priority": record.Priority, "description": record.Description},
		); err != nil {
			return err
		}
		created, err = s.reload(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	res := toMaintenanceDTO(*created, s.now())
	return &res, nil
}

func (s *MaintenanceService) UpdateMaintenance(ctx context.Context, session authz.Session, id uint64, payload dto.UpdateMaintenanceDTO) (*dto.MaintenanceDTO, error) {
	var updated *entities.MaintenanceSchedule
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		current, err := s.maintenance.FindMaintenanceForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		before := *current
		next := *current

		if payload.ScheduledDate != nil {
			d, err := time.Parse(dto.DateLayout, *payload.ScheduledDate)
			if err != nil {
				return apperrors.NewInvalidInputError("scheduled_date must be a date in YYYY-MM-DD format")
			}
			next.ScheduledDate = d
		}
		if payload.Description != nil {
			next.Description = strings.TrimSpace(*payload.Description)
		}
		if payload.Priority != nil {
			next.Priority = entities.MaintenancePriority(*payload.Priority)
		}
		if payload.Status != nil {
			st := entities.MaintenanceStatus(*payload.Status)
			if !st.Stored() {
				return apperrors.NewInvalidInputError("status %q cannot be stored", *payload.Status)
			}
			next.Status = st
		}
		if payload.AssignedTo.Valid {
			next.AssignedTo = payload.AssignedTo
		}
		if payload.CompletionNotes.Valid {
			next.CompletionNotes = payload.CompletionNotes
		}
		if payload.Cost.Valid {
			next.Cost = payload.Cost
		}

		if err := s.maintenance.UpdateMaintenance(ctx, tx, next); err != nil {
			return err
		}
		if err := recordActivity(ctx, s.activityRepo, tx, session, next.EquipmentID,
			fmt.Sprintf("Updated maintenance for %s", next.EquipmentName),
			entities.Snapshot{Before: before, After: next},
		); err != nil {
			return err
		}
		updated, err = s.reload(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	res := toMaintenanceDTO(*updated, s.now())
	return &res, nil
}

func (s *MaintenanceService) DeleteMaintenance(ctx context.Context, session authz.Session, id uint64) error {
	return s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		current, err := s.maintenance.FindMaintenance(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := s.maintenance.DeleteMaintenance(ctx, tx, id); err != nil {
			return err
		}
		return recordActivity(ctx, s.activityRepo, tx, session, current.EquipmentID,
			fmt.Sprintf("Deleted maintenance for %s", current.EquipmentName), current)
	})
}

// CompleteMaintenance closes a record. The equipment is set back to Available with the
// completion date as its last maintenance only when the caller asks for it.
func (s *MaintenanceService) CompleteMaintenance(ctx context.Context, session authz.Session, id uint64, payload dto.CompleteMaintenanceDTO) (*dto.MaintenanceDTO, error) {
	completedOn, err := dto.ParseDate("completion_date", payload.CompletionDate)
	if err != nil {
		return nil, err
	}
	if !completedOn.Valid {
		now := s.now()
		completedOn = null.TimeFrom(time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC))
	}

	var result *entities.MaintenanceSchedule
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		current, err := s.maintenance.FindMaintenanceForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		if !current.Status.Open() {
			return apperrors.NewInvalidInputError("maintenance %d is already %s", id, current.Status)
		}

		current.Status = entities.MaintenanceCompleted
		current.CompletionDate = completedOn
		if payload.Notes.Valid {
			current.CompletionNotes = payload.Notes
		}
		if payload.Cost.Valid {
			current.Cost = payload.Cost
		}
		if err := s.maintenance.UpdateMaintenance(ctx, tx, *current); err != nil {
			return err
		}
		if err := recordActivity(ctx, s.activityRepo, tx, session, current.EquipmentID,
			fmt.Sprintf("Completed maintenance for %s", current.EquipmentName),
			map[string]interface{}{
				"maintenance_id":   id,
				"completion_date":  completedOn.Time.Format(dto.DateLayout),
				"update_equipment": payload.UpdateEquipment,
			},
		); err != nil {
			return err
		}

		if payload.UpdateEquipment {
			if err := s.equipment.MarkMaintained(ctx, tx, current.EquipmentID, completedOn.Time, session.UserID); err != nil {
				return err
			}
			if err := recordActivity(ctx, s.activityRepo, tx, session, current.EquipmentID,
				fmt.Sprintf("Marked %s available after maintenance", current.EquipmentName),
				map[string]string{"status": string(entities.EquipmentAvailable)},
			); err != nil {
				return err
			}
		}

		result, err = s.reload(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("maintenance completed",
		zap.Uint64("id", id),
		zap.Bool("updateEquipment", payload.UpdateEquipment),
	)
	res := toMaintenanceDTO(*result, s.now())
	return &res, nil
}
