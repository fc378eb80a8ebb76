package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"equipment-dashboard/internal/authz"
	"equipment-dashboard/internal/calendar"
	"equipment-dashboard/internal/dto"
	"equipment-dashboard/internal/entities"
	"equipment-dashboard/internal/repositories"
	apperrors "equipment-dashboard/pkg/errors"
)

// CalendarFilter narrows the events shown on the grid; empty fields match everything.
type CalendarFilter struct {
	Status        string
	Priority      string
	EquipmentType string
	Source        string
}

type CalendarServiceInterface interface {
	GetMonth(ctx context.Context, year int, month time.Month, filter CalendarFilter) ([]calendar.Day, error)
	CreateEvent(ctx context.Context, session authz.Session, payload dto.CreateCalendarEventDTO) (*entities.CalendarEvent, error)
	DeleteEvent(ctx context.Context, session authz.Session, id uint64) error
	Now() time.Time
}

type CalendarService struct {
	txManager    repositories.TxManagerInterface
	maintenance  repositories.MaintenanceRepositoryInterface
	events       repositories.CalendarEventRepositoryInterface
	activityRepo repositories.ActivityLogRepositoryInterface
	logger       *zap.Logger
	now          func() time.Time
}

func NewCalendarService(
	txManager repositories.TxManagerInterface,
	maintenance repositories.MaintenanceRepositoryInterface,
	events repositories.CalendarEventRepositoryInterface,
	activityRepo repositories.ActivityLogRepositoryInterface,
	logger *zap.Logger,
) *CalendarService {
	return &CalendarService{
		txManager:    txManager,
		maintenance:  maintenance,
		events:       events,
		activityRepo: activityRepo,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *CalendarService) Now() time.Time { return s.now() }

func matches(want, got string) bool {
	return want == "" || strings.EqualFold(want, got)
}

func (f CalendarFilter) wants(source string) bool { return matches(f.Source, source) }

// maintenanceEvents normalizes maintenance records into calendar events, using the
// derived status so overdue work shows as Overdue.
func maintenanceEvents(records []entities.MaintenanceSchedule, filter CalendarFilter, now time.Time) []calendar.Event {
	out := make([]calendar.Event, 0, len(records))
	for _, m := range records {
		status := string(entities.DeriveDisplayStatus(m, now))
		if !matches(filter.Status, status) || !matches(filter.Priority, string(m.Priority)) ||
			!matches(filter.EquipmentType, m.EquipmentType) {
			continue
		}
		out = append(out, calendar.Event{
			Date:       m.ScheduledDate.Format(dto.DateLayout),
			Title:      fmt.Sprintf("%s: %s", m.EquipmentName, m.Description),
			Priority:   string(m.Priority),
			Status:     status,
			SourceType: calendar.SourceMaintenance,
			SourceID:   m.ID,
		})
	}
	return out
}

func adHocEvents(events []entities.CalendarEvent, filter CalendarFilter) []calendar.Event {
	// Ad-hoc events are not tied to equipment.
	if filter.EquipmentType != "" {
		return nil
	}
	out := make([]calendar.Event, 0, len(events))
	for _, ev := range events {
		if !matches(filter.Status, ev.Status) || !matches(filter.Priority, string(ev.Priority)) {
			continue
		}
		out = append(out, calendar.Event{
			Date:       ev.EventDate.Format(dto.DateLayout),
			Title:      ev.Title,
			Priority:   string(ev.Priority),
			Status:     ev.Status,
			SourceType: calendar.SourceEvent,
			SourceID:   ev.ID,
		})
	}
	return out
}

func (s *CalendarService) GetMonth(ctx context.Context, year int, month time.Month, filter CalendarFilter) ([]calendar.Day, error) {
	start, end, err := calendar.GridRange(year, month)
	if err != nil {
		return nil, err
	}
	now := s.now()

	var events []calendar.Event
	if filter.wants(calendar.SourceMaintenance) {
		records, err := s.maintenance.ListScheduledBetween(ctx, start, end)
		if err != nil {
			return nil, err
		}
		events = append(events, maintenanceEvents(records, filter, now)...)
	}
	if filter.wants(calendar.SourceEvent) {
		adHoc, err := s.events.ListBetween(ctx, start, end)
		if err != nil {
			return nil, err
		}
		events = append(events, adHocEvents(adHoc, filter)...)
	}

	return calendar.BuildMonth(year, month, events, now)
}

func (s *CalendarService) CreateEvent(ctx context.Context, session authz.Session, payload dto.CreateCalendarEventDTO) (*entities.CalendarEvent, error) {
	date, err := time.Parse(dto.DateLayout, payload.EventDate)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("event_date must be a date in YYYY-MM-DD format")
	}
	event := entities.CalendarEvent{
		Title:       strings.TrimSpace(payload.Title),
		EventDate:   date,
		Priority:    entities.MaintenancePriority(payload.Priority),
		Status:      payload.Status,
		Description: null.StringFromPtr(payload.Description),
		CreatedBy:   null.Uint64From(session.UserID),
		CreatedAt:   s.now(),
	}
	if event.Priority == "" {
		event.Priority = entities.PriorityMedium
	}
	if event.Status == "" {
		event.Status = string(entities.MaintenanceScheduled)
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		id, err := s.events.CreateEvent(ctx, tx, event)
		if err != nil {
			return err
		}
		event.ID = id
		return recordActivity(ctx, s.activityRepo, tx, session, 0,
			fmt.Sprintf("Added calendar event %s on %s", event.Title, payload.EventDate), event)
	})
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *CalendarService) DeleteEvent(ctx context.Context, session authz.Session, id uint64) error {
	return s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.events.DeleteEvent(ctx, tx, id); err != nil {
			return err
		}
		return recordActivity(ctx, s.activityRepo, tx, session, 0,
			fmt.Sprintf("Deleted calendar event %d", id), nil)
	})
}
