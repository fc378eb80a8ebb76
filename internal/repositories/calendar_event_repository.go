package repositories

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"equipment-dashboard/internal/entities"
	apperrors "equipment-dashboard/pkg/errors"
)

const calendarEventTable = "calendar_events"

type CalendarEventRepositoryInterface interface {
	CreateEvent(ctx context.Context, tx pgx.Tx, event entities.CalendarEvent) (uint64, error)
	DeleteEvent(ctx context.Context, tx pgx.Tx, id uint64) error
	ListBetween(ctx context.Context, from, to time.Time) ([]entities.CalendarEvent, error)
}

type CalendarEventRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewCalendarEventRepository(storage *pgxpool.Pool, logger *zap.Logger) CalendarEventRepositoryInterface {
	return &CalendarEventRepository{storage: storage, logger: logger}
}

func (r *CalendarEventRepository) CreateEvent(ctx context.Context, tx pgx.Tx, ev entities.CalendarEvent) (uint64, error) {
	query, args, err := psql.Insert(calendarEventTable).
		Columns("title", "event_date", "priority", "status", "description", "created_by").
		Values(ev.Title, ev.EventDate, string(ev.Priority), ev.Status, ev.Description, ev.CreatedBy).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, err
	}
	var id uint64
	if err := pick(r.storage, tx).QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, writeError("insert calendar event", calendarEventTable, err)
	}
	return id, nil
}

func (r *CalendarEventRepository) DeleteEvent(ctx context.Context, tx pgx.Tx, id uint64) error {
	tag, err := pick(r.storage, tx).Exec(ctx, "DELETE FROM "+calendarEventTable+" WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete calendar event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *CalendarEventRepository) ListBetween(ctx context.Context, from, to time.Time) ([]entities.CalendarEvent, error) {
	query, args, err := psql.Select("id", "title", "event_date", "priority", "status", "description", "created_by", "created_at").
		From(calendarEventTable).
		Where(sq.GtOrEq{"event_date": from}).
		Where(sq.LtOrEq{"event_date": to}).
		OrderBy("event_date ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list calendar events: %w", err)
	}
	defer rows.Close()

	events := make([]entities.CalendarEvent, 0)
	for rows.Next() {
		var ev entities.CalendarEvent
		var priority string
		if err := rows.Scan(&ev.ID, &ev.Title, &ev.EventDate, &priority, &ev.Status, &ev.Description,
			&ev.CreatedBy, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan calendar event: %w", err)
		}
		ev.Priority = entities.MaintenancePriority(priority)
		events = append(events, ev)
	}
	return events, rows.Err()
}
