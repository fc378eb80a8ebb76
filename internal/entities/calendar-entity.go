package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// CalendarEvent is an ad-hoc entry shown on the calendar next to maintenance work.
type CalendarEvent struct {
	ID          uint64              `json:"id" db:"id"`
	Title       string              `json:"title" db:"title"`
	EventDate   time.Time           `json:"event_date" db:"event_date"`
	Priority    MaintenancePriority `json:"priority" db:"priority"`
	Status      string              `json:"status" db:"status"`
	Description null.String         `json:"description" db:"description"`
	CreatedBy   null.Uint64         `json:"created_by" db:"created_by"`
	CreatedAt   time.Time           `json:"created_at" db:"created_at"`
}
