package entities

import (
	"time"

	"github.com/aarondl/null/v8"

	"equipment-dashboard/pkg/types"
)

type MaintenancePriority string

const (
	PriorityHigh   MaintenancePriority = "High"
	PriorityMedium MaintenancePriority = "Medium"
	PriorityLow    MaintenancePriority = "Low"
)

var MaintenancePriorities = []MaintenancePriority{PriorityHigh, PriorityMedium, PriorityLow}

func (p MaintenancePriority) Valid() bool {
	for _, known := range MaintenancePriorities {
		if p == known {
			return true
		}
	}
	return false
}

type MaintenanceStatus string

// Overdue is a display projection only, it is never written to maintenance_schedules.status.
const (
	MaintenanceScheduled  MaintenanceStatus = "Scheduled"
	MaintenanceInProgress MaintenanceStatus = "In Progress"
	MaintenanceCompleted  MaintenanceStatus = "Completed"
	MaintenanceCancelled  MaintenanceStatus = "Cancelled"
	MaintenanceOverdue    MaintenanceStatus = "Overdue"
)

// StoredMaintenanceStatuses lists the values accepted by the status column.
var StoredMaintenanceStatuses = []MaintenanceStatus{
	MaintenanceScheduled, MaintenanceInProgress, MaintenanceCompleted, MaintenanceCancelled,
}

func (s MaintenanceStatus) Stored() bool {
	for _, known := range StoredMaintenanceStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Open reports whether work is still expected for a record with this stored status.
func (s MaintenanceStatus) Open() bool {
	return s == MaintenanceScheduled || s == MaintenanceInProgress
}

type MaintenanceSchedule struct {
	ID              uint64              `json:"id" db:"id"`
	EquipmentID     uint64              `json:"equipment_id" db:"equipment_id"`
	ScheduledDate   time.Time           `json:"scheduled_date" db:"scheduled_date"`
	Description     string              `json:"description" db:"description"`
	Priority        MaintenancePriority `json:"priority" db:"priority"`
	Status          MaintenanceStatus   `json:"status" db:"status"`
	AssignedTo      null.Uint64         `json:"assigned_to" db:"assigned_to"`
	CompletionDate  null.Time           `json:"completion_date" db:"completion_date"`
	CompletionNotes null.String         `json:"completion_notes" db:"completion_notes"`
	Cost            null.Float64        `json:"cost" db:"cost"`
	CreatedBy       null.Uint64         `json:"created_by" db:"created_by"`

	// Joined, not columns of maintenance_schedules.
	EquipmentName  string      `json:"equipment_name" db:"-"`
	EquipmentType  string      `json:"equipment_type" db:"-"`
	AssignedToName null.String `json:"assigned_to_name" db:"-"`

	types.BaseEntity
}

// DeriveDisplayStatus projects the stored status onto what the dashboard shows:
// open work scheduled before today's date is Overdue.
func DeriveDisplayStatus(record MaintenanceSchedule, now time.Time) MaintenanceStatus {
	if !record.Status.Open() {
		return record.Status
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	scheduled := time.Date(record.ScheduledDate.Year(), record.ScheduledDate.Month(), record.ScheduledDate.Day(), 0, 0, 0, 0, time.UTC)
	if scheduled.Before(today) {
		return MaintenanceOverdue
	}
	return record.Status
}
