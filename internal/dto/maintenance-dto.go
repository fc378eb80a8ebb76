package dto

import (
	"github.com/aarondl/null/v8"
)

type CreateMaintenanceDTO struct {
	EquipmentID   uint64       `json:"equipment_id" validate:"required,gt=0"`
	ScheduledDate string       `json:"scheduled_date" validate:"required,datetime=2006-01-02"`
	Description   string       `json:"description" validate:"required,notblank,max=2000"`
	Priority      string       `json:"priority" validate:"required,maintenance_priority"`
	Status        string       `json:"status" validate:"omitempty,maintenance_status"`
	AssignedTo    null.Uint64  `json:"assigned_to"`
	Cost          null.Float64 `json:"cost" validate:"omitempty,min=0,max=9999999999.99"`
}

type UpdateMaintenanceDTO struct {
	ScheduledDate   *string      `json:"scheduled_date" validate:"omitempty,datetime=2006-01-02"`
	Description     *string      `json:"description" validate:"omitempty,notblank,max=2000"`
	Priority        *string      `json:"priority" validate:"omitempty,maintenance_priority"`
	Status          *string      `json:"status" validate:"omitempty,maintenance_status"`
	AssignedTo      null.Uint64  `json:"assigned_to"`
	CompletionNotes null.String  `json:"completion_notes" validate:"omitempty,max=2000"`
	Cost            null.Float64 `json:"cost" validate:"omitempty,min=0,max=9999999999.99"`
}

// CompleteMaintenanceDTO closes a record. The linked equipment is touched only
// when UpdateEquipment is true.
type CompleteMaintenanceDTO struct {
	CompletionDate  *string      `json:"completion_date" validate:"omitempty,datetime=2006-01-02"`
	Notes           null.String  `json:"notes" validate:"omitempty,max=2000"`
	Cost            null.Float64 `json:"cost" validate:"omitempty,min=0,max=9999999999.99"`
	UpdateEquipment bool         `json:"update_equipment"`
}

// MaintenanceDTO adds the derived display status to the stored record.
type MaintenanceDTO struct {
	ID              uint64       `json:"id"`
	EquipmentID     uint64       `json:"equipment_id"`
	EquipmentName   string       `json:"equipment_name"`
	EquipmentType   string       `json:"equipment_type"`
	ScheduledDate   string       `json:"scheduled_date"`
	Description     string       `json:"description"`
	Priority        string       `json:"priority"`
	Status          string       `json:"status"`
	DisplayStatus   string       `json:"display_status"`
	AssignedTo      null.Uint64  `json:"assigned_to"`
	AssignedToName  null.String  `json:"assigned_to_name"`
	CompletionDate  *string      `json:"completion_date"`
	CompletionNotes null.String  `json:"completion_notes"`
	Cost            null.Float64 `json:"cost"`
}
