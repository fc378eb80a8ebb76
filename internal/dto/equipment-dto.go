package dto

import (
	"github.com/aarondl/null/v8"
)

type CreateEquipmentDTO struct {
	Name                 string       `json:"name" validate:"required,notblank,max=255"`
	Type                 string       `json:"type" validate:"required,notblank,max=100"`
	Status               string       `json:"status" validate:"required,equipment_status"`
	Location             string       `json:"location" validate:"required,notblank,max=255"`
	SerialNumber         string       `json:"serial_number" validate:"required,notblank,max=100"`
	Manufacturer         null.String  `json:"manufacturer" validate:"omitempty,max=255"`
	PurchaseDate         *string      `json:"purchase_date" validate:"omitempty,datetime=2006-01-02"`
	WarrantyExpiry       *string      `json:"warranty_expiry" validate:"omitempty,datetime=2006-01-02"`
	Cost                 null.Float64 `json:"cost" validate:"omitempty,min=0,max=9999999999.99"`
	ExpectedLifetimeDays int          `json:"expected_lifetime_days" validate:"omitempty,min=1"`
}

// UpdateEquipmentDTO is a partial update: nil fields keep their stored value.
type UpdateEquipmentDTO struct {
	Name                 *string      `json:"name" validate:"omitempty,notblank,max=255"`
	Type                 *string      `json:"type" validate:"omitempty,notblank,max=100"`
	Status               *string      `json:"status" validate:"omitempty,equipment_status"`
	Location             *string      `json:"location" validate:"omitempty,notblank,max=255"`
	SerialNumber         *string      `json:"serial_number" validate:"omitempty,notblank,max=100"`
	Manufacturer         null.String  `json:"manufacturer" validate:"omitempty,max=255"`
	PurchaseDate         *string      `json:"purchase_date" validate:"omitempty,datetime=2006-01-02"`
	WarrantyExpiry       *string      `json:"warranty_expiry" validate:"omitempty,datetime=2006-01-02"`
	Cost                 null.Float64 `json:"cost" validate:"omitempty,min=0,max=9999999999.99"`
	ExpectedLifetimeDays *int         `json:"expected_lifetime_days" validate:"omitempty,min=1"`
}

type BulkEquipmentStatusDTO struct {
	IDs    []uint64 `json:"ids" validate:"required,min=1,max=500,dive,gt=0"`
	Status string   `json:"status" validate:"required,equipment_status"`
}

type RecordUsageDTO struct {
	StartedAt       *string `json:"started_at" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	DurationMinutes int     `json:"duration_minutes" validate:"required,min=1,max=1440"`
}

type EquipmentImportResultDTO struct {
	Created int      `json:"created"`
	Skipped int      `json:"skipped"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors"`
}
