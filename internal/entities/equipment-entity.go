package entities

import (
	"time"

	"github.com/aarondl/null/v8"

	"equipment-dashboard/pkg/types"
)

type EquipmentStatus string

const (
	EquipmentAvailable   EquipmentStatus = "Available"
	EquipmentInUse       EquipmentStatus = "In Use"
	EquipmentMaintenance EquipmentStatus = "Maintenance"
	EquipmentOutOfOrder  EquipmentStatus = "Out of Order"
	EquipmentRetired     EquipmentStatus = "Retired"
)

var EquipmentStatuses = []EquipmentStatus{
	EquipmentAvailable, EquipmentInUse, EquipmentMaintenance, EquipmentOutOfOrder, EquipmentRetired,
}

func (s EquipmentStatus) Valid() bool {
	for _, known := range EquipmentStatuses {
		if s == known {
			return true
		}
	}
	return false
}

const DefaultExpectedLifetimeDays = 1825

type Equipment struct {
	ID                   uint64          `json:"id" db:"id"`
	Name                 string          `json:"name" db:"name"`
	Type                 string          `json:"type" db:"type"`
	Status               EquipmentStatus `json:"status" db:"status"`
	Location             string          `json:"location" db:"location"`
	SerialNumber         string          `json:"serial_number" db:"serial_number"`
	Manufacturer         null.String     `json:"manufacturer" db:"manufacturer"`
	PurchaseDate         null.Time       `json:"purchase_date" db:"purchase_date"`
	WarrantyExpiry       null.Time       `json:"warranty_expiry" db:"warranty_expiry"`
	Cost                 null.Float64    `json:"cost" db:"cost"`
	LastMaintenanceDate  null.Time       `json:"last_maintenance_date" db:"last_maintenance_date"`
	ExpectedLifetimeDays int             `json:"expected_lifetime_days" db:"expected_lifetime_days"`
	UpdatedBy            null.Uint64     `json:"updated_by" db:"updated_by"`

	types.BaseEntity
}

// EquipmentUsage is one logged usage session; it feeds the usage and performance reports.
type EquipmentUsage struct {
	ID              uint64      `json:"id" db:"id"`
	EquipmentID     uint64      `json:"equipment_id" db:"equipment_id"`
	UserID          null.Uint64 `json:"user_id" db:"user_id"`
	StartedAt       time.Time   `json:"started_at" db:"started_at"`
	EndedAt         null.Time   `json:"ended_at" db:"ended_at"`
	DurationMinutes int         `json:"duration_minutes" db:"duration_minutes"`
}
