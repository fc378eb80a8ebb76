package entities

import (
	"encoding/json"
	"time"

	"github.com/aarondl/null/v8"
)

// ActivityLogEntry is the append-only audit trail. Rows are never updated or deleted.
type ActivityLogEntry struct {
	ID            uint64          `json:"id" db:"id"`
	UserID        null.Uint64     `json:"user_id" db:"user_id"`
	EquipmentID   null.Uint64     `json:"equipment_id" db:"equipment_id"`
	Action        string          `json:"action" db:"action"`
	Details       json.RawMessage `json:"details,omitempty" db:"details"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UserName      null.String     `json:"user_name" db:"-"`
	EquipmentName null.String     `json:"equipment_name" db:"-"`
}

// Snapshot is the before/after pair stored in details for equipment updates.
type Snapshot struct {
	Before interface{} `json:"before"`
	After  interface{} `json:"after"`
}
