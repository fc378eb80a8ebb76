package entities

import (
	"time"

	"github.com/aarondl/null/v8"

	"equipment-dashboard/pkg/types"
)

const (
	StockIn    = "In Stock"
	StockLow   = "Low Stock"
	StockEmpty = "Out of Stock"
)

type InventoryItem struct {
	ID          uint64      `json:"id" db:"id"`
	Name        string      `json:"name" db:"name"`
	Category    string      `json:"category" db:"category"`
	Quantity    int         `json:"quantity" db:"quantity"`
	MinQuantity int         `json:"min_quantity" db:"min_quantity"`
	UnitPrice   float64     `json:"unit_price" db:"unit_price"`
	Supplier    null.String `json:"supplier" db:"supplier"`
	Location    null.String `json:"location" db:"location"`
	Description null.String `json:"description" db:"description"`
	UpdatedBy   null.Uint64 `json:"updated_by" db:"updated_by"`

	types.BaseEntity
}

func StockStatus(quantity, minQuantity int) string {
	switch {
	case quantity <= 0:
		return StockEmpty
	case quantity <= minQuantity:
		return StockLow
	default:
		return StockIn
	}
}

func (i InventoryItem) StockStatus() string { return StockStatus(i.Quantity, i.MinQuantity) }

// InventoryTransaction is an append-only ledger row written by every quantity adjustment.
type InventoryTransaction struct {
	ID               uint64      `json:"id" db:"id"`
	ItemID           uint64      `json:"item_id" db:"item_id"`
	PreviousQuantity int         `json:"previous_quantity" db:"previous_quantity"`
	Adjustment       int         `json:"adjustment" db:"adjustment"`
	NewQuantity      int         `json:"new_quantity" db:"new_quantity"`
	Reason           string      `json:"reason" db:"reason"`
	UserID           null.Uint64 `json:"user_id" db:"user_id"`
	UserName         null.String `json:"user_name" db:"-"`
	CreatedAt        time.Time   `json:"created_at" db:"created_at"`
}
