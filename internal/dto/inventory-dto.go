package dto

import (
	"github.com/aarondl/null/v8"
)

type CreateInventoryItemDTO struct {
	Name        string      `json:"name" validate:"required,notblank,max=255"`
	Category    string      `json:"category" validate:"required,notblank,max=100"`
	Quantity    int         `json:"quantity" validate:"min=0"`
	MinQuantity int         `json:"min_quantity" validate:"min=0"`
	UnitPrice   float64     `json:"unit_price" validate:"min=0,max=9999999999.99"`
	Supplier    null.String `json:"supplier" validate:"omitempty,max=255"`
	Location    null.String `json:"location" validate:"omitempty,max=255"`
	Description null.String `json:"description" validate:"omitempty,max=2000"`
}

// UpdateInventoryItemDTO cannot change quantity: stock moves only through adjustments.
type UpdateInventoryItemDTO struct {
	Name        *string     `json:"name" validate:"omitempty,notblank,max=255"`
	Category    *string     `json:"category" validate:"omitempty,notblank,max=100"`
	MinQuantity *int        `json:"min_quantity" validate:"omitempty,min=0"`
	UnitPrice   *float64    `json:"unit_price" validate:"omitempty,min=0,max=9999999999.99"`
	Supplier    null.String `json:"supplier" validate:"omitempty,max=255"`
	Location    null.String `json:"location" validate:"omitempty,max=255"`
	Description null.String `json:"description" validate:"omitempty,max=2000"`
}

type AdjustInventoryDTO struct {
	Adjustment int    `json:"adjustment" validate:"required,ne=0"`
	Reason     string `json:"reason" validate:"required,notblank,max=500"`
}

type InventoryItemDTO struct {
	ID          uint64      `json:"id"`
	Name        string      `json:"name"`
	Category    string      `json:"category"`
	Quantity    int         `json:"quantity"`
	MinQuantity int         `json:"min_quantity"`
	UnitPrice   float64     `json:"unit_price"`
	TotalValue  float64     `json:"total_value"`
	StockStatus string      `json:"stock_status"`
	Supplier    null.String `json:"supplier"`
	Location    null.String `json:"location"`
	Description null.String `json:"description"`
}
