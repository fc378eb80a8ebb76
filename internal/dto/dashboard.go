package dto

import "equipment-dashboard/internal/entities"

type DashboardStatsDTO struct {
	EquipmentTotal      int64                       `json:"equipment_total"`
	EquipmentByStatus   map[string]int64            `json:"equipment_by_status"`
	UpcomingMaintenance int64                       `json:"upcoming_maintenance"`
	OverdueMaintenance  int64                       `json:"overdue_maintenance"`
	CompletedThisMonth  int64                       `json:"completed_this_month"`
	LowStockItems       int64                       `json:"low_stock_items"`
	InventoryTotalValue float64                     `json:"inventory_total_value"`
	RecentActivity      []entities.ActivityLogEntry `json:"recent_activity"`
}
