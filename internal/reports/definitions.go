// Package reports holds the static column layout and title of every report kind.
package reports

import (
	"fmt"
	"time"

	"equipment-dashboard/internal/entities"
	"equipment-dashboard/internal/export"
)

type Definition struct {
	Kind    entities.ReportKind
	Title   string
	Columns []export.Column
}

// neverIfMissing renders a date column that shows "Never" instead of N/A.
func neverIfMissing(key string) func(row map[string]any) string {
	return func(row map[string]any) string {
		if row[key] == nil {
			return export.Never
		}
		return export.FormatDate(row[key])
	}
}

func percent(key string) func(row map[string]any) string {
	return func(row map[string]any) string { return export.FormatPercent(row[key]) }
}

var definitions = map[entities.ReportKind]Definition{
	entities.ReportEquipment: {
		Title: "Equipment Report",
		Columns: []export.Column{
			export.Col("name", "Name"),
			export.Col("type", "Type"),
			export.Col("status", "Status"),
			export.Col("location", "Location"),
			export.Col("serial_number", "Serial Number"),
			export.Col("manufacturer", "Manufacturer"),
			export.Col("purchase_date", "Purchase Date"),
			export.DateCol("warranty_expiry", "Warranty Expiry"),
			export.Col("cost", "Cost"),
			export.ComputedCol("last_maintenance_date", "Last Maintenance", neverIfMissing("last_maintenance_date")),
			export.Col("pending_maintenance", "Pending Maintenance"),
		},
	},
	entities.ReportMaintenance: {
		Title: "Maintenance Report",
		Columns: []export.Column{
			export.Col("scheduled_date", "Scheduled Date"),
			export.Col("equipment_name", "Equipment"),
			export.Col("equipment_type", "Type"),
			export.Col("description", "Description"),
			export.Col("priority", "Priority"),
			export.Col("display_status", "Status"),
			export.Col("assigned_to", "Assigned To"),
			export.Col("completion_date", "Completed"),
			export.Col("cost", "Cost"),
		},
	},
	entities.ReportInventory: {
		Title: "Inventory Report",
		Columns: []export.Column{
			export.Col("name", "Item"),
			export.Col("category", "Category"),
			export.Col("quantity", "Quantity"),
			export.Col("min_quantity", "Min Quantity"),
			export.CurrencyCol("unit_price", "Unit Price"),
			export.CurrencyCol("total_value", "Total Value"),
			export.Col("stock_status", "Stock Status"),
			export.Col("supplier", "Supplier"),
			export.Col("location", "Location"),
		},
	},
	entities.ReportUsage: {
		Title: "Equipment Usage Report",
		Columns: []export.Column{
			export.DateCol("started_at", "Date"),
			export.Col("equipment_name", "Equipment"),
			export.Col("equipment_type", "Type"),
			export.Col("user_name", "User"),
			export.Col("duration_minutes", "Duration (min)"),
		},
	},
	entities.ReportCost: {
		Title: "Cost Analysis Report",
		Columns: []export.Column{
			export.Col("name", "Equipment"),
			export.Col("type", "Type"),
			export.Col("status", "Status"),
			export.Col("purchase_cost", "Purchase Cost"),
			export.Col("maintenance_count", "Maintenance Jobs"),
			export.Col("maintenance_cost", "Maintenance Cost"),
			export.Col("total_cost", "Total Cost"),
		},
	},
	entities.ReportPerformance: {
		Title: "Equipment Performance Report",
		Columns: []export.Column{
			export.Col("name", "Equipment"),
			export.Col("type", "Type"),
			export.Col("status", "Status"),
			export.Col("purchase_date", "Purchase Date"),
			export.Col("usage_count", "Sessions"),
			export.Col("usage_minutes", "Usage (min)"),
			export.Col("maintenance_count", "Maintenance Jobs"),
			export.ComputedCol("last_maintenance", "Last Maintenance", neverIfMissing("last_maintenance")),
			export.Col("age_days", "Age (days)"),
			export.ComputedCol("lifecycle_percentage", "Lifecycle", percent("lifecycle_percentage")),
		},
	},
	entities.ReportActivity: {
		Title: "Activity Log Report",
		Columns: []export.Column{
			export.Col("created_at", "Date"),
			export.Col("user_name", "User"),
			export.Col("equipment_name", "Equipment"),
			export.Col("action", "Action"),
			export.Col("details", "Details"),
		},
	},
}

// For returns the layout of kind; ok is false for an unknown kind.
func For(kind entities.ReportKind) (Definition, bool) {
	def, ok := definitions[kind]
	if !ok {
		return Definition{}, false
	}
	def.Kind = kind
	return def, true
}

// Subtitle describes the covered period, or is empty when the report has none.
func Subtitle(from, to *time.Time) string {
	if from == nil || to == nil {
		return ""
	}
	return fmt.Sprintf("Period: %s - %s", export.FormatDate(*from), export.FormatDate(*to))
}

// Document turns assembled report data into a renderer-neutral document.
func Document(report entities.Report, now time.Time) (export.Document, error) {
	def, ok := For(report.Kind)
	if !ok {
		return export.Document{}, fmt.Errorf("no column layout for report %q", report.Kind)
	}
	return export.Document{
		Title:       def.Title,
		Subtitle:    Subtitle(report.DateFrom, report.DateTo),
		Columns:     def.Columns,
		Rows:        report.Rows,
		GeneratedAt: now,
	}, nil
}
