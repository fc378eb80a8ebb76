package reports_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equipment-dashboard/internal/entities"
	"equipment-dashboard/internal/export"
	"equipment-dashboard/internal/reports"
)

func TestEveryKindHasALayout(t *testing.T) {
	for _, kind := range entities.ReportKinds {
		def, ok := reports.For(kind)
		require.True(t, ok, kind)
		assert.Equal(t, kind, def.Kind)
		assert.NotEmpty(t, def.Title)
		assert.NotEmpty(t, def.Columns)
	}

	_, ok := reports.For("unknown")
	assert.False(t, ok)
}

func TestEquipmentLastMaintenanceShowsNever(t *testing.T) {
	def, _ := reports.For(entities.ReportEquipment)
	var col export.Column
	for _, c := range def.Columns {
		if c.Key == "last_maintenance_date" {
			col = c
		}
	}
	require.Equal(t, "last_maintenance_date", col.Key)

	assert.Equal(t, export.Never, col.Format(map[string]any{"last_maintenance_date": nil}))
	assert.Equal(t, "Mar 05, 2024", col.Format(map[string]any{
		"last_maintenance_date": time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
	}))
}

func TestPerformanceLifecycleIsPercent(t *testing.T) {
	def, _ := reports.For(entities.ReportPerformance)
	doc := export.Document{Columns: def.Columns}
	cells := doc.RowCells(map[string]any{
		"name":                 "Treadmill",
		"lifecycle_percentage": 42.25,
		"last_maintenance":     nil,
	})

	last := cells[len(cells)-1]
	assert.Equal(t, "42.3%", last)
	assert.Contains(t, cells, export.Never)
}

func TestDocument(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)

	doc, err := reports.Document(entities.Report{
		Kind:     entities.ReportMaintenance,
		DateFrom: &from,
		DateTo:   &to,
		Rows:     []map[string]any{{"cost": 12.5}},
	}, now)
	require.NoError(t, err)

	assert.Equal(t, "Maintenance Report", doc.Title)
	assert.Equal(t, "Period: Jan 01, 2024 - Jan 31, 2024", doc.Subtitle)
	assert.Equal(t, now, doc.GeneratedAt)
	assert.Len(t, doc.Rows, 1)

	_, err = reports.Document(entities.Report{Kind: "nope"}, now)
	assert.Error(t, err)
}

func TestSubtitleWithoutRange(t *testing.T) {
	assert.Empty(t, reports.Subtitle(nil, nil))
}
