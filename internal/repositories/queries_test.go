package repositories

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equipment-dashboard/internal/entities"
	apperrors "equipment-dashboard/pkg/errors"
	"equipment-dashboard/pkg/types"
)

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func TestMaintenanceReport_CompletedInJanuary(t *testing.T) {
	from, to := day(2024, 1, 1), day(2024, 1, 31)
	b, err := BuildReportQuery(entities.ReportFilter{
		Kind:   entities.ReportMaintenance,
		From:   from,
		To:     to,
		Status: "Completed",
	})
	require.NoError(t, err)

	query, args, err := b.ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "FROM maintenance_schedules m JOIN equipment e ON e.id = m.equipment_id LEFT JOIN users u ON u.id = m.assigned_to")
	assert.Contains(t, query, "WHERE m.scheduled_date >= $4 AND m.scheduled_date <= $5 AND m.status = $6")
	assert.Contains(t, query, "ORDER BY m.scheduled_date DESC, m.id DESC")
	require.Len(t, args, 6)
	assert.Equal(t, from, args[3])
	assert.Equal(t, to, args[4])
	assert.Equal(t, "Completed", args[5])
}

func TestMaintenanceReport_OverdueIsDerived(t *testing.T) {
	b, err := BuildReportQuery(entities.ReportFilter{
		Kind:   entities.ReportMaintenance,
		From:   day(2024, 1, 1),
		To:     day(2024, 1, 31),
		Status: "Overdue",
	})
	require.NoError(t, err)

	query, args, err := b.ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "(m.status IN ($6,$7) AND m.scheduled_date < CURRENT_DATE)")
	assert.Equal(t, "Scheduled", args[5])
	assert.Equal(t, "In Progress", args[6])
}

func TestReportQuery_UnknownKind(t *testing.T) {
	_, err := BuildReportQuery(entities.ReportFilter{Kind: "warehouse"})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestReportQuery_FilterValuesAreBound(t *testing.T) {
	hostile := "Cardio'; DROP TABLE equipment; --"
	for _, kind := range entities.ReportKinds {
		t.Run(string(kind), func(t *testing.T) {
			b, err := BuildReportQuery(entities.ReportFilter{
				Kind:          kind,
				From:          day(2024, 1, 1),
				To:            day(2024, 1, 31),
				EquipmentType: hostile,
				Status:        hostile,
			})
			require.NoError(t, err)
			query, _, err := b.ToSql()
			require.NoError(t, err)
			assert.NotContains(t, query, "DROP TABLE")
		})
	}
}

func TestUsageReport_EndIsExclusiveNextDay(t *testing.T) {
	to := day(2024, 3, 31)
	b, err := BuildReportQuery(entities.ReportFilter{Kind: entities.ReportUsage, From: day(2024, 3, 1), To: to})
	require.NoError(t, err)

	query, args, err := b.ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "eu.started_at >= $1 AND eu.started_at < $2")
	assert.Contains(t, query, "ORDER BY eu.started_at DESC")
	assert.Equal(t, day(2024, 4, 1), args[1])
}

func TestInventoryReport_Filters(t *testing.T) {
	b, err := BuildReportQuery(entities.ReportFilter{
		Kind:          entities.ReportInventory,
		EquipmentType: "Supplements",
		Status:        entities.StockLow,
	})
	require.NoError(t, err)

	query, args, err := b.ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "(i.quantity * i.unit_price)::float8 AS total_value")
	assert.Contains(t, query, "i.category = $4")
	assert.Contains(t, query, "i.quantity > 0 AND i.quantity <= i.min_quantity")
	assert.Contains(t, query, "ORDER BY i.name ASC")
	assert.Equal(t, "Supplements", args[3])
}

func TestEquipmentListQueries(t *testing.T) {
	countB, selectB := buildEquipmentListQueries(types.Filter{
		Search:         "tread",
		Filter:         map[string]interface{}{"status": "Available,In Use", "password": "x"},
		Sort:           map[string]string{"nope": "desc"},
		Limit:          20,
		Offset:         40,
		Page:           3,
		WithPagination: true,
	})

	countSQL, countArgs, err := countB.ToSql()
	require.NoError(t, err)
	assert.Contains(t, countSQL, "SELECT COUNT(e.id) FROM equipment AS e")
	assert.Contains(t, countSQL, "e.status IN (")
	assert.NotContains(t, countSQL, "ORDER BY")
	assert.NotContains(t, countSQL, "LIMIT")
	assert.NotContains(t, countSQL, "password")

	selectSQL, selectArgs, err := selectB.ToSql()
	require.NoError(t, err)
	assert.Contains(t, selectSQL, "ORDER BY e.id DESC")
	assert.Contains(t, selectSQL, "LIMIT 20 OFFSET 40")
	assert.Equal(t, countArgs, selectArgs, "count and page share one predicate")
	assert.Contains(t, selectArgs, "Available")
	assert.Contains(t, selectArgs, "In Use")
}

func TestEquipmentListQueries_AllowedSort(t *testing.T) {
	_, selectB := buildEquipmentListQueries(types.Filter{Sort: map[string]string{"name": "asc"}})
	query, _, err := selectB.ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "ORDER BY e.name ASC")
	assert.NotContains(t, query, "e.id DESC")
}

func TestMaintenanceListQueries(t *testing.T) {
	countB, selectB := buildMaintenanceListQueries(types.Filter{
		Filter: map[string]interface{}{"status": "Overdue", "priority": "High"},
		Sort:   map[string]string{"status": "asc"},
	})

	countSQL, _, err := countB.ToSql()
	require.NoError(t, err)
	assert.Contains(t, countSQL, "m.scheduled_date < CURRENT_DATE")
	assert.Contains(t, countSQL, "m.priority = $")

	selectSQL, _, err := selectB.ToSql()
	require.NoError(t, err)
	assert.Contains(t, selectSQL, "ORDER BY m.status ASC")
	assert.NotContains(t, selectSQL, "m.status = $")
}

func TestInventoryListQueries_StockStatus(t *testing.T) {
	countB, _ := buildInventoryListQueries(types.Filter{
		Filter: map[string]interface{}{"stock_status": "Out of Stock,Low Stock"},
	})
	query, _, err := countB.ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "i.quantity <= 0")
	assert.Contains(t, query, "i.quantity > 0 AND i.quantity <= i.min_quantity")
}

func TestDashboardQueries(t *testing.T) {
	from, to := day(2024, 5, 1), day(2024, 5, 8)

	query, args, err := upcomingMaintenanceQuery(from, to).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) FROM maintenance_schedules m WHERE m.status IN ($1,$2) AND m.scheduled_date >= $3 AND m.scheduled_date <= $4", query)
	assert.Equal(t, []interface{}{"Scheduled", "In Progress", from, to}, args)

	query, _, err = overdueMaintenanceQuery(from).ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "m.scheduled_date < $3")

	query, _, err = inventorySummaryQuery().ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "FILTER (WHERE i.quantity <= i.min_quantity)")
}

func TestActivityInsert_EmptyDetailsBindColumnDefault(t *testing.T) {
	query, args, err := activityInsert(entities.ActivityLogEntry{
		UserID: null.Uint64From(4),
		Action: "Deleted calendar event Calibration",
	}).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "INSERT INTO activity_log (user_id,equipment_id,action,details) VALUES ($1,$2,$3,$4)", query)
	require.Len(t, args, 4)
	assert.Equal(t, "{}", args[3])
}

func TestActivityInsert_KeepsDetailsAndLongAction(t *testing.T) {
	action := "Updated equipment " + strings.Repeat("x", 255)
	_, args, err := activityInsert(entities.ActivityLogEntry{
		EquipmentID: null.Uint64From(9),
		Action:      action,
		Details:     json.RawMessage(`{"before":{"status":"Available"}}`),
	}).ToSql()
	require.NoError(t, err)

	require.Len(t, args, 4)
	assert.Equal(t, action, args[2])
	assert.Equal(t, `{"before":{"status":"Available"}}`, args[3])
}

func TestWriteError(t *testing.T) {
	t.Run("unknown assignee", func(t *testing.T) {
		err := writeError("insert maintenance", maintenanceTable, &pgconn.PgError{
			Code:           "23503",
			ConstraintName: "maintenance_schedules_assigned_to_fkey",
		})
		require.True(t, apperrors.IsValidation(err))
		assert.Contains(t, err.Error(), "assigned_to refers to a record that does not exist")
	})

	t.Run("unrecognized constraint name", func(t *testing.T) {
		err := writeError("insert maintenance", maintenanceTable, &pgconn.PgError{Code: "23503", ConstraintName: "fk_custom"})
		require.True(t, apperrors.IsValidation(err))
		assert.Contains(t, err.Error(), "reference refers to a record that does not exist")
	})

	t.Run("cost overflow", func(t *testing.T) {
		err := writeError("update equipment", equipmentTable, &pgconn.PgError{Code: "22003"})
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("other failures are wrapped", func(t *testing.T) {
		cause := &pgconn.PgError{Code: "08006"}
		err := writeError("update inventory item", inventoryTable, cause)
		assert.False(t, apperrors.IsValidation(err))
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "update inventory item: ")
	})
}
