package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"equipment-dashboard/internal/entities"
	apperrors "equipment-dashboard/pkg/errors"
)

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func TestResolveReportFilter(t *testing.T) {
	now := time.Date(2024, time.March, 10, 18, 45, 0, 0, time.UTC)
	jan1, jan31 := day(2024, 1, 1), day(2024, 1, 31)

	tests := []struct {
		name     string
		req      entities.ReportRequest
		wantFrom time.Time
		wantTo   time.Time
	}{
		{"defaults to last 30 days", entities.ReportRequest{Kind: entities.ReportMaintenance}, day(2024, 2, 9), day(2024, 3, 10)},
		{"explicit range", entities.ReportRequest{Kind: entities.ReportUsage, DateFrom: &jan1, DateTo: &jan31}, jan1, jan31},
		{"only end given", entities.ReportRequest{Kind: entities.ReportCost, DateTo: &jan31}, day(2024, 1, 1), jan31},
		{"only start given", entities.ReportRequest{Kind: entities.ReportActivity, DateFrom: &jan1}, jan1, day(2024, 3, 10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := ResolveReportFilter(tt.req, now)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFrom, f.From)
			assert.Equal(t, tt.wantTo, f.To)
		})
	}
}

func TestResolveReportFilter_SnapshotKindsIgnoreDates(t *testing.T) {
	jan1 := day(2024, 1, 1)
	f, err := ResolveReportFilter(entities.ReportRequest{Kind: entities.ReportInventory, DateFrom: &jan1, Status: "Low Stock"}, time.Now())
	require.NoError(t, err)
	assert.True(t, f.From.IsZero())
	assert.True(t, f.To.IsZero())
	assert.Equal(t, "Low Stock", f.Status)
}

func TestResolveReportFilter_Errors(t *testing.T) {
	_, err := ResolveReportFilter(entities.ReportRequest{Kind: "payroll"}, time.Now())
	assert.True(t, apperrors.IsValidation(err))

	from, to := day(2024, 2, 1), day(2024, 1, 1)
	_, err = ResolveReportFilter(entities.ReportRequest{Kind: entities.ReportUsage, DateFrom: &from, DateTo: &to}, time.Now())
	assert.True(t, apperrors.IsValidation(err))
}

func TestGetReportData_StorageFailureYieldsEmptyReport(t *testing.T) {
	repo := &fakeReportRepo{err: errors.New("relation does not exist")}
	svc := NewReportService(repo, zap.NewNop())
	svc.now = func() time.Time { return day(2024, 3, 10) }

	report, err := svc.GetReportData(context.Background(), entities.ReportRequest{Kind: entities.ReportMaintenance})
	require.NoError(t, err)
	assert.Equal(t, "Maintenance Report", report.Title)
	assert.NotNil(t, report.Rows)
	assert.Empty(t, report.Rows)
	require.NotNil(t, report.DateFrom)
	assert.Equal(t, day(2024, 2, 9), *report.DateFrom)

	doc, err := svc.GetDocument(context.Background(), entities.ReportRequest{Kind: entities.ReportMaintenance})
	require.NoError(t, err)
	assert.Equal(t, "Period: Feb 09, 2024 - Mar 10, 2024", doc.Subtitle)
	assert.Empty(t, doc.Rows)
}

func TestGetPreview_FormatsCells(t *testing.T) {
	repo := &fakeReportRepo{rows: []map[string]any{{
		"name": "Towels", "category": "Supplies", "quantity": int32(2), "min_quantity": int32(3),
		"unit_price": 1234.5, "total_value": 2469.0, "stock_status": "Low Stock", "supplier": nil, "location": "Desk",
	}}}
	svc := NewReportService(repo, zap.NewNop())

	preview, err := svc.GetPreview(context.Background(), entities.ReportRequest{Kind: entities.ReportInventory})
	require.NoError(t, err)

	assert.Equal(t, "Inventory Report", preview.Title)
	assert.Empty(t, preview.Subtitle)
	assert.Equal(t, 1, preview.Total)
	require.Len(t, preview.Columns, 9)
	assert.Equal(t, "unit_price", preview.Columns[4].Key)
	assert.Equal(t,
		[]string{"Towels", "Supplies", "2", "3", "$1,234.50", "$2,469.00", "Low Stock", "N/A", "Desk"},
		preview.Rows[0])
	require.Len(t, repo.filters, 1)
	assert.Equal(t, entities.ReportInventory, repo.filters[0].Kind)
}
