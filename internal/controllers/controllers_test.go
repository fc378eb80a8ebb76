package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"equipment-dashboard/internal/authz"
	"equipment-dashboard/internal/dto"
	"equipment-dashboard/internal/entities"
	"equipment-dashboard/internal/export"
	"equipment-dashboard/pkg/validation"
)

type fakeReportService struct {
	calls int
	last  entities.ReportRequest
}

func (f *fakeReportService) GetReportData(ctx context.Context, req entities.ReportRequest) (*entities.Report, error) {
	f.calls++
	f.last = req
	return &entities.Report{Kind: req.Kind}, nil
}

func (f *fakeReportService) GetDocument(ctx context.Context, req entities.ReportRequest) (export.Document, error) {
	f.calls++
	f.last = req
	return export.Document{
		Title:   "Equipment Report",
		Columns: []export.Column{export.Col("name", "Name"), export.CurrencyCol("cost", "Cost")},
		Rows:    []map[string]any{{"name": "Treadmill", "cost": 2500.0}},
	}, nil
}

func (f *fakeReportService) GetPreview(ctx context.Context, req entities.ReportRequest) (*dto.ReportPreviewDTO, error) {
	f.calls++
	f.last = req
	return &dto.ReportPreviewDTO{Kind: string(req.Kind), Rows: [][]string{}}, nil
}

type countingRecorder struct{ exports []string }

func (r *countingRecorder) ReportExported(kind, format string) {
	r.exports = append(r.exports, kind+"/"+format)
}

func newReportContext(target, kind string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("kind")
	c.SetParamValues(kind)
	return c, rec
}

func newReportController() (*ReportController, *fakeReportService, *countingRecorder) {
	svc := &fakeReportService{}
	rec := &countingRecorder{}
	ctrl := NewReportController(svc, rec, zap.NewNop())
	ctrl.now = func() time.Time { return time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC) }
	return ctrl, svc, rec
}

func TestExport_UnsupportedFormatSkipsService(t *testing.T) {
	ctrl, svc, recorder := newReportController()
	c, rec := newReportContext("/api/reports/equipment/export?format=docx", "equipment")

	require.NoError(t, ctrl.Export(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "docx")
	assert.Zero(t, svc.calls)
	assert.Empty(t, recorder.exports)
}

func TestExport_UnknownKind(t *testing.T) {
	ctrl, svc, _ := newReportController()
	c, rec := newReportContext("/api/reports/payroll/export?format=csv", "payroll")

	require.NoError(t, ctrl.Export(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, svc.calls)
}

func TestExport_CSVHeadersAndBody(t *testing.T) {
	ctrl, svc, recorder := newReportController()
	c, rec := newReportContext("/api/reports/equipment/export?format=CSV&equipment_type=Cardio", "equipment")

	require.NoError(t, ctrl.Export(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, `attachment; filename="equipment_2024-03-10.csv"`, rec.Header().Get(echo.HeaderContentDisposition))
	assert.Equal(t, "Name,Cost\nTreadmill,\"$2,500.00\"\n", rec.Body.String())

	assert.Equal(t, 1, svc.calls)
	assert.Equal(t, "Cardio", svc.last.EquipmentType)
	assert.Equal(t, []string{"equipment/csv"}, recorder.exports)
}

func TestExport_XLSXIsBuffered(t *testing.T) {
	ctrl, _, recorder := newReportController()
	c, rec := newReportContext("/api/reports/equipment/export?format=excel", "equipment")

	require.NoError(t, ctrl.Export(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, export.FormatXLSX.ContentType(), rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, `attachment; filename="equipment_2024-03-10.xlsx"`, rec.Header().Get(echo.HeaderContentDisposition))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "PK"))
	assert.Equal(t, []string{"equipment/xlsx"}, recorder.exports)
}

func TestPreview_BadDate(t *testing.T) {
	ctrl, svc, _ := newReportController()
	c, rec := newReportContext("/api/reports/usage?date_from=01/02/2024", "usage")

	require.NoError(t, ctrl.Preview(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, svc.calls)
}

func TestPreview_PassesDates(t *testing.T) {
	ctrl, svc, _ := newReportController()
	c, rec := newReportContext("/api/reports/usage?date_from=2024-01-01&date_to=2024-01-31", "usage")

	require.NoError(t, ctrl.Preview(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.last.DateFrom)
	assert.Equal(t, "2024-01-01", svc.last.DateFrom.Format("2006-01-02"))
	assert.Equal(t, entities.ReportUsage, svc.last.Kind)
}

type fakeSettingsService struct{ themes map[uint64]string }

func (f *fakeSettingsService) GetTheme(ctx context.Context, userID uint64) string {
	if t, ok := f.themes[userID]; ok {
		return t
	}
	return entities.DefaultTheme
}

func (f *fakeSettingsService) SetTheme(ctx context.Context, userID uint64, theme string) error {
	f.themes[userID] = theme
	return nil
}

func TestSettings_ThemeRoundTrip(t *testing.T) {
	e := echo.New()
	e.Validator = validation.New()
	svc := &fakeSettingsService{themes: map[uint64]string{}}
	ctrl := NewSettingsController(svc, zap.NewNop())
	session := authz.Session{UserID: 4, Role: "EquipmentManager"}

	req := httptest.NewRequest(http.MethodPut, "/api/settings/theme", strings.NewReader(`{"theme":"light"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req = req.WithContext(authz.WithSession(req.Context(), session))
	rec := httptest.NewRecorder()
	require.NoError(t, ctrl.SetTheme(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "light", svc.themes[4])

	req = httptest.NewRequest(http.MethodPut, "/api/settings/theme", strings.NewReader(`{"theme":"blue"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req = req.WithContext(authz.WithSession(req.Context(), session))
	rec = httptest.NewRecorder()
	require.NoError(t, ctrl.SetTheme(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "light", svc.themes[4])

	req = httptest.NewRequest(http.MethodGet, "/api/settings/theme", nil)
	req = req.WithContext(authz.WithSession(req.Context(), session))
	rec = httptest.NewRecorder()
	require.NoError(t, ctrl.GetTheme(e.NewContext(req, rec)))
	assert.JSONEq(t, `{"success":true,"data":{"theme":"light"}}`, rec.Body.String())
}

func TestSettings_RequiresSession(t *testing.T) {
	e := echo.New()
	ctrl := NewSettingsController(&fakeSettingsService{themes: map[uint64]string{}}, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/settings/theme", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, ctrl.GetTheme(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
