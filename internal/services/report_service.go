package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"equipment-dashboard/internal/dto"
	"equipment-dashboard/internal/entities"
	"equipment-dashboard/internal/export"
	"equipment-dashboard/internal/reports"
	"equipment-dashboard/internal/repositories"
	apperrors "equipment-dashboard/pkg/errors"
)

// DefaultReportDays is the window used when a time-series report comes without dates.
const DefaultReportDays = 30

type ReportServiceInterface interface {
	GetReportData(ctx context.Context, req entities.ReportRequest) (*entities.Report, error)
	GetDocument(ctx context.Context, req entities.ReportRequest) (export.Document, error)
	GetPreview(ctx context.Context, req entities.ReportRequest) (*dto.ReportPreviewDTO, error)
}

type ReportService struct {
	reportRepo repositories.ReportRepositoryInterface
	logger     *zap.Logger
	now        func() time.Time
}

func NewReportService(reportRepo repositories.ReportRepositoryInterface, logger *zap.Logger) *ReportService {
	return &ReportService{reportRepo: reportRepo, logger: logger, now: time.Now}
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ResolveReportFilter validates req and fills the date range of time-series kinds:
// a missing end is today, a missing start is DefaultReportDays before the end.
func ResolveReportFilter(req entities.ReportRequest, now time.Time) (entities.ReportFilter, error) {
	if _, ok := reports.For(req.Kind); !ok {
		return entities.ReportFilter{}, apperrors.NewInvalidInputError("unknown report type %q", req.Kind)
	}
	filter := entities.ReportFilter{
		Kind:          req.Kind,
		EquipmentType: req.EquipmentType,
		Status:        req.Status,
	}
	if !req.Kind.TimeSeries() {
		return filter, nil
	}

	filter.To = truncateDay(now)
	if req.DateTo != nil {
		filter.To = truncateDay(*req.DateTo)
	}
	filter.From = filter.To.AddDate(0, 0, -DefaultReportDays)
	if req.DateFrom != nil {
		filter.From = truncateDay(*req.DateFrom)
	}
	if filter.From.After(filter.To) {
		return entities.ReportFilter{}, apperrors.NewInvalidInputError("date_from must not be after date_to")
	}
	return filter, nil
}

// GetReportData never fails on storage errors: they are logged and the report comes back
// empty so the export still renders.
func (s *ReportService) GetReportData(ctx context.Context, req entities.ReportRequest) (*entities.Report, error) {
	filter, err := ResolveReportFilter(req, s.now())
	if err != nil {
		return nil, err
	}
	def, _ := reports.For(filter.Kind)

	report := &entities.Report{Kind: filter.Kind, Title: def.Title}
	if filter.Kind.TimeSeries() {
		from, to := filter.From, filter.To
		report.DateFrom, report.DateTo = &from, &to
	}

	rows, err := s.reportRepo.FetchReport(ctx, filter)
	if err != nil {
		s.logger.Error("report query failed, returning empty report",
			zap.String("kind", string(filter.Kind)),
			zap.Error(err),
		)
		rows = nil
	}
	if rows == nil {
		rows = []map[string]any{}
	}
	report.Rows = rows
	return report, nil
}

func (s *ReportService) GetDocument(ctx context.Context, req entities.ReportRequest) (export.Document, error) {
	report, err := s.GetReportData(ctx, req)
	if err != nil {
		return export.Document{}, err
	}
	return reports.Document(*report, s.now())
}

func (s *ReportService) GetPreview(ctx context.Context, req entities.ReportRequest) (*dto.ReportPreviewDTO, error) {
	doc, err := s.GetDocument(ctx, req)
	if err != nil {
		return nil, err
	}

	columns := make([]dto.ReportColumnDTO, len(doc.Columns))
	for i, c := range doc.Columns {
		columns[i] = dto.ReportColumnDTO{Key: c.Key, Label: c.Label}
	}
	return &dto.ReportPreviewDTO{
		Kind:     string(req.Kind),
		Title:    doc.Title,
		Subtitle: doc.Subtitle,
		Columns:  columns,
		Rows:     doc.Cells(),
		Total:    len(doc.Rows),
	}, nil
}
