package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"equipment-dashboard/internal/entities"
	"equipment-dashboard/internal/export"
	"equipment-dashboard/internal/services"
	apperrors "equipment-dashboard/pkg/errors"
	"equipment-dashboard/pkg/utils"
)

// reportTimeoutSeconds bounds the report query, not the download.
const reportTimeoutSeconds = 60

// ExportRecorder counts finished report downloads.
type ExportRecorder interface {
	ReportExported(kind, format string)
}

type ReportController struct {
	reportService services.ReportServiceInterface
	recorder      ExportRecorder
	logger        *zap.Logger
	now           func() time.Time
}

func NewReportController(reportService services.ReportServiceInterface, recorder ExportRecorder, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, recorder: recorder, logger: logger, now: time.Now}
}

func (c *ReportController) parseRequest(ctx echo.Context) (entities.ReportRequest, error) {
	kind, ok := entities.ParseReportKind(ctx.Param("kind"))
	if !ok {
		return entities.ReportRequest{}, apperrors.NewInvalidInputError("unknown report type %q", ctx.Param("kind"))
	}
	from, err := utils.ParseOptionalDate("date_from", ctx.QueryParam("date_from"))
	if err != nil {
		return entities.ReportRequest{}, err
	}
	to, err := utils.ParseOptionalDate("date_to", ctx.QueryParam("date_to"))
	if err != nil {
		return entities.ReportRequest{}, err
	}
	return entities.ReportRequest{
		Kind:          kind,
		DateFrom:      from,
		DateTo:        to,
		EquipmentType: strings.TrimSpace(firstNonEmpty(ctx.QueryParam("type"), ctx.QueryParam("equipment_type"))),
		Status:        strings.TrimSpace(ctx.QueryParam("status")),
	}, nil
}

// Preview returns the formatted report as JSON for on-screen display.
func (c *ReportController) Preview(ctx echo.Context) error {
	req, err := c.parseRequest(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	reqCtx, cancel := utils.ContextWithTimeout(ctx, reportTimeoutSeconds)
	defer cancel()

	preview, err := c.reportService.GetPreview(reqCtx, req)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, preview, "", http.StatusOK)
}

// Export renders the report as a download. The format is checked before any data is read.
func (c *ReportController) Export(ctx echo.Context) error {
	format, err := export.ParseFormat(ctx.QueryParam("format"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	req, err := c.parseRequest(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	reqCtx, cancel := utils.ContextWithTimeout(ctx, reportTimeoutSeconds)
	doc, err := c.reportService.GetDocument(reqCtx, req)
	cancel()
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	filename := export.Filename(string(req.Kind), format, c.now())
	res := ctx.Response()

	if format.Streams() {
		res.Header().Set(echo.HeaderContentType, format.ContentType())
		res.Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
		res.WriteHeader(http.StatusOK)
		if err := export.Render(res, doc, format); err != nil {
			// Headers are already sent; the client sees a truncated file.
			c.logger.Error("report stream aborted", zap.String("kind", string(req.Kind)), zap.Error(err))
			return nil
		}
		c.recorded(req.Kind, format)
		return nil
	}

	var buf bytes.Buffer
	if err := export.Render(&buf, doc, format); err != nil {
		return utils.ErrorResponse(ctx, fmt.Errorf("render %s report: %w", format, err), c.logger)
	}
	res.Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	c.recorded(req.Kind, format)
	return ctx.Blob(http.StatusOK, format.ContentType(), buf.Bytes())
}

func (c *ReportController) recorded(kind entities.ReportKind, format export.Format) {
	if c.recorder != nil {
		c.recorder.ReportExported(string(kind), string(format))
	}
	c.logger.Info("report exported", zap.String("kind", string(kind)), zap.String("format", string(format)))
}
