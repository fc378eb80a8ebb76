package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"equipment-dashboard/internal/controllers"
	"equipment-dashboard/internal/services"
	"equipment-dashboard/pkg/middleware"
)

func runReportRouter(secure *echo.Group, reportService services.ReportServiceInterface, metrics *middleware.Metrics, logger *zap.Logger) {
	var recorder controllers.ExportRecorder
	if metrics != nil {
		recorder = metrics
	}
	ctrl := controllers.NewReportController(reportService, recorder, logger)

	secure.GET("/reports/:kind", ctrl.Preview)
	secure.GET("/reports/:kind/export", ctrl.Export)
}
