package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"equipment-dashboard/internal/controllers"
	"equipment-dashboard/internal/services"
)

func runActivityRouter(secure *echo.Group, activityService services.ActivityLogServiceInterface, logger *zap.Logger) {
	ctrl := controllers.NewActivityLogController(activityService, logger)
	secure.GET("/activity", ctrl.GetEntries)
}

func runCalendarRouter(secure *echo.Group, calendarService services.CalendarServiceInterface, logger *zap.Logger) {
	ctrl := controllers.NewCalendarController(calendarService, logger)

	secure.GET("/calendar", ctrl.GetMonth)
	secure.POST("/calendar/events", ctrl.CreateEvent)
	secure.DELETE("/calendar/events/:id", ctrl.DeleteEvent)
}

func runDashboardRouter(secure *echo.Group, dashboardService services.DashboardServiceInterface, logger *zap.Logger) {
	ctrl := controllers.NewDashboardController(dashboardService, logger)
	secure.GET("/dashboard/stats", ctrl.GetDashboardStats)
}

func runSettingsRouter(secure *echo.Group, settingsService services.SettingsServiceInterface, logger *zap.Logger) {
	ctrl := controllers.NewSettingsController(settingsService, logger)

	secure.GET("/settings/theme", ctrl.GetTheme)
	secure.PUT("/settings/theme", ctrl.SetTheme)
}
