package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"equipment-dashboard/internal/controllers"
	"equipment-dashboard/internal/services"
)

func runMaintenanceRouter(secure *echo.Group, maintenanceService services.MaintenanceServiceInterface, logger *zap.Logger) {
	ctrl := controllers.NewMaintenanceController(maintenanceService, logger)

	group := secure.Group("/maintenance")
	{
		group.GET("", ctrl.GetMaintenance)
		group.POST("", ctrl.CreateMaintenance)
		group.GET("/:id", ctrl.FindMaintenance)
		group.PUT("/:id", ctrl.UpdateMaintenance)
		group.DELETE("/:id", ctrl.DeleteMaintenance)
		group.POST("/:id/complete", ctrl.CompleteMaintenance)
	}
}
