package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"equipment-dashboard/internal/controllers"
	"equipment-dashboard/internal/services"
)

func runEquipmentRouter(secure *echo.Group, equipmentService services.EquipmentServiceInterface, importer *services.EquipmentImporter, logger *zap.Logger) {
	ctrl := controllers.NewEquipmentController(equipmentService, importer, logger)

	group := secure.Group("/equipment")
	{
		group.GET("", ctrl.GetEquipments)
		group.POST("", ctrl.CreateEquipment)
		group.PATCH("/status", ctrl.BulkUpdateStatus)
		group.POST("/import", ctrl.ImportEquipment)
		group.GET("/:id", ctrl.FindEquipment)
		group.PUT("/:id", ctrl.UpdateEquipment)
		group.DELETE("/:id", ctrl.DeleteEquipment)
		group.POST("/:id/usage", ctrl.RecordUsage)
	}
}
