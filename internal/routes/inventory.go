package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"equipment-dashboard/internal/controllers"
	"equipment-dashboard/internal/services"
)

func runInventoryRouter(secure *echo.Group, inventoryService services.InventoryServiceInterface, logger *zap.Logger) {
	ctrl := controllers.NewInventoryController(inventoryService, logger)

	group := secure.Group("/inventory")
	{
		group.GET("", ctrl.GetItems)
		group.POST("", ctrl.CreateItem)
		group.GET("/:id", ctrl.FindItem)
		group.PUT("/:id", ctrl.UpdateItem)
		group.DELETE("/:id", ctrl.DeleteItem)
		group.POST("/:id/adjust", ctrl.AdjustQuantity)
		group.GET("/:id/transactions", ctrl.GetTransactions)
	}
}
