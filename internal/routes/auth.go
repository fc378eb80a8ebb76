package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"equipment-dashboard/internal/controllers"
	"equipment-dashboard/internal/services"
)

func runAuthRouter(api, secure *echo.Group, authService services.AuthServiceInterface, logger *zap.Logger) {
	authCtrl := controllers.NewAuthController(authService, logger)

	api.POST("/auth/login", authCtrl.Login)
	secure.GET("/auth/me", authCtrl.Me)
}
