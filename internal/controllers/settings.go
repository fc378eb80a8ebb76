package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"equipment-dashboard/internal/dto"
	"equipment-dashboard/internal/services"
	"equipment-dashboard/pkg/utils"
)

type SettingsController struct {
	settingsService services.SettingsServiceInterface
	logger          *zap.Logger
}

func NewSettingsController(service services.SettingsServiceInterface, logger *zap.Logger) *SettingsController {
	return &SettingsController{settingsService: service, logger: logger}
}

func (c *SettingsController) GetTheme(ctx echo.Context) error {
	session, err := sessionOf(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	theme := c.settingsService.GetTheme(ctx.Request().Context(), session.UserID)
	return utils.SuccessResponse(ctx, dto.ThemeDTO{Theme: theme}, "", http.StatusOK)
}

func (c *SettingsController) SetTheme(ctx echo.Context) error {
	session, err := sessionOf(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.ThemeDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.settingsService.SetTheme(ctx.Request().Context(), session.UserID, payload.Theme); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, payload, "theme saved", http.StatusOK)
}
