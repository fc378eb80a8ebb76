package controllers

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"equipment-dashboard/internal/services"
	"equipment-dashboard/pkg/utils"
)

type ActivityLogController struct {
	activityService services.ActivityLogServiceInterface
	logger          *zap.Logger
}

func NewActivityLogController(service services.ActivityLogServiceInterface, logger *zap.Logger) *ActivityLogController {
	return &ActivityLogController{activityService: service, logger: logger}
}

func (c *ActivityLogController) GetEntries(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	res, total, err := c.activityService.GetEntries(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.ListResponse(ctx, res, "activity log", total, filter)
}
