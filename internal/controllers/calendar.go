package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"equipment-dashboard/internal/calendar"
	"equipment-dashboard/internal/dto"
	"equipment-dashboard/internal/services"
	apperrors "equipment-dashboard/pkg/errors"
	"equipment-dashboard/pkg/utils"
)

type CalendarController struct {
	calendarService services.CalendarServiceInterface
	logger          *zap.Logger
}

func NewCalendarController(service services.CalendarServiceInterface, logger *zap.Logger) *CalendarController {
	return &CalendarController{calendarService: service, logger: logger}
}

// GetMonth serves ?year=2024&month=3; both default to the current month.
func (c *CalendarController) GetMonth(ctx echo.Context) error {
	now := c.calendarService.Now()
	year, month := now.Year(), int(now.Month())

	if raw := ctx.QueryParam("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil || y < 1 {
			return utils.ErrorResponse(ctx, apperrors.NewInvalidInputError("invalid year %q", raw), c.logger)
		}
		year = y
	}
	if raw := ctx.QueryParam("month"); raw != "" {
		m, err := strconv.Atoi(raw)
		if err != nil {
			return utils.ErrorResponse(ctx, apperrors.NewInvalidInputError("invalid month %q", raw), c.logger)
		}
		month = m
	}

	filter := services.CalendarFilter{
		Status:        ctx.QueryParam("status"),
		Priority:      ctx.QueryParam("priority"),
		EquipmentType: firstNonEmpty(ctx.QueryParam("type"), ctx.QueryParam("equipment_type")),
		Source:        ctx.QueryParam("source"),
	}
	days, err := c.calendarService.GetMonth(ctx.Request().Context(), year, time.Month(month), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	weeks := calendar.Weeks(days)
	return utils.SuccessResponse(ctx, dto.CalendarMonthDTO{
		Year:  year,
		Month: month,
		Weeks: len(weeks),
		Days:  days,
	}, "", http.StatusOK)
}

func (c *CalendarController) CreateEvent(ctx echo.Context) error {
	session, err := sessionOf(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.CreateCalendarEventDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.calendarService.CreateEvent(ctx.Request().Context(), session, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "event created", http.StatusCreated)
}

func (c *CalendarController) DeleteEvent(ctx echo.Context) error {
	session, err := sessionOf(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	id, err := idParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.calendarService.DeleteEvent(ctx.Request().Context(), session, id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, dto.IDResponseDTO{ID: id}, "event deleted", http.StatusOK)
}
