package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"equipment-dashboard/internal/dto"
	"equipment-dashboard/internal/services"
	apperrors "equipment-dashboard/pkg/errors"
	"equipment-dashboard/pkg/utils"
)

// maxImportSize bounds an uploaded spreadsheet.
const maxImportSize = 10 << 20

type EquipmentController struct {
	equipmentService services.EquipmentServiceInterface
	importer         *services.EquipmentImporter
	logger           *zap.Logger
}

func NewEquipmentController(
	service services.EquipmentServiceInterface,
	importer *services.EquipmentImporter,
	logger *zap.Logger,
) *EquipmentController {
	return &EquipmentController{
		equipmentService: service,
		importer:         importer,
		logger:           logger,
	}
}

func (c *EquipmentController) GetEquipments(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	res, total, err := c.equipmentService.GetEquipments(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.ListResponse(ctx, res, "equipment list", total, filter)
}

func (c *EquipmentController) FindEquipment(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.equipmentService.FindEquipment(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "", http.StatusOK)
}

func (c *EquipmentController) CreateEquipment(ctx echo.Context) error {
	session, err := sessionOf(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.CreateEquipmentDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipmentService.CreateEquipment(ctx.Request().Context(), session, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "equipment created", http.StatusCreated)
}

func (c *EquipmentController) UpdateEquipment(ctx echo.Context) error {
	session, err := sessionOf(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	id, err := idParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.UpdateEquipmentDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipmentService.UpdateEquipment(ctx.Request().Context(), session, id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "equipment updated", http.StatusOK)
}

func (c *EquipmentController) DeleteEquipment(ctx echo.Context) error {
	session, err := sessionOf(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	id, err := idParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.equipmentService.DeleteEquipment(ctx.Request().Context(), session, id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, dto.IDResponseDTO{ID: id}, "equipment deleted", http.StatusOK)
}

func (c *EquipmentController) BulkUpdateStatus(ctx echo.Context) error {
	session, err := sessionOf(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.BulkEquipmentStatusDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	updated, err := c.equipmentService.BulkUpdateStatus(ctx.Request().Context(), session, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, map[string]int{"updated": updated}, "status updated", http.StatusOK)
}

func (c *EquipmentController) RecordUsage(ctx echo.Context) error {
	session, err := sessionOf(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	id, err := idParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.RecordUsageDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipmentService.RecordUsage(ctx.Request().Context(), session, id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "usage recorded", http.StatusCreated)
}

// ImportEquipment accepts a multipart "file" field holding an xlsx workbook.
func (c *EquipmentController) ImportEquipment(ctx echo.Context) error {
	session, err := sessionOf(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	header, err := ctx.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewInvalidInputError("multipart field \"file\" is required"), c.logger)
	}
	if header.Size > maxImportSize {
		return utils.ErrorResponse(ctx, apperrors.NewInvalidInputError("file exceeds %d MB", maxImportSize>>20), c.logger)
	}
	file, err := header.Open()
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	defer file.Close()

	res, err := c.importer.Import(ctx.Request().Context(), session, file)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	c.logger.Info("equipment imported",
		zap.String("file", header.Filename),
		zap.Int("created", res.Created),
		zap.Uint64("userID", session.UserID),
	)
	return utils.SuccessResponse(ctx, res, "import finished", http.StatusOK)
}
