package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"equipment-dashboard/internal/dto"
	"equipment-dashboard/internal/services"
	"equipment-dashboard/pkg/utils"
)

type AuthController struct {
	authService services.AuthServiceInterface
	logger      *zap.Logger
}

func NewAuthController(authService services.AuthServiceInterface, logger *zap.Logger) *AuthController {
	return &AuthController{authService: authService, logger: logger}
}

func (ctrl *AuthController) errorResponse(c echo.Context, err error) error {
	return utils.ErrorResponse(c, err, ctrl.logger)
}

func (ctrl *AuthController) Login(c echo.Context) error {
	var payload dto.LoginDTO
	if err := bindAndValidate(c, &payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	res, err := ctrl.authService.Login(c.Request().Context(), payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	ctrl.logger.Info("user logged in", zap.Uint64("userID", res.User.ID))
	return utils.SuccessResponse(c, res, "logged in", http.StatusOK)
}

func (ctrl *AuthController) Me(c echo.Context) error {
	session, err := sessionOf(c)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	me, err := ctrl.authService.Me(c.Request().Context(), session)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, me, "", http.StatusOK)
}
