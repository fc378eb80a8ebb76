package controllers

import (
	"github.com/labstack/echo/v4"

	"equipment-dashboard/internal/authz"
	apperrors "equipment-dashboard/pkg/errors"
	"equipment-dashboard/pkg/utils"
)

// bindAndValidate decodes the request body into payload and runs the struct rules on it.
func bindAndValidate(ctx echo.Context, payload interface{}) error {
	if err := ctx.Bind(payload); err != nil {
		return apperrors.NewInvalidInputError("malformed request body")
	}
	return ctx.Validate(payload)
}

func sessionOf(ctx echo.Context) (authz.Session, error) {
	return authz.SessionFromContext(ctx.Request().Context())
}

func idParam(ctx echo.Context) (uint64, error) {
	return utils.ParseID(ctx.Param("id"))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
