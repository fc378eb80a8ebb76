package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "equipment-dashboard/pkg/errors"
	"equipment-dashboard/pkg/types"
)

const internalErrorMessage = "internal server error"

type HTTPResponse struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message,omitempty"`
	Data       interface{}       `json:"data,omitempty"`
	Pagination *types.Pagination `json:"pagination,omitempty"`
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int) error {
	return ctx.JSON(code, &HTTPResponse{Success: true, Message: message, Data: body})
}

func ListResponse(ctx echo.Context, body interface{}, message string, total uint64, filter types.Filter) error {
	pagination := types.NewPagination(total, filter.Page, filter.Limit)
	return ctx.JSON(http.StatusOK, &HTTPResponse{
		Success:    true,
		Message:    message,
		Data:       body,
		Pagination: &pagination,
	})
}

// ErrorResponse maps the error taxonomy onto HTTP codes. Storage and other unexpected errors
// are logged and answered with a generic message.
func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	code, message := classify(err)

	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		code, message = httpErr.Code, httpErr.Message
		if httpErr.Err != nil {
			inner, innerMsg := classify(httpErr.Err)
			if inner != http.StatusInternalServerError {
				code, message = inner, innerMsg
			}
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("uri", c.Request().RequestURI),
			zap.Error(err),
		)
	} else {
		logger.Debug("request rejected", zap.Int("code", code), zap.Error(err))
	}

	return c.JSON(code, &HTTPResponse{Success: false, Message: message})
}

func classify(err error) (int, string) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		msgs := make([]string, 0, len(validationErrors))
		for _, e := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("field '%s' failed rule '%s'", e.Field(), e.Tag()))
		}
		return http.StatusBadRequest, "validation error: " + strings.Join(msgs, "; ")
	}

	var invalid *apperrors.InvalidInputError
	if errors.As(err, &invalid) {
		return http.StatusBadRequest, invalid.Message
	}

	var conflict *apperrors.ConflictError
	if errors.As(err, &conflict) {
		return http.StatusConflict, conflict.Message
	}

	var unsupported *apperrors.UnsupportedFormatError
	if errors.As(err, &unsupported) {
		return http.StatusBadRequest, unsupported.Error()
	}

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, apperrors.ErrNotFound.Error()
	case errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest, apperrors.ErrBadRequest.Error()
	case errors.Is(err, apperrors.ErrTooManyAttempts):
		return http.StatusTooManyRequests, apperrors.ErrTooManyAttempts.Error()
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, apperrors.ErrInvalidCredentials.Error()
	case errors.Is(err, apperrors.ErrUnauthorized),
		errors.Is(err, apperrors.ErrSessionNotFound),
		errors.Is(err, apperrors.ErrInvalidToken),
		errors.Is(err, apperrors.ErrTokenExpired):
		return http.StatusUnauthorized, apperrors.ErrUnauthorized.Error()
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusUnauthorized, apperrors.ErrForbidden.Error()
	case errors.Is(err, apperrors.ErrUnsupportedFormat):
		return http.StatusBadRequest, apperrors.ErrUnsupportedFormat.Error()
	}

	return http.StatusInternalServerError, internalErrorMessage
}
