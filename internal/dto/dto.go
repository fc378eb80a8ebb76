package dto

import (
	"strings"
	"time"

	"github.com/aarondl/null/v8"

	apperrors "equipment-dashboard/pkg/errors"
)

const DateLayout = "2006-01-02"

// ParseDate converts an optional YYYY-MM-DD string into a null.Time.
func ParseDate(field string, value *string) (null.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return null.Time{}, nil
	}
	t, err := time.Parse(DateLayout, strings.TrimSpace(*value))
	if err != nil {
		return null.Time{}, apperrors.NewInvalidInputError("%s must be a date in YYYY-MM-DD format", field)
	}
	return null.TimeFrom(t), nil
}

func FormatDate(t null.Time) *string {
	if !t.Valid {
		return nil
	}
	s := t.Time.Format(DateLayout)
	return &s
}

type IDResponseDTO struct {
	ID uint64 `json:"id"`
}
