package validation_test

import (
	"errors"
	"testing"

	"github.com/aarondl/null/v8"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equipment-dashboard/internal/dto"
	"equipment-dashboard/pkg/validation"
)

func validEquipment() dto.CreateEquipmentDTO {
	return dto.CreateEquipmentDTO{
		Name:         "Centrifuge",
		Type:         "Lab",
		Status:       "Available",
		Location:     "Room 4",
		SerialNumber: "CF-001",
	}
}

// failedTags maps field name to the failing tag.
func failedTags(t *testing.T, err error) map[string]string {
	t.Helper()
	var fieldErrs validator.ValidationErrors
	require.True(t, errors.As(err, &fieldErrs), "expected field errors, got %v", err)
	tags := map[string]string{}
	for _, fe := range fieldErrs {
		tags[fe.Field()] = fe.Tag()
	}
	return tags
}

func TestValidate_AcceptsValidEquipment(t *testing.T) {
	assert.NoError(t, validation.New().Validate(validEquipment()))
}

func TestValidate_RejectsBlankRequiredText(t *testing.T) {
	v := validation.New()

	in := validEquipment()
	in.Name = "   "
	in.SerialNumber = "\t"
	tags := failedTags(t, v.Validate(in))
	assert.Equal(t, "notblank", tags["Name"])
	assert.Equal(t, "notblank", tags["SerialNumber"])

	tags = failedTags(t, v.Validate(dto.CreateCalendarEventDTO{Title: "  ", EventDate: "2024-05-01"}))
	assert.Equal(t, "notblank", tags["Title"])

	tags = failedTags(t, v.Validate(dto.AdjustInventoryDTO{Adjustment: 2, Reason: " "}))
	assert.Equal(t, "notblank", tags["Reason"])
}

func TestValidate_BlankPartialUpdate(t *testing.T) {
	blank := "  "
	tags := failedTags(t, validation.New().Validate(dto.UpdateEquipmentDTO{Name: &blank}))
	assert.Equal(t, "notblank", tags["Name"])
}

func TestValidate_CostFitsStoredPrecision(t *testing.T) {
	v := validation.New()

	in := validEquipment()
	in.Cost = null.Float64From(9999999999.99)
	assert.NoError(t, v.Validate(in))

	in.Cost = null.Float64From(1e11)
	assert.Equal(t, "max", failedTags(t, v.Validate(in))["Cost"])

	tags := failedTags(t, v.Validate(dto.CreateInventoryItemDTO{Name: "Gloves", Category: "PPE", UnitPrice: 1e12}))
	assert.Equal(t, "max", tags["UnitPrice"])
}
