package validation

import (
	"github.com/asaskevich/govalidator"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"equipment-dashboard/internal/entities"
)

// registerRules registers the tags used in DTO struct tags.
func registerRules(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"custom_email":         isGoodEmailFormat,
		"equipment_status":     isEquipmentStatus,
		"maintenance_priority": isMaintenancePriority,
		"maintenance_status":   isMaintenanceStatus,
		"theme":                isTheme,
		"notblank":             validators.NotBlank,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

func isGoodEmailFormat(fl validator.FieldLevel) bool {
	return govalidator.IsEmail(fl.Field().String())
}

func isEquipmentStatus(fl validator.FieldLevel) bool {
	return entities.EquipmentStatus(fl.Field().String()).Valid()
}

func isMaintenancePriority(fl validator.FieldLevel) bool {
	return entities.MaintenancePriority(fl.Field().String()).Valid()
}

// Only stored statuses are writable; Overdue is derived.
func isMaintenanceStatus(fl validator.FieldLevel) bool {
	return entities.MaintenanceStatus(fl.Field().String()).Stored()
}

func isTheme(fl validator.FieldLevel) bool {
	return entities.ValidTheme(fl.Field().String())
}
