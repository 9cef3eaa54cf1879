package validator

import (
	"fmt"

	"github.com/cinehall/cinehall/internal/domain"
	"github.com/go-playground/validator/v10"
)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("presentation_type", validatePresentationType)
	validator.RegisterValidation("seat_category", validateSeatCategory)

	return validator
}

func validatePresentationType(fl validator.FieldLevel) bool {
	switch domain.PresentationType(fl.Field().String()) {
	case domain.Presentation2D, domain.Presentation3D, domain.PresentationIMAX, domain.Presentation4DX:
		return true
	}

	return false
}

func validateSeatCategory(fl validator.FieldLevel) bool {
	switch domain.SeatCategory(fl.Field().String()) {
	case domain.SeatStandard, domain.SeatVIP, domain.SeatAccessible:
		return true
	}

	return false
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", err.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", err.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "presentation_type":
		return "must be one of 2D, 3D, IMAX, 4DX"
	case "seat_category":
		return "must be one of standard, vip, accessible"
	default:
		return "is invalid"
	}
}
