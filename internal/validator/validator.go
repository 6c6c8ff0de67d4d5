package validator

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"smartrent_backend/pkg/apperrors"
)

// Validator wraps go-playground/validator and translates failures into
// AppErrors.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	return &Validator{validate: validator.New()}
}

// ValidateStruct checks a DTO and returns a validation AppError whose
// Details map each failing field to a readable message.
func (v *Validator) ValidateStruct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.InternalError(err)
	}

	details := make(map[string]interface{}, len(validationErrors))
	for _, fe := range validationErrors {
		details[strings.ToLower(fe.Field())] = messageFor(fe)
	}
	return apperrors.New(apperrors.CodeValidationFailed, "validation",
		"Datos inválidos", http.StatusBadRequest).WithDetails(details)
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es obligatorio"
	case "email":
		return "debe ser un correo válido"
	case "min":
		return fmt.Sprintf("debe tener al menos %s caracteres", fe.Param())
	case "max":
		return fmt.Sprintf("no puede exceder %s caracteres", fe.Param())
	case "gt":
		return fmt.Sprintf("debe ser mayor que %s", fe.Param())
	case "gte":
		return fmt.Sprintf("debe ser mayor o igual a %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("debe ser uno de: %s", fe.Param())
	default:
		return fmt.Sprintf("no cumple la regla %s", fe.Tag())
	}
}
