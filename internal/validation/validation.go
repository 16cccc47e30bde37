// Package validation настраивает go-playground/validator для DTO запросов
// и переводит его ошибки в domain.ValidationError.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/0101Programmer/orderManagementSystem/internal/domain"
)

// New возвращает validator, который называет поля по тегам json/form, а не по именам Go.
func New() *validatorv10.Validate {
	v := validatorv10.New()
	v.RegisterTagNameFunc(fieldName)
	return v
}

func fieldName(field reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return field.Name
}

// Struct проверяет DTO и возвращает первую ошибку как *domain.ValidationError.
func Struct(v *validatorv10.Validate, dto any) error {
	err := v.Struct(dto)
	if err == nil {
		return nil
	}

	var fieldErrs validatorv10.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validate request: %w", err)
	}
	return ToDomainError(fieldErrs[0])
}

// ToDomainError формирует человекочитаемое сообщение для одного поля.
func ToDomainError(fe validatorv10.FieldError) *domain.ValidationError {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return domain.NewValidationError(field, "%s field is required", field)
	case "gte", "min":
		return domain.NewValidationError(field, "%s must be greater than or equal to %s", field, fe.Param())
	case "oneof":
		return domain.NewValidationError(field, "%s must be one of: %s", field,
			strings.Join(strings.Fields(fe.Param()), ", "))
	default:
		return domain.NewValidationError(field, "%s failed %q validation", field, fe.Tag())
	}
}
