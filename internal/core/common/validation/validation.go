package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	apperrors "github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/core/money"
	"github.com/shopspring/decimal"
)

type ValidatorFunc func(interface{}) *apperrors.AppError

type FieldValidator struct {
	FieldName  string
	Value      interface{}
	Validators []ValidatorFunc
}

type ValidationBuilder struct {
	fields []FieldValidator
}

func NewValidator() *ValidationBuilder {
	return &ValidationBuilder{
		fields: make([]FieldValidator, 0),
	}
}

func (v *ValidationBuilder) Field(name string, value interface{}) *FieldValidator {
	fv := FieldValidator{
		FieldName:  name,
		Value:      value,
		Validators: make([]ValidatorFunc, 0),
	}
	v.fields = append(v.fields, fv)
	return &v.fields[len(v.fields)-1]
}

func (fv *FieldValidator) Required() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *apperrors.AppError {
		missing := false
		switch v := value.(type) {
		case string:
			missing = strings.TrimSpace(v) == ""
		case *string:
			missing = v == nil || strings.TrimSpace(*v) == ""
		case *int64:
			missing = v == nil
		case *decimal.Decimal:
			missing = v == nil
		case nil:
			missing = true
		}
		if missing {
			return apperrors.NewValidationFieldError(fv.FieldName, "this field is required", apperrors.ErrCodeValidationFailed)
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) MaxLength(max int, code apperrors.ErrorCode) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *apperrors.AppError {
		if v, ok := value.(string); ok {
			if utf8.RuneCountInString(v) > max {
				message := fmt.Sprintf("ensure this field has no more than %d characters", max)
				return apperrors.NewValidationFieldError(fv.FieldName, message, code)
			}
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) MinLength(min int, code apperrors.ErrorCode) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *apperrors.AppError {
		if v, ok := value.(string); ok {
			if utf8.RuneCountInString(v) < min {
				message := fmt.Sprintf("ensure this field has at least %d characters", min)
				return apperrors.NewValidationFieldError(fv.FieldName, message, code)
			}
		}
		return nil
	})
	return fv
}

// Amount checks the decimal precision of a present amount. A nil amount is left to Required.
func (fv *FieldValidator) Amount() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *apperrors.AppError {
		var d decimal.Decimal
		switch v := value.(type) {
		case *decimal.Decimal:
			if v == nil {
				return nil
			}
			d = *v
		case decimal.Decimal:
			d = v
		default:
			return nil
		}

		if err := money.Validate(d); err != nil {
			code := apperrors.ErrCodeInvalidAmount
			if errors.Is(err, money.ErrTooManyDecimalPlaces) {
				code = apperrors.ErrCodeAmountPrecision
			}
			return apperrors.NewValidationFieldError(fv.FieldName, err.Error(), code)
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) OneOf(allowed []string, code apperrors.ErrorCode) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *apperrors.AppError {
		v, ok := value.(string)
		if !ok {
			return nil
		}
		for _, a := range allowed {
			if v == a {
				return nil
			}
		}
		message := fmt.Sprintf("%q is not a valid choice", v)
		return apperrors.NewValidationFieldError(fv.FieldName, message, code)
	})
	return fv
}

func (fv *FieldValidator) Custom(validator func(interface{}) *apperrors.AppError) *FieldValidator {
	fv.Validators = append(fv.Validators, validator)
	return fv
}

// Validate runs every field and reports all failures at once. A field stops at its first failure.
func (v *ValidationBuilder) Validate() *apperrors.AppError {
	var validationErrors []apperrors.ValidationError

	for _, field := range v.fields {
		for _, validator := range field.Validators {
			appErr := validator(field.Value)
			if appErr == nil {
				continue
			}

			if details, ok := appErr.Details.(apperrors.ValidationErrors); ok {
				validationErrors = append(validationErrors, details.Errors...)
			} else {
				validationErrors = append(validationErrors, apperrors.ValidationError{
					Field:   field.FieldName,
					Message: appErr.Message,
					Code:    string(appErr.Code),
				})
			}
			break
		}
	}

	if len(validationErrors) > 0 {
		return apperrors.NewValidationError("Validation failed", apperrors.ErrCodeValidationFailed).
			WithDetails(apperrors.ValidationErrors{Errors: validationErrors})
	}

	return nil
}

// FieldError builds a single-field validation error outside a builder.
func FieldError(field string, err error, code apperrors.ErrorCode) *apperrors.AppError {
	return apperrors.NewValidationFieldError(field, err.Error(), code)
}
