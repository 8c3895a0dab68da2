package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/proctor_bot/internal/model"
	"github.com/go-playground/validator/v10"
)

// ValidationErrors ошибки валидации полей в понятном пользователю виде
type ValidationErrors []FieldError

type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

func (v ValidationErrors) Error() string {
	messages := make([]string, 0, len(v))
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// Validator обёртка над validator/v10 с правилами предметной области
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()

	// Ошибки регистрации возможны только при пустом имени тега
	_ = v.RegisterValidation("weekday", validateWeekday)
	_ = v.RegisterValidation("clock", validateClock)
	_ = v.RegisterValidation("designation", validateDesignation)

	return &Validator{validate: v}
}

// Struct проверяет структуру по тегам validate
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return translate(validationErrs)
	}
	return err
}

func translate(errs validator.ValidationErrors) ValidationErrors {
	out := make(ValidationErrors, 0, len(errs))
	for _, err := range errs {
		out = append(out, FieldError{Field: err.Field(), Message: message(err)})
	}
	return out
}

func message(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must be at most " + err.Param() + " characters"
	case "gt":
		return "must be greater than " + err.Param()
	case "gte":
		return "must be at least " + err.Param()
	case "lte":
		return "must be at most " + err.Param()
	case "weekday":
		return "must be a day name like Monday"
	case "clock":
		return "must be a time in HH:MM format"
	case "designation":
		return fmt.Sprintf("must be one of %q, %q, %q",
			model.DesignationAssistantProfessor, model.DesignationAssociateProfessor, model.DesignationProfessor)
	default:
		return "failed " + err.Tag() + " check"
	}
}

func validateWeekday(fl validator.FieldLevel) bool {
	_, ok := model.ParseWeekday(fl.Field().String())
	return ok
}

func validateClock(fl validator.FieldLevel) bool {
	_, err := time.Parse("15:04", strings.TrimSpace(fl.Field().String()))
	return err == nil
}

func validateDesignation(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case model.DesignationAssistantProfessor, model.DesignationAssociateProfessor, model.DesignationProfessor:
		return true
	}
	return false
}
