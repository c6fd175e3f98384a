package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	usernameRegexp = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)
	phoneRegexp    = regexp.MustCompile(`^\+?[0-9 ]{7,20}$`)
)

// Error ошибка валидации с человекочитаемым сообщением
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NewError создает ошибку валидации для произвольной проверки
func NewError(field, message string) *Error {
	return &Error{Field: field, Message: message}
}

// Message возвращает текст ошибки валидации из цепочки err или fallback
func Message(err error, fallback string) string {
	var vErr *Error
	if errors.As(err, &vErr) {
		return vErr.Message
	}
	return fallback
}

// Validator обёртка над go-playground/validator с человекочитаемыми сообщениями
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// В сообщениях используем имена полей из json-тегов
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRegexp.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRegexp.MatchString(fl.Field().String())
	})

	return &Validator{validate: v}
}

// Struct валидирует структуру и возвращает первую ошибку в виде понятного сообщения
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		return &Error{Field: validationErrs[0].Field(), Message: message(validationErrs[0])}
	}
	return err
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "username":
		return fmt.Sprintf("%s may contain only letters, digits, '_', '.' and '-'", field)
	case "phone":
		return fmt.Sprintf("%s must be a valid phone number", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
