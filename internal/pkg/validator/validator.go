package validator

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/apperror"
	playground "github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) Unwrap() error {
	return apperror.ErrValidation
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		if _, exists := result[err.Field]; exists {
			continue
		}
		result[err.Field] = err.Message
	}
	return result
}

var (
	structValidator *playground.Validate
	once            sync.Once
)

func instance() *playground.Validate {
	once.Do(func() {
		v := playground.New(playground.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("date", func(fl playground.FieldLevel) bool {
			_, ok := IsValidDate(fl.Field().String())
			return ok
		})
		structValidator = v
	})
	return structValidator
}

// Struct runs the `validate` tags of s and converts failures into
// ValidationErrors keyed by JSON field name.
func Struct(s interface{}) ValidationErrors {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return ValidationErrors{{Field: "body", Message: err.Error()}}
	}

	errs := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, ValidationError{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}
	return errs
}

func message(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email address"
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	case "min":
		return fe.Field() + " must be at least " + fe.Param() + " characters long"
	case "max":
		return fe.Field() + " must not exceed " + fe.Param() + " characters"
	case "date":
		return fe.Field() + " must be a date in YYYY-MM-DD format"
	default:
		return fe.Field() + " is invalid"
	}
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email validation
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

var employeeCodeRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{1,31}$`)

// IsValidEmployeeCode accepts 2-32 letters, digits, underscores and hyphens.
func IsValidEmployeeCode(code string) bool {
	return employeeCodeRegex.MatchString(code)
}
