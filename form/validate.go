package form

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// phonePattern is the local numbering-plan constraint: exactly 8 digits,
// starting with 8 or 9.
var phonePattern = regexp.MustCompile(`^[89][0-9]{7}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("localphone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("register localphone validation: %v", err))
	}
	return v
}

// ValidationError is a client-side form-rule violation. It is resolved at
// the form boundary and never reaches the network.
type ValidationError struct {
	err validator.ValidationErrors
}

func (e *ValidationError) Error() string {
	messages := make([]string, 0, len(e.err))
	for _, fe := range e.err {
		messages = append(messages, fieldMessage(fe))
	}
	return strings.Join(messages, "; ")
}

func (e *ValidationError) Unwrap() error {
	return e.err
}

// IsValidation returns true if the error is a form-rule violation.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Validate checks a form against its rules and returns a ValidationError
// describing every violated field, or nil.
func Validate(f any) error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return &ValidationError{err: verrs}
	}
	return err
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "localphone":
		return fmt.Sprintf("%s must be 8 digits starting with 8 or 9", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
