package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/atakan/campusadmin/internal/pkg/apperrors"
)

// validate is the shared validator instance; validator.Validate is safe for
// concurrent use and caches struct metadata.
var validate = validator.New()

// Struct validates a struct against its `validate` tags. Failures are
// returned as an application validation error whose message names the
// offending fields.
func Struct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.NewValidationError("invalid request data")
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}

	return apperrors.NewValidationError(strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "datetime":
		return fmt.Sprintf("%s must be a date in %s format", fe.Field(), fe.Param())
	case "uppercase":
		return fmt.Sprintf("%s must be uppercase", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
