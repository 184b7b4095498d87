package form

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/aanand-mishra/student-registration/internal/types"
)

// validate is shared by every controller; a *validator.Validate caches
// struct metadata and is safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their JSON name so errors line up with the names
	// clients pass to UpdateField.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// validateRegistration checks every required field and returns one
// FieldError per missing value. It returns nil when the form is valid.
func validateRegistration(reg types.Registration) FieldErrors {
	err := validate.Struct(reg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Only reachable if Registration stops being a struct.
		panic(err)
	}

	errs := make(FieldErrors, len(verrs))
	for _, e := range verrs {
		errs[e.Field()] = fieldError(e.Field(), e.Tag())
	}
	return errs
}

// validateField checks a single field, for re-validation on change.
func validateField(field types.Field, value string) (FieldError, bool) {
	if !field.Required {
		return FieldError{}, true
	}
	if err := validate.Var(value, "notblank"); err != nil {
		return fieldError(field.Name, "notblank"), false
	}
	return FieldError{}, true
}

func fieldError(name, tag string) FieldError {
	f, _ := types.LookupField(name)
	switch tag {
	case "notblank", "required":
		msg := f.Message
		if msg == "" {
			msg = name + " is required"
		}
		return FieldError{Code: CodeRequired, Message: msg}
	default:
		return FieldError{Code: tag, Message: name + " is invalid"}
	}
}
