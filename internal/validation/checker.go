package validation

import (
	"errors"

	"github.com/deppfellow/frontdesk/internal/lib/optional"
	"github.com/go-playground/validator/v10"
)

// Checker accumulates field errors for requests whose rules depend on
// which fields were sent, such as PATCH payloads.
//
//	var check validation.Checker
//	check.Var("id", r.ID, "required,uuid")
//	validation.CheckOptional(&check, "name", r.Name, "notblank,max=255", false)
//	return check.Err()
type Checker struct {
	errs CustomValidationErrors
}

// Add records a custom error for field.
func (c *Checker) Add(field, message string) {
	c.errs = append(c.errs, CustomValidationError{Field: field, Message: message})
}

// Var validates a single value against a validator tag string.
func (c *Checker) Var(field string, value any, tag string) {
	err := validate.Var(value, tag)
	if err == nil {
		return
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		c.Add(field, err.Error())
		return
	}

	for _, fe := range validationErrors {
		c.Add(field, fieldErrorMessage(field, fe))
	}
}

// Err returns the accumulated errors, or nil when there are none.
func (c *Checker) Err() error {
	if len(c.errs) == 0 {
		return nil
	}
	return c.errs
}

// CheckOptional validates f only when it was sent. Explicit null is
// accepted for nullable fields and rejected otherwise.
func CheckOptional[T any](c *Checker, field string, f optional.Field[T], tag string, nullable bool) {
	if !f.Set {
		return
	}
	if f.Null {
		if !nullable {
			c.Add(field, "cannot be null")
		}
		return
	}
	if tag != "" {
		c.Var(field, f.Value, tag)
	}
}
