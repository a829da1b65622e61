// Package inputval provides form input validation using waffle/pantry/validate.
//
// Define an input struct with validate tags, populate it from form values,
// and call Validate. The first failing field is reported so handlers can map
// it to a localized message:
//
//	type contactInput struct {
//	    Name  string `json:"name" validate:"required"`
//	    Email string `json:"email" validate:"required,siteemail"`
//	}
//
//	if fe, ok := inputval.Validate(in).First(); ok {
//	    // fe.Field == "email", fe.Rule == "siteemail"
//	}
package inputval

import (
	"strings"
	"sync"

	"github.com/dalemusser/stratascout/internal/app/system/authutil"
	"github.com/dalemusser/stratascout/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/validate"
)

// Result holds validation failures in field order.
type Result struct {
	Errors []FieldError
}

// FieldError is one failed rule. Field is lower-cased.
type FieldError struct {
	Field string
	Rule  string
	Param string
}

// HasErrors returns true if there are any validation errors.
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// First returns the first failure, if any.
func (r *Result) First() (FieldError, bool) {
	if len(r.Errors) == 0 {
		return FieldError{}, false
	}
	return r.Errors[0], true
}

var (
	customValidator *validate.Validator
	validatorOnce   sync.Once
)

func getValidator() *validate.Validator {
	validatorOnce.Do(func() {
		customValidator = validate.New(validate.WithStopOnFirstError())

		// siteemail: the loose address check used by the contact form,
		// which accepts non-ASCII local parts.
		customValidator.RegisterRuleFunc("siteemail", func(value any) bool {
			if s, ok := value.(string); ok {
				return authutil.IsValidEmail(s)
			}
			return false
		}, "siteemail")

		// icon: one of the offered achievement icon classes.
		customValidator.RegisterRuleFunc("icon", func(value any) bool {
			if s, ok := value.(string); ok {
				return models.IsKnownIcon(s)
			}
			return false
		}, "icon")
	})
	return customValidator
}

// Validate checks s against its validate tags.
//
// Rules from pantry/validate (required, min, max, oneof, ...) are available,
// plus:
//   - siteemail: something@something.something with no whitespace
//   - icon: a known achievement icon class
func Validate(s any) *Result {
	result := &Result{}

	err := getValidator().Struct(s)
	if err == nil {
		return result
	}

	if errs, ok := err.(validate.Errors); ok {
		for _, e := range errs {
			result.Errors = append(result.Errors, FieldError{
				Field: strings.ToLower(e.Field),
				Rule:  e.Rule,
				Param: e.Param,
			})
		}
	}
	return result
}
