package contact

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is safe for concurrent use and caches struct metadata.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks an arbitrary field map against the contact schema.
// Unknown keys are ignored; known keys holding non-string values are violations.
func Validate(raw map[string]any) Result {
	var form Form
	typeErrs := make(map[string]Violation)

	targets := map[string]*string{
		FieldName:    &form.Name,
		FieldEmail:   &form.Email,
		FieldCompany: &form.Company,
		FieldMessage: &form.Message,
	}
	for field, dst := range targets {
		val, ok := raw[field]
		if !ok || val == nil {
			continue
		}
		s, ok := val.(string)
		if !ok {
			typeErrs[field] = Violation{Field: field, Reason: "must be a string"}
			continue
		}
		*dst = s
	}

	return validateForm(form, typeErrs)
}

// ValidateForm checks an already decoded form.
func ValidateForm(f Form) Result {
	return validateForm(f, nil)
}

func validateForm(f Form, preset map[string]Violation) Result {
	form := f.normalized()

	found := make(map[string]Violation, len(preset))
	for k, v := range preset {
		found[k] = v
	}

	if err := validate.Struct(form); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			// only reachable on a programming error in the schema
			panic(fmt.Sprintf("contact: unexpected validator error: %v", err))
		}
		for _, fe := range fieldErrs {
			if _, seen := found[fe.Field()]; seen {
				continue
			}
			found[fe.Field()] = Violation{Field: fe.Field(), Reason: reason(fe)}
		}
	}

	if len(found) > 0 {
		violations := make([]Violation, 0, len(found))
		for _, field := range fieldOrder {
			if v, ok := found[field]; ok {
				violations = append(violations, v)
			}
		}
		return Invalid(violations...)
	}

	return Valid(Submission{
		Name:    form.Name,
		Email:   form.Email,
		Company: form.Company,
		Message: form.Message,
	})
}

// reason turns a validator tag failure into a human-readable sentence.
func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return "is invalid"
	}
}
