// Package contact validates contact form submissions.
package contact

import (
	"strings"
)

// Field names as they appear on the wire.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldCompany = "company"
	FieldMessage = "message"
)

// fieldOrder fixes the order violations are reported in.
var fieldOrder = []string{FieldName, FieldEmail, FieldCompany, FieldMessage}

// Form is the raw, unvalidated form as decoded from a request.
type Form struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Company string `json:"company,omitempty" validate:"omitempty,max=200"`
	Message string `json:"message" validate:"required,min=10,max=2000"`
}

// normalized returns a copy with surrounding whitespace removed.
func (f Form) normalized() Form {
	return Form{
		Name:    strings.TrimSpace(f.Name),
		Email:   strings.TrimSpace(f.Email),
		Company: strings.TrimSpace(f.Company),
		Message: strings.TrimSpace(f.Message),
	}
}

// Submission is a validated contact request. It lives for one request only
// and is passed by value so consumers cannot mutate the caller's copy.
type Submission struct {
	Name    string
	Email   string
	Company string // empty when not provided
	Message string
}

// HasCompany reports whether the optional company field was provided.
func (s Submission) HasCompany() bool {
	return s.Company != ""
}

// Violation is a single field-level rule failure.
type Violation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError carries every violation found in a submission.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.Field + ": " + v.Reason
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Result is either a valid Submission or a list of violations.
type Result struct {
	submission Submission
	violations []Violation
}

// Valid wraps a validated submission.
func Valid(s Submission) Result {
	return Result{submission: s}
}

// Invalid wraps one or more violations.
func Invalid(violations ...Violation) Result {
	return Result{violations: violations}
}

// IsValid reports whether validation passed.
func (r Result) IsValid() bool {
	return len(r.violations) == 0
}

// Submission returns the validated submission and true, or false when invalid.
func (r Result) Submission() (Submission, bool) {
	if !r.IsValid() {
		return Submission{}, false
	}
	return r.submission, true
}

// Violations returns a copy of the violations, nil when valid.
func (r Result) Violations() []Violation {
	if r.IsValid() {
		return nil
	}
	out := make([]Violation, len(r.violations))
	copy(out, r.violations)
	return out
}

// Err returns a *ValidationError when invalid, nil otherwise.
func (r Result) Err() error {
	if r.IsValid() {
		return nil
	}
	return &ValidationError{Violations: r.Violations()}
}
