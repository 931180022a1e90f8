package contact

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRaw() map[string]any {
	return map[string]any{
		"name":    "Juan Carlos Pérez",
		"email":   "juan.perez@empresa.com",
		"company": "Empresa Tech Solutions",
		"message": "We need to connect a legacy ERP with new APIs.",
	}
}

func TestValidate_AcceptsValidInput(t *testing.T) {
	res := Validate(validRaw())

	require.True(t, res.IsValid(), "violations: %v", res.Violations())
	sub, ok := res.Submission()
	require.True(t, ok)
	assert.Equal(t, "Juan Carlos Pérez", sub.Name)
	assert.Equal(t, "Empresa Tech Solutions", sub.Company)
	assert.NoError(t, res.Err())
}

func TestValidate_TrimsStrings(t *testing.T) {
	raw := validRaw()
	raw["name"] = "  Ana  "
	raw["email"] = " ana@example.com\n"
	raw["company"] = "   "

	res := Validate(raw)
	sub, ok := res.Submission()
	require.True(t, ok)

	want := Submission{
		Name:    "Ana",
		Email:   "ana@example.com",
		Company: "",
		Message: "We need to connect a legacy ERP with new APIs.",
	}
	if diff := cmp.Diff(want, sub); diff != "" {
		t.Errorf("submission mismatch (-want +got):\n%s", diff)
	}
	assert.False(t, sub.HasCompany())
}

func TestValidate_CompanyOptional(t *testing.T) {
	raw := validRaw()
	delete(raw, "company")

	res := Validate(raw)
	assert.True(t, res.IsValid())

	raw["company"] = nil
	assert.True(t, Validate(raw).IsValid())
}

func TestValidate_MessageBoundaries(t *testing.T) {
	tests := []struct {
		length int
		valid  bool
	}{
		{9, false},
		{10, true},
		{2000, true},
		{2001, false},
	}

	for _, tt := range tests {
		raw := validRaw()
		raw["message"] = strings.Repeat("m", tt.length)

		res := Validate(raw)
		assert.Equal(t, tt.valid, res.IsValid(), "message length %d", tt.length)
		if !tt.valid {
			require.Len(t, res.Violations(), 1)
			assert.Equal(t, FieldMessage, res.Violations()[0].Field)
		}
	}
}

func TestValidate_LengthsCountCharacters(t *testing.T) {
	raw := validRaw()
	// 200 two-byte runes: 400 bytes but within the limit
	raw["name"] = strings.Repeat("ñ", 200)
	assert.True(t, Validate(raw).IsValid())

	raw["name"] = strings.Repeat("ñ", 201)
	assert.False(t, Validate(raw).IsValid())
}

func TestValidate_NameAndCompanyLimits(t *testing.T) {
	raw := validRaw()
	raw["name"] = strings.Repeat("n", 200)
	raw["company"] = strings.Repeat("c", 200)
	assert.True(t, Validate(raw).IsValid())

	raw["company"] = strings.Repeat("c", 201)
	res := Validate(raw)
	require.False(t, res.IsValid())
	assert.Equal(t, []Violation{{Field: FieldCompany, Reason: "must be at most 200 characters"}}, res.Violations())
}

func TestValidate_Email(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"user@example.com", true},
		{"first.last+tag@sub.example.org", true},
		{"userexample.com", false},
		{"user@", false},
		{"@example.com", false},
		{"user@@example.com", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			raw := validRaw()
			raw["email"] = tt.email
			assert.Equal(t, tt.valid, Validate(raw).IsValid())
		})
	}
}

func TestValidate_CollectsAllViolations(t *testing.T) {
	res := Validate(map[string]any{
		"name":    "",
		"email":   "not-an-email",
		"company": strings.Repeat("x", 300),
		"message": "short",
	})

	want := []Violation{
		{Field: FieldName, Reason: "is required"},
		{Field: FieldEmail, Reason: "must be a valid email address"},
		{Field: FieldCompany, Reason: "must be at most 200 characters"},
		{Field: FieldMessage, Reason: "must be at least 10 characters"},
	}
	if diff := cmp.Diff(want, res.Violations()); diff != "" {
		t.Errorf("violations mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_EmptyMap(t *testing.T) {
	res := Validate(map[string]any{})

	fields := make([]string, 0)
	for _, v := range res.Violations() {
		fields = append(fields, v.Field)
	}
	assert.Equal(t, []string{FieldName, FieldEmail, FieldMessage}, fields)
}

func TestValidate_NonStringValues(t *testing.T) {
	raw := validRaw()
	raw["name"] = 42
	raw["company"] = []string{"a"}
	raw["unknown"] = true

	res := Validate(raw)
	want := []Violation{
		{Field: FieldName, Reason: "must be a string"},
		{Field: FieldCompany, Reason: "must be a string"},
	}
	assert.Equal(t, want, res.Violations())
}

func TestResult_ErrIsValidationError(t *testing.T) {
	res := Validate(map[string]any{"email": "x"})

	err := res.Err()
	require.Error(t, err)

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Len(t, vErr.Violations, 3)
	assert.Contains(t, err.Error(), "email: must be a valid email address")

	_, ok := res.Submission()
	assert.False(t, ok)
}

func TestResult_ViolationsAreCopied(t *testing.T) {
	res := Invalid(Violation{Field: FieldName, Reason: "is required"})
	got := res.Violations()
	got[0].Reason = "mutated"

	assert.Equal(t, "is required", res.Violations()[0].Reason)
}

func TestValidateForm(t *testing.T) {
	res := ValidateForm(Form{
		Name:    "Ana",
		Email:   "ana@example.com",
		Message: "Hello there, we need help.",
	})
	assert.True(t, res.IsValid())

	res = ValidateForm(Form{})
	assert.Len(t, res.Violations(), 3)
}
