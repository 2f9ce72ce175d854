package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Houeta/staff-console/internal/models"
	"github.com/Houeta/staff-console/internal/validation"
)

func validDraft() models.Draft {
	return models.Draft{Name: "Bob", Age: "25", Department: "Eng", Position: "Dev"}
}

func TestValidate_ValidDraft(t *testing.T) {
	t.Parallel()

	for _, variant := range []validation.Variant{validation.VariantBasic, validation.VariantRefined} {
		errs := validation.NewRules(variant).Validate(validDraft())
		assert.Empty(t, errs, "variant %s", variant)
	}
}

func TestValidate_BlankFields(t *testing.T) {
	t.Parallel()

	rules := validation.NewRules(validation.VariantBasic)

	tests := []struct {
		field   string
		mutate  func(d *models.Draft)
		message string
	}{
		{models.FieldName, func(d *models.Draft) { d.Name = "   " }, "Name is required"},
		{models.FieldAge, func(d *models.Draft) { d.Age = "" }, "Age must be a number and at least 18"},
		{models.FieldDepartment, func(d *models.Draft) { d.Department = "" }, "Department is required"},
		{models.FieldPosition, func(d *models.Draft) { d.Position = "\t" }, "Position is required"},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			t.Parallel()

			draft := validDraft()
			tt.mutate(&draft)

			errs := rules.Validate(draft)
			require.Len(t, errs, 1)
			assert.Equal(t, tt.message, errs[tt.field])
		})
	}
}

func TestValidate_AllBlank(t *testing.T) {
	t.Parallel()

	errs := validation.NewRules(validation.VariantRefined).Validate(models.Draft{})

	for _, field := range models.Fields {
		assert.Contains(t, errs, field)
	}
}

func TestValidate_Age(t *testing.T) {
	t.Parallel()

	rules := validation.NewRules(validation.VariantBasic)

	const (
		tooYoung = "Age must be a number and at least 18"
		notWhole = "Age must be a whole number no greater than 150"
	)

	tests := []struct {
		age  string
		want string
	}{
		{"18", ""},
		{"65", ""},
		{" 30 ", ""},
		{"18.0", ""},
		{"150", ""},
		{"17", tooYoung},
		{"17.9", tooYoung},
		{"0", tooYoung},
		{"-20", tooYoung},
		{"abc", tooYoung},
		{"NaN", tooYoung},
		{"Inf", tooYoung},
		{"twenty", tooYoung},
		{"18.5", notWhole},
		{"151", notWhole},
		{"1e20", notWhole},
		{"3000000000", notWhole},
	}

	for _, tt := range tests {
		draft := validDraft()
		draft.Age = tt.age

		errs := rules.Validate(draft)
		if tt.want != "" {
			assert.Equal(t, tt.want, errs[models.FieldAge], "age %q", tt.age)
		} else {
			assert.NotContains(t, errs, models.FieldAge, "age %q", tt.age)
		}
	}
}

func TestValidate_RefinedDigitRules(t *testing.T) {
	t.Parallel()

	rules := validation.NewRules(validation.VariantRefined)

	tests := []struct {
		name       string
		draft      models.Draft
		field      string
		wantErrMsg string
	}{
		{
			name:       "numeric name",
			draft:      models.Draft{Name: "12345", Age: "30", Department: "Eng", Position: "Dev"},
			field:      models.FieldName,
			wantErrMsg: "Name cannot be a number",
		},
		{
			name:       "name with digit",
			draft:      models.Draft{Name: "Bob2", Age: "30", Department: "Eng", Position: "Dev"},
			field:      models.FieldName,
			wantErrMsg: "Name cannot contain numbers",
		},
		{
			name:       "numeric department",
			draft:      models.Draft{Name: "Bob", Age: "30", Department: "42", Position: "Dev"},
			field:      models.FieldDepartment,
			wantErrMsg: "Department cannot be a number",
		},
		{
			name:       "department with digit",
			draft:      models.Draft{Name: "Bob", Age: "30", Department: "R&D 2", Position: "Dev"},
			field:      models.FieldDepartment,
			wantErrMsg: "Department cannot contain numbers",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			errs := rules.Validate(tt.draft)
			require.Len(t, errs, 1)
			assert.Equal(t, tt.wantErrMsg, errs[tt.field])
		})
	}
}

func TestValidate_RefinedAcceptsNumberWords(t *testing.T) {
	t.Parallel()

	rules := validation.NewRules(validation.VariantRefined)

	for _, name := range []string{"Inf", "infinity", "NaN"} {
		draft := validDraft()
		draft.Name = name
		draft.Department = name

		assert.Empty(t, rules.Validate(draft), "name %q", name)
	}
}

func TestValidate_BasicIgnoresDigits(t *testing.T) {
	t.Parallel()

	draft := models.Draft{Name: "Bob2", Age: "30", Department: "42", Position: "Level 3"}

	assert.Empty(t, validation.NewRules(validation.VariantBasic).Validate(draft))
}

func TestValidate_PositionMayContainDigits(t *testing.T) {
	t.Parallel()

	draft := validDraft()
	draft.Position = "Engineer 2"

	assert.Empty(t, validation.NewRules(validation.VariantRefined).Validate(draft))
}

func TestValidate_DoesNotMutateDraft(t *testing.T) {
	t.Parallel()

	draft := models.Draft{Name: "  Bob  ", Age: " 25", Department: "Eng ", Position: "Dev"}
	before := draft

	validation.NewRules(validation.VariantRefined).Validate(draft)

	assert.Equal(t, before, draft)
}

func TestErrors_Error(t *testing.T) {
	t.Parallel()

	errs := validation.Errors{
		models.FieldPosition: "Position is required",
		models.FieldName:     "Name is required",
	}

	assert.Equal(t, "validation failed: name: Name is required; position: Position is required", errs.Error())
}

func TestParseVariant(t *testing.T) {
	t.Parallel()

	variant, err := validation.ParseVariant(" Refined ")
	require.NoError(t, err)
	assert.Equal(t, validation.VariantRefined, variant)

	variant, err = validation.ParseVariant("basic")
	require.NoError(t, err)
	assert.Equal(t, validation.VariantBasic, variant)

	_, err = validation.ParseVariant("fancy")
	require.ErrorIs(t, err, validation.ErrUnknownVariant)
}
