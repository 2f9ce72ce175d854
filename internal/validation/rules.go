package validation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Houeta/staff-console/internal/models"
)

// Variant selects between the basic and the refined rule set.
type Variant string

const (
	VariantBasic   Variant = "basic"
	VariantRefined Variant = "refined"
)

const (
	minimumAge = 18
	digits     = "0123456789"
)

var wholeAgeMsg = fmt.Sprintf("Age must be a whole number no greater than %d", models.MaxAge)

var ErrUnknownVariant = errors.New("unknown ui variant")

// ParseVariant maps configuration text onto a Variant.
func ParseVariant(raw string) (Variant, error) {
	switch Variant(strings.ToLower(strings.TrimSpace(raw))) {
	case VariantBasic:
		return VariantBasic, nil
	case VariantRefined:
		return VariantRefined, nil
	default:
		return "", fmt.Errorf("%w: %q (expected basic or refined)", ErrUnknownVariant, raw)
	}
}

// Errors maps a draft field name to its message. An empty map means the draft is valid.
type Errors map[string]string

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, field := range models.Fields {
		if msg, ok := e[field]; ok {
			parts = append(parts, field+": "+msg)
		}
	}

	return "validation failed: " + strings.Join(parts, "; ")
}

// Rules checks drafts before they are submitted. It holds no per-draft state.
type Rules struct {
	variant  Variant
	validate *validator.Validate
}

func NewRules(variant Variant) *Rules {
	validate := validator.New(validator.WithRequiredStructEnabled())
	// Registration only fails on an empty tag or nil func.
	_ = validate.RegisterValidation("notnumeric", notNumeric)
	_ = validate.RegisterValidation("nodigits", noDigits)

	return &Rules{variant: variant, validate: validate}
}

func (r *Rules) Variant() Variant {
	return r.variant
}

// Validate never mutates the draft and performs no I/O.
func (r *Rules) Validate(draft models.Draft) Errors {
	errs := make(Errors)
	refined := r.variant == VariantRefined

	r.checkText(errs, models.FieldName, "Name", draft.Name, refined)
	r.checkAge(errs, draft.Age)
	r.checkText(errs, models.FieldDepartment, "Department", draft.Department, refined)
	r.checkText(errs, models.FieldPosition, "Position", draft.Position, false)

	return errs
}

func (r *Rules) checkText(errs Errors, field, label, value string, digitFree bool) {
	value = strings.TrimSpace(value)

	if r.validate.Var(value, "required") != nil {
		errs[field] = label + " is required"
		return
	}

	if !digitFree {
		return
	}

	switch {
	case r.validate.Var(value, "notnumeric") != nil:
		errs[field] = label + " cannot be a number"
	case r.validate.Var(value, "nodigits") != nil:
		errs[field] = label + " cannot contain numbers"
	}
}

func (r *Rules) checkAge(errs Errors, raw string) {
	const msg = "Age must be a number and at least 18"

	if r.validate.Var(strings.TrimSpace(raw), "required") != nil {
		errs[models.FieldAge] = msg
		return
	}

	age, err := models.ParseAge(raw)
	if err != nil {
		errs[models.FieldAge] = msg
		return
	}

	if r.validate.Var(age, fmt.Sprintf("gte=%d", minimumAge)) != nil {
		errs[models.FieldAge] = msg
		return
	}

	if r.validate.Var(age, fmt.Sprintf("lte=%d", models.MaxAge)) != nil || !models.WholeAge(age) {
		errs[models.FieldAge] = wholeAgeMsg
	}
}

// notNumeric fails for text that reads as a number as a whole, e.g. "42" or "1e3".
// Words such as "Inf" or "NaN" have no digits and are not numbers here.
func notNumeric(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if !strings.ContainsAny(value, digits) {
		return true
	}

	_, err := strconv.ParseFloat(value, 64)

	return err != nil
}

// noDigits fails when any ASCII digit appears anywhere in the text.
func noDigits(fl validator.FieldLevel) bool {
	return !strings.ContainsAny(fl.Field().String(), digits)
}
