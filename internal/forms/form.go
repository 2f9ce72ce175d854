package forms

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"

	"github.com/Houeta/staff-console/internal/lib/logger/sl"
	"github.com/Houeta/staff-console/internal/metrics"
	"github.com/Houeta/staff-console/internal/models"
	"github.com/Houeta/staff-console/internal/validation"
)

// Mode tells a create form from an edit form.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

var ErrUnknownField = errors.New("unknown form field")

// RecordWriter is the part of the record service the forms need.
type RecordWriter interface {
	GetRecord(ctx context.Context, id int64) (models.Employee, error)
	CreateRecord(ctx context.Context, input models.EmployeeInput) (models.Employee, error)
	UpdateRecord(ctx context.Context, id int64, input models.EmployeeInput) (models.Employee, error)
}

// Validator checks a draft before it is sent.
type Validator interface {
	Validate(draft models.Draft) validation.Errors
}

// Form holds one draft employee and the errors of its last submit attempt.
type Form struct {
	log     *slog.Logger
	records RecordWriter
	rules   Validator
	metrics *metrics.Metrics

	mode   Mode
	id     int64
	draft  models.Draft
	errors validation.Errors
}

// NewCreate returns a create form with an empty draft.
func NewCreate(log *slog.Logger, records RecordWriter, rules Validator, metrics *metrics.Metrics) *Form {
	return &Form{
		log:     log,
		records: records,
		rules:   rules,
		metrics: metrics,
		mode:    ModeCreate,
		errors:  validation.Errors{},
	}
}

// LoadEdit fetches the employee by id and seeds an edit form with it.
// An unknown id surfaces as records.ErrNotFound.
func LoadEdit(
	ctx context.Context,
	log *slog.Logger,
	records RecordWriter,
	rules Validator,
	metrics *metrics.Metrics,
	id int64,
) (*Form, error) {
	employee, err := records.GetRecord(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load employee for editing: %w", err)
	}

	form := NewEdit(log, records, rules, metrics, employee.EmployeeID)
	form.draft = models.DraftFrom(employee)

	return form, nil
}

// NewEdit returns an edit form for id with an empty draft, for callers that
// already hold the posted values.
func NewEdit(log *slog.Logger, records RecordWriter, rules Validator, metrics *metrics.Metrics, id int64) *Form {
	form := NewCreate(log, records, rules, metrics)
	form.mode = ModeEdit
	form.id = id

	return form
}

func (f *Form) initLogger(opn string) *slog.Logger {
	return f.log.With(
		slog.String("op", opn),
		slog.String("division", "form"),
		slog.String("mode", string(f.mode)),
	)
}

func (f *Form) Mode() Mode          { return f.mode }
func (f *Form) ID() int64           { return f.id }
func (f *Form) Draft() models.Draft { return f.draft }

// Errors returns the per-field messages of the last submit attempt.
func (f *Form) Errors() validation.Errors {
	return maps.Clone(f.errors)
}

// Set replaces exactly one field of the draft.
func (f *Form) Set(field, value string) error {
	switch field {
	case models.FieldName:
		f.draft.Name = value
	case models.FieldAge:
		f.draft.Age = value
	case models.FieldDepartment:
		f.draft.Department = value
	case models.FieldPosition:
		f.draft.Position = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	return nil
}

// Fill replaces every field with the values of a posted draft.
func (f *Form) Fill(draft models.Draft) {
	f.draft = draft
}

// Submit validates the draft and, when it is valid, creates or updates the employee.
// Invalid drafts return validation.Errors and never reach the service.
// On a service failure the draft is kept so the user can retry.
func (f *Form) Submit(ctx context.Context) (models.Employee, error) {
	const opn = "Form.Submit"
	log := f.initLogger(opn)

	f.errors = f.rules.Validate(f.draft)
	if len(f.errors) > 0 {
		f.metrics.FormSubmissions.WithLabelValues(string(f.mode), "invalid").Inc()
		for field := range f.errors {
			f.metrics.ValidationFailures.WithLabelValues(field).Inc()
		}
		log.DebugContext(ctx, "Draft rejected by validation", "fields", len(f.errors))

		return models.Employee{}, f.Errors()
	}

	input, err := f.draft.Input()
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to convert draft: %w", err)
	}

	var saved models.Employee
	if f.mode == ModeEdit {
		saved, err = f.records.UpdateRecord(ctx, f.id, input)
	} else {
		saved, err = f.records.CreateRecord(ctx, input)
	}
	if err != nil {
		f.metrics.FormSubmissions.WithLabelValues(string(f.mode), "failed").Inc()
		log.ErrorContext(ctx, "Failed to save employee", sl.Err(err))

		return models.Employee{}, fmt.Errorf("failed to save employee: %w", err)
	}

	f.metrics.FormSubmissions.WithLabelValues(string(f.mode), "saved").Inc()
	log.InfoContext(ctx, "Employee saved", "employee_id", saved.EmployeeID)

	return saved, nil
}
