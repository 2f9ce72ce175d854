package listview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/Houeta/staff-console/internal/lib/logger/sl"
	"github.com/Houeta/staff-console/internal/metrics"
	"github.com/Houeta/staff-console/internal/models"
	"github.com/Houeta/staff-console/internal/records"
)

// State is the lifecycle of a list view.
type State int

const (
	StateLoading State = iota
	StateLoaded
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var (
	ErrNotLoaded       = errors.New("employee list is not loaded")
	ErrUnknownRecord   = errors.New("employee is not in the list")
	ErrNoPendingDelete = errors.New("no deletion awaiting confirmation")
)

// RecordSource is the part of the record service the list needs.
type RecordSource interface {
	ListRecords(ctx context.Context, search string) ([]models.Employee, error)
	DeleteRecord(ctx context.Context, id int64) error
}

// View owns one snapshot of the employee list together with its filters,
// the delete confirmation and the detail panel. A View is not shared between
// goroutines; every page request builds its own.
type View struct {
	log     *slog.Logger
	records RecordSource
	metrics *metrics.Metrics

	state      State
	all        []models.Employee
	filtered   []models.Employee
	search     string
	department string

	pendingDelete *models.Employee
	detail        *models.Employee
}

func New(log *slog.Logger, records RecordSource, metrics *metrics.Metrics) *View {
	return &View{log: log, records: records, metrics: metrics, state: StateLoading}
}

func (v *View) initLogger(opn string) *slog.Logger {
	return v.log.With(
		slog.String("op", opn),
		slog.String("division", "list"),
	)
}

// Load fetches the full set. serverSearch is passed to the API as-is; the
// client-side search and department filters are then reapplied on top.
// On failure the view keeps its previous state.
func (v *View) Load(ctx context.Context, serverSearch string) error {
	const opn = "List.Load"
	log := v.initLogger(opn)

	employees, err := v.records.ListRecords(ctx, serverSearch)
	if err != nil {
		log.ErrorContext(ctx, "Failed to fetch employees", sl.Err(err))
		return fmt.Errorf("failed to load employees: %w", err)
	}

	v.all = employees
	v.filtered = employees
	v.state = StateLoaded
	v.refilter()

	log.DebugContext(ctx, "Employees loaded", "total", len(v.all), "shown", len(v.filtered))

	return nil
}

// SetSearch replaces the client-side search term and refilters from the full set.
func (v *View) SetSearch(term string) {
	v.search = term
	v.refilter()
}

// SetDepartment replaces the department selector. An empty value means all departments.
func (v *View) SetDepartment(department string) {
	v.department = department
	v.refilter()
}

func (v *View) refilter() {
	if v.state != StateLoaded {
		return
	}
	v.filtered = Filter(v.all, v.search, v.department)
}

func (v *View) State() State          { return v.state }
func (v *View) Search() string        { return v.search }
func (v *View) Department() string    { return v.department }
func (v *View) Empty() bool           { return len(v.filtered) == 0 }
func (v *View) Departments() []string { return Departments(v.all) }

// All returns a copy of the full set.
func (v *View) All() []models.Employee {
	return slices.Clone(v.all)
}

// Rows returns a copy of the filtered set in display order.
func (v *View) Rows() []models.Employee {
	return slices.Clone(v.filtered)
}

// RequestDelete opens the confirmation for id and returns the record it names.
func (v *View) RequestDelete(id int64) (models.Employee, error) {
	employee, err := v.find(id)
	if err != nil {
		return models.Employee{}, err
	}

	v.pendingDelete = &employee

	return employee, nil
}

// PendingDelete reports the record awaiting confirmation, if any.
func (v *View) PendingDelete() (models.Employee, bool) {
	if v.pendingDelete == nil {
		return models.Employee{}, false
	}

	return *v.pendingDelete, true
}

// CancelDelete closes the confirmation without side effects.
func (v *View) CancelDelete() {
	v.pendingDelete = nil
}

// ConfirmDelete deletes the pending record through the service and then drops it
// from both the full and the filtered set without refetching. A record that the
// API no longer knows is treated as already deleted. The confirmation is closed
// whatever the outcome; on failure both sets are left untouched.
func (v *View) ConfirmDelete(ctx context.Context) (models.Employee, error) {
	const opn = "List.ConfirmDelete"
	log := v.initLogger(opn)

	if v.pendingDelete == nil {
		return models.Employee{}, ErrNoPendingDelete
	}

	target := *v.pendingDelete
	v.pendingDelete = nil

	err := v.records.DeleteRecord(ctx, target.EmployeeID)
	switch {
	case errors.Is(err, records.ErrNotFound):
		log.InfoContext(ctx, "Employee was already deleted", "employee_id", target.EmployeeID)
	case err != nil:
		log.ErrorContext(ctx, "Failed to delete employee", "employee_id", target.EmployeeID, sl.Err(err))
		return models.Employee{}, fmt.Errorf("failed to delete employee %q: %w", target.Name, err)
	}

	v.all = Remove(v.all, target.EmployeeID)
	v.filtered = Remove(v.filtered, target.EmployeeID)
	if v.detail != nil && v.detail.EmployeeID == target.EmployeeID {
		v.detail = nil
	}
	v.metrics.RecordsDeleted.Inc()

	log.InfoContext(ctx, "Employee deleted", "employee_id", target.EmployeeID, "remaining", len(v.all))

	return target, nil
}

// ShowDetail opens the read-only detail panel for id.
func (v *View) ShowDetail(id int64) (models.Employee, error) {
	employee, err := v.find(id)
	if err != nil {
		return models.Employee{}, err
	}

	v.detail = &employee

	return employee, nil
}

func (v *View) Detail() (models.Employee, bool) {
	if v.detail == nil {
		return models.Employee{}, false
	}

	return *v.detail, true
}

func (v *View) CloseDetail() {
	v.detail = nil
}

func (v *View) find(id int64) (models.Employee, error) {
	if v.state != StateLoaded {
		return models.Employee{}, ErrNotLoaded
	}

	idx := slices.IndexFunc(v.all, func(e models.Employee) bool { return e.EmployeeID == id })
	if idx < 0 {
		return models.Employee{}, fmt.Errorf("%w: id %d", ErrUnknownRecord, id)
	}

	return v.all[idx], nil
}
