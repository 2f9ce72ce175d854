package repository

import (
	"context"
	"errors"

	"github.com/Houeta/staff-console/internal/metrics"
	"github.com/Houeta/staff-console/internal/models"
)

// ErrEmployeeNotFound is returned when no row carries the requested employee_id.
var ErrEmployeeNotFound = errors.New("employee not found")

type Repository struct {
	db      Database
	metrics *metrics.Metrics
}

// EmployeeRepoIface represents the interface for interacting with employee data in the repository.
type EmployeeRepoIface interface {
	ListEmployees(ctx context.Context, search string) ([]models.Employee, error)
	GetEmployeeByID(ctx context.Context, identifier int64) (models.Employee, error)
	SaveEmployee(ctx context.Context, input models.EmployeeInput) (models.Employee, error)
	UpdateEmployee(ctx context.Context, identifier int64, input models.EmployeeInput) (models.Employee, error)
	DeleteEmployee(ctx context.Context, identifier int64) error
}

func NewEmployeeRepository(db Database, metrics *metrics.Metrics) EmployeeRepoIface {
	return &Repository{db: db, metrics: metrics}
}
