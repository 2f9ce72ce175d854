package repository_test

import (
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Houeta/staff-console/internal/config"
	"github.com/Houeta/staff-console/internal/metrics"
	"github.com/Houeta/staff-console/internal/models"
	"github.com/Houeta/staff-console/internal/repository"
)

var employeeColumns = []string{"employee_id", "name", "age", "department", "position"}

func newRepo(t *testing.T) (repository.EmployeeRepoIface, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return repository.NewEmployeeRepository(mock, metrics.NewMetrics(prometheus.NewRegistry())), mock
}

func TestListEmployees_All(t *testing.T) {
	t.Parallel()

	repo, mock := newRepo(t)
	mock.ExpectQuery(`FROM employees ORDER BY employee_id`).
		WillReturnRows(pgxmock.NewRows(employeeColumns).
			AddRow(int64(1), "Alice", 30, "Eng", "Dev").
			AddRow(int64(2), "Bob", 41, "Ops", "SRE"))

	employees, err := repo.ListEmployees(t.Context(), "")

	require.NoError(t, err)
	assert.Equal(t, []models.Employee{
		{EmployeeID: 1, Name: "Alice", Age: 30, Department: "Eng", Position: "Dev"},
		{EmployeeID: 2, Name: "Bob", Age: 41, Department: "Ops", Position: "SRE"},
	}, employees)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListEmployees_Search(t *testing.T) {
	t.Parallel()

	repo, mock := newRepo(t)
	mock.ExpectQuery(`strpos\(name, \$1\) > 0 OR strpos\(position, \$1\) > 0`).
		WithArgs("Dev").
		WillReturnRows(pgxmock.NewRows(employeeColumns))

	employees, err := repo.ListEmployees(t.Context(), "Dev")

	require.NoError(t, err)
	assert.NotNil(t, employees)
	assert.Empty(t, employees)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListEmployees_QueryError(t *testing.T) {
	t.Parallel()

	repo, mock := newRepo(t)
	mock.ExpectQuery(`FROM employees`).WillReturnError(assert.AnError)

	_, err := repo.ListEmployees(t.Context(), "")

	require.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, "failed to list employees: "+assert.AnError.Error(), err.Error())
}

func TestGetEmployeeByID(t *testing.T) {
	t.Parallel()

	repo, mock := newRepo(t)
	mock.ExpectQuery(`FROM employees WHERE employee_id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows(employeeColumns).AddRow(int64(7), "Carol", 25, "Eng", "QA"))

	employee, err := repo.GetEmployeeByID(t.Context(), 7)

	require.NoError(t, err)
	assert.Equal(t, models.Employee{EmployeeID: 7, Name: "Carol", Age: 25, Department: "Eng", Position: "QA"}, employee)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetEmployeeByID_NotFound(t *testing.T) {
	t.Parallel()

	repo, mock := newRepo(t)
	mock.ExpectQuery(`FROM employees WHERE employee_id = \$1`).
		WithArgs(int64(7)).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetEmployeeByID(t.Context(), 7)

	require.ErrorIs(t, err, repository.ErrEmployeeNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveEmployee(t *testing.T) {
	t.Parallel()

	repo, mock := newRepo(t)
	mock.ExpectQuery(`INSERT INTO employees \(name, age, department, position\)`).
		WithArgs("Bob", 25, "Eng", "Dev").
		WillReturnRows(pgxmock.NewRows(employeeColumns).AddRow(int64(3), "Bob", 25, "Eng", "Dev"))

	created, err := repo.SaveEmployee(t.Context(),
		models.EmployeeInput{Name: "Bob", Age: 25, Department: "Eng", Position: "Dev"})

	require.NoError(t, err)
	assert.Equal(t, int64(3), created.EmployeeID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveEmployee_QueryError(t *testing.T) {
	t.Parallel()

	repo, mock := newRepo(t)
	mock.ExpectQuery(`INSERT INTO employees`).
		WithArgs("Bob", 25, "Eng", "Dev").
		WillReturnError(assert.AnError)

	_, err := repo.SaveEmployee(t.Context(),
		models.EmployeeInput{Name: "Bob", Age: 25, Department: "Eng", Position: "Dev"})

	assert.Equal(t, "failed to save employee: "+assert.AnError.Error(), err.Error())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateEmployee(t *testing.T) {
	t.Parallel()

	repo, mock := newRepo(t)
	mock.ExpectQuery(`UPDATE employees`).
		WithArgs(int64(3), "Bob", 30, "Eng", "Dev").
		WillReturnRows(pgxmock.NewRows(employeeColumns).AddRow(int64(3), "Bob", 30, "Eng", "Dev"))

	updated, err := repo.UpdateEmployee(t.Context(), 3,
		models.EmployeeInput{Name: "Bob", Age: 30, Department: "Eng", Position: "Dev"})

	require.NoError(t, err)
	assert.Equal(t, 30, updated.Age)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateEmployee_NotFound(t *testing.T) {
	t.Parallel()

	repo, mock := newRepo(t)
	mock.ExpectQuery(`UPDATE employees`).
		WithArgs(int64(9), "Bob", 30, "Eng", "Dev").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.UpdateEmployee(t.Context(), 9,
		models.EmployeeInput{Name: "Bob", Age: 30, Department: "Eng", Position: "Dev"})

	require.ErrorIs(t, err, repository.ErrEmployeeNotFound)
}

func TestDeleteEmployee(t *testing.T) {
	t.Parallel()

	repo, mock := newRepo(t)
	mock.ExpectExec(`DELETE FROM employees WHERE employee_id = \$1`).
		WithArgs(int64(3)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`DELETE FROM employees WHERE employee_id = \$1`).
		WithArgs(int64(3)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	require.NoError(t, repo.DeleteEmployee(t.Context(), 3))
	require.ErrorIs(t, repo.DeleteEmployee(t.Context(), 3), repository.ErrEmployeeNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDSN(t *testing.T) {
	t.Parallel()

	dsn := repository.DSN(config.PostgresConfig{
		Host: "db", Port: "5432", User: "staff", Password: "p@ss", Dbname: "employees",
	})

	assert.Equal(t, "postgres://staff:p%40ss@db:5432/employees?sslmode=disable", dsn)
}
