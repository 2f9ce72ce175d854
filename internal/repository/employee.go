package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Houeta/staff-console/internal/models"
)

const employeeColumns = `employee_id, name, age, department, position`

func (r *Repository) observe(queryType string) func() {
	startTime := time.Now()
	return func() {
		duration := time.Since(startTime).Seconds()
		r.metrics.DBQueryDuration.WithLabelValues(queryType).Observe(duration)
	}
}

// ListEmployees returns every employee ordered by id. A non-empty search keeps only
// the employees whose name or position contains it (case-sensitive).
func (r *Repository) ListEmployees(ctx context.Context, search string) ([]models.Employee, error) {
	defer r.observe("list_employees")()

	var (
		rows pgx.Rows
		err  error
	)
	if search == "" {
		rows, err = r.db.Query(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY employee_id`)
	} else {
		rows, err = r.db.Query(ctx, `SELECT `+employeeColumns+` FROM employees
		WHERE strpos(name, $1) > 0 OR strpos(position, $1) > 0
		ORDER BY employee_id`, search)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]models.Employee, 0)
	for rows.Next() {
		var employee models.Employee
		if err = rows.Scan(
			&employee.EmployeeID, &employee.Name, &employee.Age, &employee.Department, &employee.Position,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, employee)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, nil
}

// GetEmployeeByID retrieves an employee from the database by their ID.
func (r *Repository) GetEmployeeByID(ctx context.Context, identifier int64) (models.Employee, error) {
	defer r.observe("get_employee_by_id")()

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_id = $1`

	return r.scanOne(r.db.QueryRow(ctx, query, identifier), "get employee by id")
}

// SaveEmployee inserts a new employee and returns it with the assigned id.
func (r *Repository) SaveEmployee(ctx context.Context, input models.EmployeeInput) (models.Employee, error) {
	defer r.observe("save_employee")()

	query := `
		INSERT INTO employees (name, age, department, position)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + employeeColumns

	return r.scanOne(
		r.db.QueryRow(ctx, query, input.Name, input.Age, input.Department, input.Position), "save employee")
}

// UpdateEmployee overwrites the four business fields of an employee.
func (r *Repository) UpdateEmployee(
	ctx context.Context,
	identifier int64,
	input models.EmployeeInput,
) (models.Employee, error) {
	defer r.observe("update_employee")()

	query := `
		UPDATE employees
		SET name = $2, age = $3, department = $4, position = $5, updated_at = CURRENT_TIMESTAMP
		WHERE employee_id = $1
		RETURNING ` + employeeColumns

	return r.scanOne(
		r.db.QueryRow(ctx, query, identifier, input.Name, input.Age, input.Department, input.Position),
		"update employee data")
}

// DeleteEmployee removes an employee. Deleting an unknown id returns ErrEmployeeNotFound.
func (r *Repository) DeleteEmployee(ctx context.Context, identifier int64) error {
	defer r.observe("delete_employee")()

	tag, err := r.db.Exec(ctx, `DELETE FROM employees WHERE employee_id = $1`, identifier)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to delete employee %d: %w", identifier, ErrEmployeeNotFound)
	}

	return nil
}

func (r *Repository) scanOne(row pgx.Row, action string) (models.Employee, error) {
	var result models.Employee

	err := row.Scan(&result.EmployeeID, &result.Name, &result.Age, &result.Department, &result.Position)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Employee{}, fmt.Errorf("failed to %s: %w", action, ErrEmployeeNotFound)
	}
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to %s: %w", action, err)
	}

	return result, nil
}
