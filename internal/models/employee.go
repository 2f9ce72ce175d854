package models

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrAgeNotNumeric is returned by ParseAge for text that is not a finite number.
	ErrAgeNotNumeric = errors.New("age is not a number")
	// ErrAgeOutOfRange is returned by Draft.Input for fractional ages and ages outside 0..MaxAge.
	ErrAgeOutOfRange = errors.New("age is not a whole number of years in range")
)

// MaxAge is the largest age a record may carry.
const MaxAge = 150

// UserAgent is sent with every outbound request to the employee API.
const UserAgent = "staff-console/1.0"

// Field names shared by drafts, validation errors and form inputs.
const (
	FieldName       = "name"
	FieldAge        = "age"
	FieldDepartment = "department"
	FieldPosition   = "position"
)

// Fields lists the business fields in display order.
var Fields = []string{FieldName, FieldAge, FieldDepartment, FieldPosition}

// Employee represents an employee entity as returned by the employee API.
type Employee struct {
	EmployeeID int64  `json:"employeeId"`
	Name       string `json:"name"`
	Age        int    `json:"age"`
	Department string `json:"department"`
	Position   string `json:"position"`
}

// EmployeeInput is the request body for create and update: an employee without its identifier.
type EmployeeInput struct {
	Name       string `json:"name"`
	Age        int    `json:"age"`
	Department string `json:"department"`
	Position   string `json:"position"`
}

// Draft is an unsaved employee held in form state. Age stays text until submission.
type Draft struct {
	Name       string `form:"name"`
	Age        string `form:"age"`
	Department string `form:"department"`
	Position   string `form:"position"`
}

// DraftFrom seeds a draft from a stored employee.
func DraftFrom(emp Employee) Draft {
	return Draft{
		Name:       emp.Name,
		Age:        strconv.Itoa(emp.Age),
		Department: emp.Department,
		Position:   emp.Position,
	}
}

// Input converts a validated draft into the wire payload.
func (d Draft) Input() (EmployeeInput, error) {
	age, err := ParseAge(d.Age)
	if err != nil {
		return EmployeeInput{}, err
	}

	if !WholeAge(age) {
		return EmployeeInput{}, fmt.Errorf("%w: %q", ErrAgeOutOfRange, strings.TrimSpace(d.Age))
	}

	return EmployeeInput{
		Name:       strings.TrimSpace(d.Name),
		Age:        int(age),
		Department: strings.TrimSpace(d.Department),
		Position:   strings.TrimSpace(d.Position),
	}, nil
}

// ParseAge parses age text as a finite number. Fractions are kept so that 17.5 still counts as under 18.
func ParseAge(raw string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, ErrAgeNotNumeric
	}

	return value, nil
}

// WholeAge reports whether age is an integer within 0..MaxAge.
func WholeAge(age float64) bool {
	return age == math.Trunc(age) && age >= 0 && age <= MaxAge
}
