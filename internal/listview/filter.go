package listview

import (
	"slices"
	"strings"

	"github.com/Houeta/staff-console/internal/models"
)

// Filter keeps the employees whose name or position contains search
// (case-insensitive) AND whose department equals department exactly.
// An empty predicate matches everything. The input is never modified.
func Filter(all []models.Employee, search, department string) []models.Employee {
	needle := strings.ToLower(search)
	result := make([]models.Employee, 0, len(all))

	for _, employee := range all {
		if needle != "" &&
			!strings.Contains(strings.ToLower(employee.Name), needle) &&
			!strings.Contains(strings.ToLower(employee.Position), needle) {
			continue
		}
		if department != "" && employee.Department != department {
			continue
		}
		result = append(result, employee)
	}

	return result
}

// Departments returns the distinct non-blank departments of set, sorted.
func Departments(set []models.Employee) []string {
	departments := make([]string, 0, len(set))
	for _, employee := range set {
		if strings.TrimSpace(employee.Department) == "" {
			continue
		}
		departments = append(departments, employee.Department)
	}

	slices.Sort(departments)

	return slices.Compact(departments)
}

// Remove returns set without the employee identified by id.
func Remove(set []models.Employee, id int64) []models.Employee {
	result := make([]models.Employee, 0, len(set))
	for _, employee := range set {
		if employee.EmployeeID != id {
			result = append(result, employee)
		}
	}

	return result
}
