package listview_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Houeta/staff-console/internal/listview"
	"github.com/Houeta/staff-console/internal/models"
)

func TestFilter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		search     string
		department string
		want       []int64
	}{
		{name: "no predicates", want: []int64{1, 2, 3}},
		{name: "case-insensitive name", search: "ALICE", want: []int64{1}},
		{name: "matches position", search: "sre", want: []int64{2}},
		{name: "department only", department: "Eng", want: []int64{1, 3}},
		{name: "department is exact", department: "eng", want: []int64{}},
		{name: "both predicates", search: "a", department: "Eng", want: []int64{1, 3}},
		{name: "no match", search: "zzz", want: []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, ids(listview.Filter(staff(), tt.search, tt.department)))
		})
	}
}

func TestFilter_Idempotent(t *testing.T) {
	t.Parallel()

	all := staff()

	first := listview.Filter(all, "e", "Eng")
	second := listview.Filter(all, "e", "Eng")

	assert.Equal(t, first, second)
	assert.Equal(t, staff(), all, "input must not change")
}

func TestDepartments(t *testing.T) {
	t.Parallel()

	set := append(staff(), models.Employee{EmployeeID: 4, Department: "Admin"})

	assert.Equal(t, []string{"Admin", "Eng", "Ops"}, listview.Departments(set))
	assert.Empty(t, listview.Departments(nil))
}

func TestDepartments_SkipsBlank(t *testing.T) {
	t.Parallel()

	set := append(staff(),
		models.Employee{EmployeeID: 4, Department: ""},
		models.Employee{EmployeeID: 5, Department: "  "},
	)

	assert.Equal(t, []string{"Eng", "Ops"}, listview.Departments(set))
}

func TestRemove(t *testing.T) {
	t.Parallel()

	all := staff()

	assert.Equal(t, []int64{1, 3}, ids(listview.Remove(all, 2)))
	assert.Equal(t, []int64{1, 2, 3}, ids(listview.Remove(all, 42)))
	assert.Len(t, all, 3)
}
