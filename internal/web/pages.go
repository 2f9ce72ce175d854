package web

import (
	"context"
	"html/template"
	"io"

	"github.com/a-h/templ"

	"github.com/Houeta/staff-console/internal/models"
	"github.com/Houeta/staff-console/internal/validation"
)

// Row is one line of the employee table with its action links.
type Row struct {
	models.Employee
	ViewURL   string
	EditURL   string
	DeleteURL string
}

// ListPageProps feeds the list page and its two dialogs.
type ListPageProps struct {
	Refined     bool
	Rows        []Row
	Departments []string
	Search      string
	Query       string
	Department  string
	Pending     *models.Employee
	Detail      *models.Employee
	// DeleteAction and CloseURL keep the current filters across the dialogs.
	DeleteAction string
	CloseURL     string
	Banner       string
	Notice       string
}

// FormPageProps feeds the add and edit forms.
type FormPageProps struct {
	Title       string
	Action      string
	SubmitLabel string
	Draft       models.Draft
	Errors      validation.Errors
	Banner      string
}

// NotFoundPageProps feeds the page shown for unknown employees and routes.
type NotFoundPageProps struct {
	Message string
}

type fieldProps struct {
	Name  string
	Label string
	Type  string
	Value string
	Error string
}

var pages = template.Must(template.New("pages").Funcs(template.FuncMap{
	"field": func(name, label, kind, value string, errs validation.Errors) fieldProps {
		return fieldProps{Name: name, Label: label, Type: kind, Value: value, Error: errs[name]}
	},
}).Parse(`
{{define "head"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.}}</title>
</head>
<body>
<main>{{end}}

{{define "foot"}}</main>
</body>
</html>{{end}}

{{define "banner"}}{{if .}}<div class="banner" role="alert">{{.}}</div>{{end}}{{end}}

{{define "list"}}{{template "head" "Employee List"}}
{{template "banner" .Banner}}
{{if .Notice}}<div class="notice" role="status">{{.Notice}}</div>{{end}}
<h1>Employee List</h1>
<a class="add" href="/employees/add">+ Add Employee</a>
<form class="filters" method="get" action="/">
{{if .Search}}<input type="hidden" name="search" value="{{.Search}}">{{end}}
<input type="text" name="q" value="{{.Query}}" placeholder="Search by name or position...">
<select name="department">
<option value="">All Departments</option>
{{range .Departments}}<option value="{{.}}"{{if eq . $.Department}} selected{{end}}>{{.}}</option>
{{end}}</select>
<button type="submit">Filter</button>
</form>
<table>
<thead><tr><th>Employee ID</th><th>Name</th><th>Age</th><th>Department</th><th>Position</th><th>Actions</th></tr></thead>
<tbody>
{{range .Rows}}<tr>
<td>{{.EmployeeID}}</td><td>{{.Name}}</td><td>{{.Age}}</td><td>{{.Department}}</td><td>{{.Position}}</td>
<td>{{if $.Refined}}<a href="{{.ViewURL}}">View</a> {{end}}<a href="{{.EditURL}}">Edit</a> <a href="{{.DeleteURL}}">Delete</a></td>
</tr>
{{else}}<tr><td colspan="6">No employees found.</td></tr>
{{end}}</tbody>
</table>
{{with .Pending}}<div class="modal" role="dialog" aria-labelledby="confirm-title">
<h2 id="confirm-title">Confirm Deletion</h2>
<p>Are you sure you want to delete {{.Name}}?</p>
<form method="post" action="{{$.DeleteAction}}"><button type="submit">Delete</button></form>
<a href="{{$.CloseURL}}">Cancel</a>
</div>{{end}}
{{with .Detail}}<div class="modal" role="dialog" aria-labelledby="detail-title">
<h2 id="detail-title">Employee Details</h2>
<p><strong>ID:</strong> {{.EmployeeID}}</p>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Age:</strong> {{.Age}}</p>
<p><strong>Department:</strong> {{.Department}}</p>
<p><strong>Position:</strong> {{.Position}}</p>
<a href="{{$.CloseURL}}">Close</a>
</div>{{end}}
{{template "foot"}}{{end}}

{{define "field"}}<div class="field">
<label for="{{.Name}}">{{.Label}}:</label>
<input id="{{.Name}}" type="{{.Type}}" name="{{.Name}}" value="{{.Value}}">
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
</div>{{end}}

{{define "form"}}{{template "head" .Title}}
<a class="back" href="/">Back</a>
<h1>{{.Title}}</h1>
{{template "banner" .Banner}}
<form method="post" action="{{.Action}}" novalidate>
{{template "field" (field "name" "Name" "text" .Draft.Name .Errors)}}
{{template "field" (field "age" "Age" "number" .Draft.Age .Errors)}}
{{template "field" (field "department" "Department" "text" .Draft.Department .Errors)}}
{{template "field" (field "position" "Position" "text" .Draft.Position .Errors)}}
<button type="submit">{{.SubmitLabel}}</button>
</form>
{{template "foot"}}{{end}}

{{define "notfound"}}{{template "head" "Not Found"}}
<h1>Not Found</h1>
<p>{{.Message}}</p>
<a class="back" href="/">Back to Employee List</a>
{{template "foot"}}{{end}}
`))

func page(name string, data any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return pages.ExecuteTemplate(w, name, data)
	})
}

func ListPage(props ListPageProps) templ.Component { return page("list", props) }

func FormPage(props FormPageProps) templ.Component { return page("form", props) }

func NotFoundPage(props NotFoundPageProps) templ.Component { return page("notfound", props) }
