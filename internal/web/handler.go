package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/a-h/templ"
	"github.com/go-playground/form"
	"github.com/gorilla/mux"

	"github.com/Houeta/staff-console/internal/forms"
	"github.com/Houeta/staff-console/internal/lib/logger/sl"
	"github.com/Houeta/staff-console/internal/listview"
	"github.com/Houeta/staff-console/internal/metrics"
	"github.com/Houeta/staff-console/internal/models"
	"github.com/Houeta/staff-console/internal/records"
	"github.com/Houeta/staff-console/internal/validation"
)

const (
	listPath   = "/"
	addPath    = "/employees/add"
	editPath   = "/employees/edit/%d"
	viewPath   = "/employees/view/%d"
	deletePath = "/employees/delete/%d"
)

// Handler serves the employee console pages. Every request builds its own
// list view or form; nothing is shared between requests but the services.
type Handler struct {
	log     *slog.Logger
	records records.RecordService
	rules   *validation.Rules
	metrics *metrics.Metrics
	decoder *form.Decoder
}

func NewHandler(
	log *slog.Logger,
	records records.RecordService,
	rules *validation.Rules,
	metrics *metrics.Metrics,
) *Handler {
	return &Handler{
		log:     log.With(slog.String("division", "web")),
		records: records,
		rules:   rules,
		metrics: metrics,
		decoder: form.NewDecoder(),
	}
}

// NewRouter returns a router with every console route registered.
func NewRouter(h *Handler) *mux.Router {
	router := mux.NewRouter()
	h.Register(router)

	return router
}

func (h *Handler) Register(r *mux.Router) {
	r.Use(h.logRequests)

	r.HandleFunc(listPath, h.List).Methods(http.MethodGet)
	r.HandleFunc("/employees", h.RedirectRoot).Methods(http.MethodGet)
	r.HandleFunc(addPath, h.NewForm).Methods(http.MethodGet)
	r.HandleFunc(addPath, h.Create).Methods(http.MethodPost)
	r.HandleFunc("/employees/edit/{id:[0-9]+}", h.EditForm).Methods(http.MethodGet)
	r.HandleFunc("/employees/edit/{id:[0-9]+}", h.Update).Methods(http.MethodPost)
	r.HandleFunc("/employees/view/{id:[0-9]+}", h.Detail).Methods(http.MethodGet)
	r.HandleFunc("/employees/delete/{id:[0-9]+}", h.DeletePrompt).Methods(http.MethodGet)
	r.HandleFunc("/employees/delete/{id:[0-9]+}", h.Delete).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		h.render(w, req, http.StatusNotFound, "not_found",
			NotFoundPage(NotFoundPageProps{Message: "The page you requested does not exist."}))
	})
}

func (h *Handler) RedirectRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, listPath, http.StatusFound)
}

// List renders the table. "search" goes to the API, "q" and "department" filter locally.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filters := readFilters(r.URL.Query())

	view, err := h.loadView(r, filters)
	if err != nil {
		h.renderList(w, r, statusFor(err), view, filters, bannerFor(err), "")
		return
	}

	h.renderList(w, r, http.StatusOK, view, filters, "", "")
}

// Detail renders the list with the read-only detail dialog open.
func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	if h.rules.Variant() != validation.VariantRefined {
		h.renderNotFound(w, r, "The page you requested does not exist.")
		return
	}

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	filters := readFilters(r.URL.Query())

	view, err := h.loadView(r, filters)
	if err == nil {
		_, err = view.ShowDetail(id)
	}
	if err != nil {
		h.renderList(w, r, statusFor(err), view, filters, bannerFor(err), "")
		return
	}

	h.renderList(w, r, http.StatusOK, view, filters, "", "")
}

// DeletePrompt renders the list with the delete confirmation open.
func (h *Handler) DeletePrompt(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	filters := readFilters(r.URL.Query())

	view, err := h.loadView(r, filters)
	if err == nil {
		_, err = view.RequestDelete(id)
	}
	if err != nil {
		h.renderList(w, r, statusFor(err), view, filters, bannerFor(err), "")
		return
	}

	h.renderList(w, r, http.StatusOK, view, filters, "", "")
}

// Delete performs a confirmed delete and renders the list without refetching it.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	filters := readFilters(r.URL.Query())

	view, err := h.loadView(r, filters)
	if err == nil {
		_, err = view.RequestDelete(id)
	}
	var deleted models.Employee
	if err == nil {
		deleted, err = view.ConfirmDelete(r.Context())
	}
	if err != nil {
		h.renderList(w, r, statusFor(err), view, filters, bannerFor(err), "")
		return
	}

	h.renderList(w, r, http.StatusOK, view, filters, "", fmt.Sprintf("Employee %s deleted.", deleted.Name))
}

func (h *Handler) NewForm(w http.ResponseWriter, r *http.Request) {
	f := forms.NewCreate(h.log, h.records, h.rules, h.metrics)
	h.renderForm(w, r, http.StatusOK, f, "")
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	draft, err := h.decodeDraft(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f := forms.NewCreate(h.log, h.records, h.rules, h.metrics)
	f.Fill(draft)
	h.submit(w, r, f)
}

func (h *Handler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	f, err := forms.LoadEdit(r.Context(), h.log, h.records, h.rules, h.metrics, id)
	switch {
	case errors.Is(err, records.ErrNotFound):
		h.renderNotFound(w, r, "Employee not found.")
		return
	case err != nil:
		f = forms.NewEdit(h.log, h.records, h.rules, h.metrics, id)
		h.renderForm(w, r, statusFor(err), f, bannerFor(err))
		return
	}

	h.renderForm(w, r, http.StatusOK, f, "")
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	draft, err := h.decodeDraft(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f := forms.NewEdit(h.log, h.records, h.rules, h.metrics, id)
	f.Fill(draft)
	h.submit(w, r, f)
}

// submit runs the form and either redirects to the list or re-renders it with
// the per-field messages or a failure banner. The posted draft is always kept.
func (h *Handler) submit(w http.ResponseWriter, r *http.Request, f *forms.Form) {
	_, err := f.Submit(r.Context())

	var invalid validation.Errors
	switch {
	case err == nil:
		http.Redirect(w, r, listPath, http.StatusSeeOther)
	case errors.As(err, &invalid):
		h.renderForm(w, r, http.StatusUnprocessableEntity, f, "")
	case f.Mode() == forms.ModeEdit && errors.Is(err, records.ErrNotFound):
		h.renderNotFound(w, r, "Employee not found.")
	default:
		h.renderForm(w, r, statusFor(err), f, bannerFor(err))
	}
}

func (h *Handler) loadView(r *http.Request, filters listFilters) (*listview.View, error) {
	view := listview.New(h.log, h.records, h.metrics)
	view.SetSearch(filters.query)
	view.SetDepartment(filters.department)

	return view, view.Load(r.Context(), filters.search)
}

func (h *Handler) decodeDraft(r *http.Request) (models.Draft, error) {
	var draft models.Draft

	if err := r.ParseForm(); err != nil {
		return draft, fmt.Errorf("failed to parse form: %w", err)
	}
	if err := h.decoder.Decode(&draft, r.PostForm); err != nil {
		return draft, fmt.Errorf("failed to decode form: %w", err)
	}

	return draft, nil
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.renderNotFound(w, r, "Employee not found.")
		return 0, false
	}

	return id, true
}

func (h *Handler) renderList(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	view *listview.View,
	filters listFilters,
	banner, notice string,
) {
	suffix := filters.encode()
	props := ListPageProps{
		Refined:     h.rules.Variant() == validation.VariantRefined,
		Departments: view.Departments(),
		Search:      filters.search,
		Query:       filters.query,
		Department:  filters.department,
		CloseURL:    listPath + suffix,
		Banner:      banner,
		Notice:      notice,
	}

	for _, employee := range view.Rows() {
		props.Rows = append(props.Rows, Row{
			Employee:  employee,
			ViewURL:   fmt.Sprintf(viewPath, employee.EmployeeID) + suffix,
			EditURL:   fmt.Sprintf(editPath, employee.EmployeeID),
			DeleteURL: fmt.Sprintf(deletePath, employee.EmployeeID) + suffix,
		})
	}
	if pending, ok := view.PendingDelete(); ok {
		props.Pending = &pending
		props.DeleteAction = fmt.Sprintf(deletePath, pending.EmployeeID) + suffix
	}
	if detail, ok := view.Detail(); ok {
		props.Detail = &detail
	}

	h.render(w, r, status, "list", ListPage(props))
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, status int, f *forms.Form, banner string) {
	props := FormPageProps{
		Title:       "Add Employee",
		Action:      addPath,
		SubmitLabel: "Add Employee",
		Draft:       f.Draft(),
		Errors:      f.Errors(),
		Banner:      banner,
	}
	if f.Mode() == forms.ModeEdit {
		props.Title = "Edit Employee"
		props.Action = fmt.Sprintf(editPath, f.ID())
		props.SubmitLabel = "Update Employee"
	}

	h.render(w, r, status, string(f.Mode()), FormPage(props))
}

func (h *Handler) renderNotFound(w http.ResponseWriter, r *http.Request, message string) {
	h.render(w, r, http.StatusNotFound, "not_found", NotFoundPage(NotFoundPageProps{Message: message}))
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, view string, c templ.Component) {
	h.metrics.PageRenders.WithLabelValues(view).Inc()
	templ.Handler(c, templ.WithStatus(status), templ.WithErrorHandler(func(r *http.Request, err error) http.Handler {
		h.log.ErrorContext(r.Context(), "Failed to render page", "view", view, sl.Err(err))
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		})
	})).ServeHTTP(w, r)
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		startTime := time.Now()
		next.ServeHTTP(w, r)
		h.log.DebugContext(r.Context(), "Request served",
			"method", r.Method, "path", r.URL.Path, "duration", time.Since(startTime))
	})
}

type listFilters struct {
	search     string
	query      string
	department string
}

func readFilters(values url.Values) listFilters {
	return listFilters{
		search:     values.Get("search"),
		query:      values.Get("q"),
		department: values.Get("department"),
	}
}

// encode returns the filters as a query string suffix, or "" when none are set.
func (f listFilters) encode() string {
	values := url.Values{}
	for key, value := range map[string]string{"search": f.search, "q": f.query, "department": f.department} {
		if value != "" {
			values.Set(key, value)
		}
	}
	if len(values) == 0 {
		return ""
	}

	return "?" + values.Encode()
}

// statusFor maps a failure to the status of the re-rendered page.
func statusFor(err error) int {
	var (
		invalid validation.Errors
		apiErr  *records.APIError
	)

	switch {
	case errors.As(err, &invalid):
		return http.StatusUnprocessableEntity
	case errors.Is(err, records.ErrNotFound), errors.Is(err, listview.ErrUnknownRecord):
		return http.StatusNotFound
	case errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError:
		return http.StatusBadRequest
	case errors.As(err, &apiErr), errors.Is(err, records.ErrNetwork):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func bannerFor(err error) string {
	var apiErr *records.APIError

	switch {
	case errors.Is(err, records.ErrNotFound), errors.Is(err, listview.ErrUnknownRecord):
		return "Employee not found."
	case errors.As(err, &apiErr):
		return "The employee service rejected the request: " + apiErr.Message
	case errors.Is(err, records.ErrNetwork):
		return "Could not reach the employee service. Please try again."
	default:
		return "Something went wrong. Please try again."
	}
}
