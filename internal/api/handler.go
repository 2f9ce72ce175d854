package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/Houeta/staff-console/internal/lib/logger/sl"
	"github.com/Houeta/staff-console/internal/models"
	"github.com/Houeta/staff-console/internal/repository"
	"github.com/Houeta/staff-console/internal/validation"
)

// BasePath is the collection root served by the reference API.
const BasePath = "/api/employees"

const maxBodyBytes = 1 << 20

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// Handler serves the employee REST API on top of the repository.
type Handler struct {
	log   *slog.Logger
	repo  repository.EmployeeRepoIface
	rules *validation.Rules
}

// NewHandler checks incoming payloads with the basic rules.
func NewHandler(log *slog.Logger, repo repository.EmployeeRepoIface) *Handler {
	return &Handler{
		log:   log,
		repo:  repo,
		rules: validation.NewRules(validation.VariantBasic),
	}
}

// NewRouter registers the API and wraps it in a CORS policy for allowedOrigins.
func NewRouter(h *Handler, allowedOrigins []string) http.Handler {
	router := mux.NewRouter()
	h.Register(router)

	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", "Accept", "X-Request-ID"},
	}).Handler(router)
}

func (h *Handler) Register(r *mux.Router) {
	router := r.PathPrefix(BasePath).Subrouter()
	for _, root := range []string{"", "/"} {
		router.HandleFunc(root, h.List).Methods(http.MethodGet)
		router.HandleFunc(root, h.Create).Methods(http.MethodPost)
	}
	router.HandleFunc("/{id:[0-9]+}", h.Get).Methods(http.MethodGet)
	router.HandleFunc("/{id:[0-9]+}", h.Update).Methods(http.MethodPut)
	router.HandleFunc("/{id:[0-9]+}", h.Delete).Methods(http.MethodDelete)
}

func (h *Handler) initLogger(opn string) *slog.Logger {
	return h.log.With(
		slog.String("op", opn),
		slog.String("division", "api"),
	)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const opn = "API.List"

	employees, err := h.repo.ListEmployees(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		h.fail(w, r, opn, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, employees)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	const opn = "API.Get"

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	employee, err := h.repo.GetEmployeeByID(r.Context(), id)
	if err != nil {
		h.fail(w, r, opn, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, employee)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const opn = "API.Create"

	input, ok := h.readInput(w, r)
	if !ok {
		return
	}

	created, err := h.repo.SaveEmployee(r.Context(), input)
	if err != nil {
		h.fail(w, r, opn, err)
		return
	}

	h.initLogger(opn).InfoContext(r.Context(), "Employee created", "employee_id", created.EmployeeID)
	h.writeJSON(w, r, http.StatusCreated, created)
}

// Update overwrites name, age, department and position; the id never changes.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const opn = "API.Update"

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	input, ok := h.readInput(w, r)
	if !ok {
		return
	}

	updated, err := h.repo.UpdateEmployee(r.Context(), id, input)
	if err != nil {
		h.fail(w, r, opn, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, updated)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const opn = "API.Delete"

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.repo.DeleteEmployee(r.Context(), id); err != nil {
		h.fail(w, r, opn, err)
		return
	}

	h.initLogger(opn).InfoContext(r.Context(), "Employee deleted", "employee_id", id)
	w.WriteHeader(http.StatusNoContent)
}

// readInput decodes the body and runs the basic rules on it.
func (h *Handler) readInput(w http.ResponseWriter, r *http.Request) (models.EmployeeInput, bool) {
	var input models.EmployeeInput

	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&input); err != nil {
		h.writeJSON(w, r, http.StatusBadRequest, ErrorResponse{
			Status:  http.StatusBadRequest,
			Message: "invalid request body",
		})
		return input, false
	}

	draft := models.Draft{
		Name:       input.Name,
		Age:        strconv.Itoa(input.Age),
		Department: input.Department,
		Position:   input.Position,
	}
	if errs := h.rules.Validate(draft); len(errs) > 0 {
		h.writeJSON(w, r, http.StatusBadRequest, ErrorResponse{
			Status:  http.StatusBadRequest,
			Message: errs.Error(),
			Errors:  errs,
		})
		return input, false
	}

	validated, err := draft.Input()
	if err != nil {
		h.writeJSON(w, r, http.StatusBadRequest, ErrorResponse{Status: http.StatusBadRequest, Message: err.Error()})
		return input, false
	}

	return validated, true
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.writeJSON(w, r, http.StatusNotFound, ErrorResponse{
			Status:  http.StatusNotFound,
			Message: repository.ErrEmployeeNotFound.Error(),
		})
		return 0, false
	}

	return id, true
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, opn string, err error) {
	if errors.Is(err, repository.ErrEmployeeNotFound) {
		h.writeJSON(w, r, http.StatusNotFound, ErrorResponse{
			Status:  http.StatusNotFound,
			Message: repository.ErrEmployeeNotFound.Error(),
		})
		return
	}

	h.initLogger(opn).ErrorContext(r.Context(), "Request failed", sl.Err(err))
	h.writeJSON(w, r, http.StatusInternalServerError, ErrorResponse{
		Status:  http.StatusInternalServerError,
		Message: "internal server error",
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log.ErrorContext(r.Context(), "Failed to write response", sl.Err(err))
	}
}
