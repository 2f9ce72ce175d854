package records

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Houeta/staff-console/internal/metrics"
	"github.com/Houeta/staff-console/internal/models"
)

var (
	// ErrNetwork marks calls that did not complete: transport failures, cancelled contexts, unreadable bodies.
	ErrNetwork = errors.New("employee API unreachable")
	// ErrNotFound matches an *APIError carrying status 404.
	ErrNotFound = errors.New("employee not found")
)

// APIError is returned when the employee API answered with a non-2xx status.
type APIError struct {
	Operation string
	Status    int
	Message   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("employee API rejected %s: status %d: %s", e.Operation, e.Status, e.Message)
}

// Is lets callers test errors.Is(err, ErrNotFound).
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// RecordService is the set of calls the views make against the employee API.
type RecordService interface {
	ListRecords(ctx context.Context, search string) ([]models.Employee, error)
	GetRecord(ctx context.Context, id int64) (models.Employee, error)
	CreateRecord(ctx context.Context, input models.EmployeeInput) (models.Employee, error)
	UpdateRecord(ctx context.Context, id int64, input models.EmployeeInput) (models.Employee, error)
	DeleteRecord(ctx context.Context, id int64) error
}

// Service talks to the employee REST API rooted at baseURL (e.g. http://host/api/employees).
// It performs no retries and sets no timeout of its own.
type Service struct {
	log     *slog.Logger
	client  *http.Client
	metrics *metrics.Metrics
	baseURL string
}

func NewService(log *slog.Logger, client *http.Client, metrics *metrics.Metrics, baseURL string) (*Service, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse employee API URL %s: %w", baseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("failed to parse employee API URL %s: scheme and host are required", baseURL)
	}

	return &Service{
		log:     log.With(slog.String("division", "records")),
		client:  client,
		metrics: metrics,
		baseURL: parsed.String(),
	}, nil
}

// ListRecords returns every record, or only those matching search when it is not empty.
func (s *Service) ListRecords(ctx context.Context, search string) ([]models.Employee, error) {
	query := url.Values{}
	if search != "" {
		query.Set("search", search)
	}

	var employees []models.Employee
	if err := s.do(ctx, "list", http.MethodGet, "", query, nil, &employees); err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	if employees == nil {
		employees = []models.Employee{}
	}

	return employees, nil
}

func (s *Service) GetRecord(ctx context.Context, id int64) (models.Employee, error) {
	var employee models.Employee
	if err := s.do(ctx, "get", http.MethodGet, idPath(id), nil, nil, &employee); err != nil {
		return models.Employee{}, fmt.Errorf("failed to get employee %d: %w", id, err)
	}

	return employee, nil
}

func (s *Service) CreateRecord(ctx context.Context, input models.EmployeeInput) (models.Employee, error) {
	var employee models.Employee
	if err := s.do(ctx, "create", http.MethodPost, "", nil, input, &employee); err != nil {
		return models.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return employee, nil
}

func (s *Service) UpdateRecord(ctx context.Context, id int64, input models.EmployeeInput) (models.Employee, error) {
	var employee models.Employee
	if err := s.do(ctx, "update", http.MethodPut, idPath(id), nil, input, &employee); err != nil {
		return models.Employee{}, fmt.Errorf("failed to update employee %d: %w", id, err)
	}

	return employee, nil
}

// DeleteRecord removes the record. Deleting an id twice yields an error matching ErrNotFound.
func (s *Service) DeleteRecord(ctx context.Context, id int64) error {
	if err := s.do(ctx, "delete", http.MethodDelete, idPath(id), nil, nil, nil); err != nil {
		return fmt.Errorf("failed to delete employee %d: %w", id, err)
	}

	return nil
}

// BaseURL is used by the health checker to probe the API.
func (s *Service) BaseURL() string {
	return s.baseURL
}

func (s *Service) do(
	ctx context.Context,
	operation, method, path string,
	query url.Values,
	payload, out any,
) error {
	startTime := time.Now()
	defer func() {
		s.metrics.APIRequestDuration.WithLabelValues(operation).Observe(time.Since(startTime).Seconds())
	}()

	reqURL, err := s.endpoint(path, query)
	if err != nil {
		return err
	}

	var body io.Reader
	if payload != nil {
		encoded, marshalErr := json.Marshal(payload)
		if marshalErr != nil {
			return fmt.Errorf("failed to encode request body: %w", marshalErr)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return fmt.Errorf("failed to create new request %s: %w", reqURL, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.metrics.APIRequests.WithLabelValues(operation, "network_error").Inc()
		return fmt.Errorf("%w: failed to request %s %s: %w", ErrNetwork, method, reqURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		s.metrics.APIRequests.WithLabelValues(operation, "api_error").Inc()
		apiErr := &APIError{Operation: operation, Status: resp.StatusCode, Message: errorMessage(resp)}
		s.log.DebugContext(ctx, "Employee API rejected request",
			"op", operation, "status", apiErr.Status, "message", apiErr.Message)

		return apiErr
	}

	if out != nil {
		if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
			s.metrics.APIRequests.WithLabelValues(operation, "network_error").Inc()
			return fmt.Errorf("%w: failed to decode response of %s %s: %w", ErrNetwork, method, reqURL, err)
		}
	}

	s.metrics.APIRequests.WithLabelValues(operation, "ok").Inc()

	return nil
}

func (s *Service) endpoint(path string, query url.Values) (string, error) {
	target := s.baseURL
	if path != "" {
		joined, err := url.JoinPath(s.baseURL, path)
		if err != nil {
			return "", fmt.Errorf("failed to build request URL: %w", err)
		}
		target = joined
	}

	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	return target, nil
}

func idPath(id int64) string {
	return strconv.FormatInt(id, 10)
}
