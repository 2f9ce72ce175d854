package server_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Houeta/staff-console/internal/server"
)

type MockDBPinger struct {
	ShouldFail bool
}

func (m *MockDBPinger) Ping(_ context.Context) error {
	if m.ShouldFail {
		return errors.New("mock db error")
	}
	return nil
}

func TestHealthChecker(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	check := func(t *testing.T, checker http.Handler) *httptest.ResponseRecorder {
		t.Helper()

		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		rr := httptest.NewRecorder()
		checker.ServeHTTP(rr, req)

		return rr
	}

	t.Run("all systems ok", func(t *testing.T) {
		mockAPI := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer mockAPI.Close()

		rr := check(t, server.NewHealthChecker(&MockDBPinger{}, mockAPI.URL, logger))

		require.Equal(t, http.StatusOK, rr.Code)
		require.JSONEq(t, `{"database":"ok","employee_api":"ok"}`, rr.Body.String())
	})

	t.Run("database unavailable", func(t *testing.T) {
		rr := check(t, server.NewHealthChecker(&MockDBPinger{ShouldFail: true}, "", logger))

		require.Equal(t, http.StatusServiceUnavailable, rr.Code)
		require.JSONEq(t, `{"database":"unavailable"}`, rr.Body.String())
	})

	t.Run("employee api degraded", func(t *testing.T) {
		mockAPI := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer mockAPI.Close()

		rr := check(t, server.NewHealthChecker(nil, mockAPI.URL, logger))

		require.Equal(t, http.StatusServiceUnavailable, rr.Code)
		require.JSONEq(t, `{"employee_api":"degraded"}`, rr.Body.String())
	})

	t.Run("employee api unreachable", func(t *testing.T) {
		rr := check(t, server.NewHealthChecker(nil, "invalid_url", logger))

		require.Equal(t, http.StatusServiceUnavailable, rr.Code)
		require.JSONEq(t, `{"employee_api":"unreachable"}`, rr.Body.String())
	})

	t.Run("nothing to check", func(t *testing.T) {
		rr := check(t, server.NewHealthChecker(nil, "", logger))

		require.Equal(t, http.StatusOK, rr.Code)
		require.JSONEq(t, `{}`, rr.Body.String())
	})
}
