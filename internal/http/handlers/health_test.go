package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hardrock-co/agency-platform/pkg/logging"
)

func TestHealthHandler_AllHealthy(t *testing.T) {
	handler := NewHealthHandler(map[string]HealthCheck{
		"database": func(context.Context) error { return nil },
		"queue":    func(context.Context) error { return nil },
		"skipped":  nil,
	}, logging.Discard())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, map[string]string{"database": "ok", "queue": "ok"}, resp.Checks)
}

func TestHealthHandler_Degraded(t *testing.T) {
	handler := NewHealthHandler(map[string]HealthCheck{
		"database": func(context.Context) error { return errors.New("refused") },
		"queue":    func(context.Context) error { return nil },
	}, logging.Discard())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var resp HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "unhealthy", resp.Checks["database"])
	assert.NotContains(t, rec.Body.String(), "refused")
}
