package http

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arbormail/arbormail/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHealth_OK verifies that a healthy store yields a plain-text "ok".
func TestHealth_OK(t *testing.T) {
	cfg := &mockConfigService{
		pingFn: func(_ context.Context) error { return nil },
	}

	h := newHandlerWithConfig(t, cfg)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	h.health(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
}

// TestHealth_StoreDown verifies that a failing store ping yields 503 with a
// neutral message; the driver error stays in the logs.
func TestHealth_StoreDown(t *testing.T) {
	cfg := &mockConfigService{
		pingFn: func(_ context.Context) error {
			return fmt.Errorf("ping failed: %w", store.ErrExecutingQuery)
		},
	}

	h := newHandlerWithConfig(t, cfg)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	h.health(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "config store unreachable")
	assert.NotContains(t, rec.Body.String(), store.ErrExecutingQuery.Error())
}
