package health

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mrlucciola/pow-blockchain/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ok(context.Context) (int, string, error) {
	return http.StatusOK, "fine", nil
}

func down(context.Context) (int, string, error) {
	return http.StatusServiceUnavailable, "gone", errors.NewServiceUnavailableError("gone")
}

func TestCheckAll(t *testing.T) {
	ctx := context.Background()

	status, message, err := CheckAll(ctx, []Check{{Name: "a", Check: ok}, {Name: "b", Check: ok}})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, message, `"resource": "a"`)
	assert.Contains(t, message, `"resource": "b"`)

	status, message, err = CheckAll(ctx, []Check{{Name: "a", Check: ok}, {Name: "b", Check: down}})
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Contains(t, message, `"status": "503"`)

	status, _, err = CheckAll(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
}

func TestHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	Handler(Check{Name: "a", Check: ok}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	rec = httptest.NewRecorder()
	Handler(Check{Name: "a", Check: down}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
