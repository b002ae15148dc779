package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/courseapi/modules/course"
	"github.com/dmitrymomot/courseapi/pkg/metrics"
	pkgmongo "github.com/dmitrymomot/courseapi/pkg/mongo"
	"github.com/dmitrymomot/courseapi/pkg/requestid"
)

// unavailableStore behaves like a store whose database never connected.
type unavailableStore struct{}

func (unavailableStore) List(context.Context) ([]course.Course, error) {
	return nil, pkgmongo.ErrNotConnected
}

func (unavailableStore) Get(context.Context, string) (course.Course, error) {
	return course.Course{}, pkgmongo.ErrNotConnected
}

func (unavailableStore) Create(context.Context, course.Input) (course.Course, error) {
	return course.Course{}, pkgmongo.ErrNotConnected
}

func (unavailableStore) Update(context.Context, string, course.Input) (course.Course, error) {
	return course.Course{}, pkgmongo.ErrNotConnected
}

func (unavailableStore) Delete(context.Context, string) error {
	return pkgmongo.ErrNotConnected
}

func newTestRouter(readiness ...func(context.Context) error) http.Handler {
	return newRouter(routerDeps{
		store:          unavailableStore{},
		metrics:        metrics.New("test"),
		readiness:      readiness,
		allowedOrigins: []string{"*"},
	})
}

func get(t *testing.T, h http.Handler, path string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRootWithoutDatabase(t *testing.T) {
	t.Parallel()
	rec := get(t, newTestRouter(), "/")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, rootMessage, rec.Body.String())
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get(requestid.Header))
}

func TestCoursesWithoutDatabase(t *testing.T) {
	t.Parallel()
	rec := get(t, newTestRouter(), "/api/courses")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"error":{"code":"service_unavailable","message":"Service Unavailable"}}`, rec.Body.String())
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()
	notConnected := func(context.Context) error { return errors.Join(pkgmongo.ErrHealthcheckFailed, pkgmongo.ErrNotConnected) }
	ok := func(context.Context) error { return nil }

	rec := get(t, newTestRouter(notConnected), "/health/live")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ALIVE", rec.Body.String())

	rec = get(t, newTestRouter(notConnected), "/health/ready")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "NOT_READY", rec.Body.String())

	rec = get(t, newTestRouter(ok), "/health/ready")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "READY", rec.Body.String())
}

func TestCORS(t *testing.T) {
	t.Parallel()
	h := newTestRouter()

	rec := get(t, h, "/", "Origin", "https://example.com")
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	req := httptest.NewRequest(http.MethodOptions, "/api/courses/1", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodDelete)
	pre := httptest.NewRecorder()
	h.ServeHTTP(pre, req)
	assert.Equal(t, http.StatusOK, pre.Code)
	assert.Contains(t, pre.Header().Get("Access-Control-Allow-Methods"), http.MethodDelete)
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()
	h := newTestRouter()
	get(t, h, "/")
	get(t, h, "/api/courses")

	rec := get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `test_http_requests_total{method="GET",route="/",status="200"} 1`)
	assert.Regexp(t, `test_http_requests_total\{method="GET",route="/api/courses/?",status="503"\} 1`, string(body))
}
