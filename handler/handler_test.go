package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/courseapi/binder"
	"github.com/dmitrymomot/courseapi/handler"
	"github.com/dmitrymomot/courseapi/pkg/logger"
	"github.com/dmitrymomot/courseapi/pkg/requestid"
)

type createRequest struct {
	Name string `json:"name" form:"name"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) handler.JSONResponse {
	t.Helper()
	var body handler.JSONResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestWrap(t *testing.T) {
	t.Parallel()

	echo := handler.Wrap(
		handler.HandlerFunc[createRequest](func(ctx handler.Context, req createRequest) handler.Response {
			return handler.JSON(map[string]string{"name": req.Name}, handler.WithJSONStatus(http.StatusCreated))
		}),
		handler.WithBinders[createRequest](binder.Body()),
	)

	t.Run("binds and renders data envelope", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"go"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		echo(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"data":{"name":"go"}}`, rec.Body.String())
	})

	t.Run("urlencoded body", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("name=web"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		echo(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `{"data":{"name":"web"}}`, rec.Body.String())
	})

	t.Run("malformed body is 400", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		echo(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decode(t, rec)
		require.NotNil(t, body.Error)
		assert.Equal(t, "bad_request", body.Error.Code)
		assert.Contains(t, body.Error.Message, "invalid JSON")
	})

	t.Run("unsupported media type is 415", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("name"))
		req.Header.Set("Content-Type", "text/plain")
		rec := httptest.NewRecorder()
		echo(rec, req)

		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
		assert.Equal(t, "unsupported_media_type", decode(t, rec).Error.Code)
	})

	t.Run("nil response", func(t *testing.T) {
		t.Parallel()
		h := handler.Wrap(handler.HandlerFunc[struct{}](func(handler.Context, struct{}) handler.Response { return nil }))
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":{"code":"internal_error","message":"Internal Server Error"}}`, rec.Body.String())
	})

	t.Run("custom error handler", func(t *testing.T) {
		t.Parallel()
		var got error
		h := handler.Wrap(
			handler.HandlerFunc[createRequest](func(handler.Context, createRequest) handler.Response { return handler.Text("unreachable") }),
			handler.WithBinders[createRequest](func(*http.Request, any) error { return errors.New("boom") }),
			handler.WithErrorHandler[createRequest](func(ctx handler.Context, err error) {
				got = err
				ctx.ResponseWriter().WriteHeader(http.StatusTeapot)
			}),
		)
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.EqualError(t, got, "boom")
	})

	t.Run("not applicable binders are skipped", func(t *testing.T) {
		t.Parallel()
		h := handler.Wrap(
			handler.HandlerFunc[createRequest](func(_ handler.Context, req createRequest) handler.Response { return handler.Text(req.Name) }),
			handler.WithBinders[createRequest](binder.JSON()),
		)
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Body.String())
	})
}

func TestJSONError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"http error", handler.ErrNotFound, http.StatusNotFound, "not_found", "Not Found"},
		{"wrapped http error", errors.Join(handler.ErrServiceUnavailable, errors.New("dial tcp")), http.StatusServiceUnavailable, "service_unavailable", "Service Unavailable"},
		{"internal error hides details", errors.New("secret dsn"), http.StatusInternalServerError, "internal_error", "Internal Server Error"},
		{"binder error keeps details", binder.ErrInvalidPath, http.StatusBadRequest, "bad_request", "invalid path parameter"},
		{"too large", binder.ErrBodyTooLarge, http.StatusRequestEntityTooLarge, "request_entity_too_large", "request body too large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			require.NoError(t, handler.JSONError(tt.err).Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))

			assert.Equal(t, tt.status, rec.Code)
			body := decode(t, rec)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
			assert.Equal(t, tt.message, body.Error.Message)
			assert.Nil(t, body.Data)
		})
	}
}

func TestJSONMeta(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()
	require.NoError(t, handler.JSON([]int{1, 2}, handler.WithJSONMeta(map[string]any{"count": 2})).Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
	assert.JSONEq(t, `{"data":[1,2],"meta":{"count":2}}`, rec.Body.String())
}

func TestText(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()
	require.NoError(t, handler.Text("Course API server is running!").Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "Course API server is running!", rec.Body.String())
}

func TestErrorHandlerLogs(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithFormat(logger.FormatJSON))

	req := httptest.NewRequest(http.MethodGet, "/api/courses/x", nil)
	req = req.WithContext(requestid.WithContext(req.Context(), "req-1"))
	rec := httptest.NewRecorder()
	handler.NewErrorHandler(log)(handler.NewContext(rec, req), handler.ErrNotFound)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	out := buf.String()
	assert.Contains(t, out, `"level":"WARN"`)
	assert.Contains(t, out, `"request_id":"req-1"`)
	assert.Contains(t, out, `"status_code":404`)
}
