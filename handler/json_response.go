package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrymomot/courseapi/binder"
)

// JSONResponse is the response envelope.
type JSONResponse struct {
	Data  any            `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *ErrorDetail   `json:"error,omitempty"`
}

// ErrorDetail describes a failed request.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type jsonResponse struct {
	status int
	body   JSONResponse
}

func (j jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSONOption configures a JSON response.
type JSONOption func(*jsonResponse)

// WithJSONStatus sets the HTTP status code.
func WithJSONStatus(status int) JSONOption {
	return func(r *jsonResponse) { r.status = status }
}

// WithJSONMeta adds metadata to the envelope.
func WithJSONMeta(meta map[string]any) JSONOption {
	return func(r *jsonResponse) { r.body.Meta = meta }
}

// JSON wraps v in {"data": v} with status 200 unless overridden.
func JSON(v any, opts ...JSONOption) Response {
	r := &jsonResponse{status: http.StatusOK, body: JSONResponse{Data: v}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// JSONError renders err as {"error": {...}} with the status derived from it.
func JSONError(err error, opts ...JSONOption) Response {
	httpErr := AsHTTPError(err)
	r := &jsonResponse{
		status: httpErr.Code,
		body: JSONResponse{Error: &ErrorDetail{
			Code:    httpErr.Key,
			Message: errorMessage(httpErr, err),
		}},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// AsHTTPError maps err onto an HTTPError. Binder failures become 400, 413
// or 415; anything unrecognised becomes 500.
func AsHTTPError(err error) HTTPError {
	var httpErr HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr
	case errors.Is(err, binder.ErrUnsupportedMediaType):
		return ErrUnsupportedMediaType
	case errors.Is(err, binder.ErrBodyTooLarge):
		return ErrRequestEntityTooLarge
	case errors.Is(err, binder.ErrInvalidJSON),
		errors.Is(err, binder.ErrInvalidForm),
		errors.Is(err, binder.ErrInvalidPath):
		return ErrBadRequest
	default:
		return ErrInternalServerError
	}
}

// errorMessage exposes binder details to clients. HTTPError values and
// internal errors render the status text.
func errorMessage(httpErr HTTPError, err error) string {
	var direct HTTPError
	if httpErr.Code >= http.StatusInternalServerError || errors.As(err, &direct) {
		return http.StatusText(httpErr.Code)
	}
	return err.Error()
}
