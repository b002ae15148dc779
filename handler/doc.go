// Package handler adapts typed request handlers to net/http.
//
// Wrap runs the configured binders, calls the HandlerFunc and renders the
// returned Response. Successful payloads are wrapped in {"data": ...};
// failures in {"error": {"code": ..., "message": ...}} with the status taken
// from an HTTPError or derived from binder errors by AsHTTPError.
package handler
