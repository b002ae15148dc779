package binder

import (
	"errors"
	"mime"
	"net/http"
	"strings"
)

const (
	MIMEApplicationJSON = "application/json"
	MIMEApplicationForm = "application/x-www-form-urlencoded"
)

// MaxBodySize caps request bodies read by the JSON and form binders.
var MaxBodySize int64 = 1 << 20

// mediaType returns the lowercased media type of the request without
// parameters, or "" when the header is missing or malformed.
func mediaType(r *http.Request) string {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return ""
	}
	return strings.ToLower(mt)
}

func limitBody(r *http.Request) {
	if MaxBodySize > 0 && r.Body != nil {
		r.Body = http.MaxBytesReader(nil, r.Body, MaxBodySize)
	}
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
