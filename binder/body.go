package binder

import (
	"errors"
	"fmt"
	"net/http"
)

// Body accepts either a JSON or a urlencoded body, mirroring an Express app
// that mounts both bodyParser.json and bodyParser.urlencoded. Any other
// content type is rejected with ErrUnsupportedMediaType.
func Body() func(r *http.Request, v any) error {
	binders := []func(*http.Request, any) error{JSON(), Form()}
	return func(r *http.Request, v any) error {
		for _, bind := range binders {
			err := bind(r, v)
			if errors.Is(err, ErrBinderNotApplicable) {
				continue
			}
			return err
		}
		return fmt.Errorf("%w: %q, expected %s or %s",
			ErrUnsupportedMediaType, r.Header.Get("Content-Type"), MIMEApplicationJSON, MIMEApplicationForm)
	}
}
