package binder

import (
	"fmt"
	"net/http"
)

// Form binds an application/x-www-form-urlencoded body into v using the
// `form` struct tag. Other content types yield ErrBinderNotApplicable.
//
// Supported field types are strings, integers, floats, bools, pointers to
// those (set only when the key is present) and slices, which accept both
// repeated keys and comma-separated values.
func Form() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if mediaType(r) != MIMEApplicationForm {
			return ErrBinderNotApplicable
		}
		limitBody(r)

		if err := r.ParseForm(); err != nil {
			if isTooLarge(err) {
				return fmt.Errorf("%w: %v", ErrBodyTooLarge, err)
			}
			return fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}
		return bindToStruct(v, "form", lookupValues(r.PostForm), ErrInvalidForm)
	}
}
