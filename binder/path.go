package binder

import "net/http"

// Path binds route parameters into fields tagged `path:"name"`. The
// extractor resolves a parameter by name; with chi that is chi.URLParam:
//
//	type request struct {
//		ID string `path:"id"`
//	}
//
//	r.Get("/{id}", handler.Wrap(h, handler.WithBinders[request](binder.Path(chi.URLParam))))
//
// Only fields that carry an explicit path tag are considered.
func Path(extractor func(r *http.Request, name string) string) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if extractor == nil {
			return ErrBinderNotApplicable
		}
		return bindToStruct(v, "path", func(name string) []string {
			if value := extractor(r, name); value != "" {
				return []string{value}
			}
			return nil
		}, ErrInvalidPath)
	}
}
