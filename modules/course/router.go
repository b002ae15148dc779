package course

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/courseapi/binder"
	"github.com/dmitrymomot/courseapi/handler"
)

// Router mounts the course CRUD routes:
//
//	GET    /       list, newest first
//	POST   /       create from a JSON or urlencoded body
//	GET    /{id}   fetch one
//	PUT    /{id}   partial update of the supplied fields
//	DELETE /{id}   delete
//
// Typical use:
//
//	r.Mount("/api/courses", course.Router(store, log))
func Router(store Store, log *slog.Logger) chi.Router {
	h := NewHandlers(store, log)
	errs := handler.NewErrorHandler(log)
	path := binder.Path(chi.URLParam)

	r := chi.NewRouter()
	r.Get("/", wrap[struct{}](h.List, errs))
	r.Post("/", wrap[Input](h.Create, errs, binder.Body()))
	r.Get("/{id}", wrap[idRequest](h.Get, errs, path))
	r.Put("/{id}", wrap[updateRequest](h.Update, errs, path, binder.Body()))
	r.Delete("/{id}", wrap[idRequest](h.Delete, errs, path))
	return r
}

func wrap[R any](h handler.HandlerFunc[R], errs handler.ErrorHandler, binders ...handler.Bind) http.HandlerFunc {
	return handler.Wrap(h, handler.WithErrorHandler[R](errs), handler.WithBinders[R](binders...))
}
