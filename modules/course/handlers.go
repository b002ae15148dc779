package course

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/courseapi/handler"
	"github.com/dmitrymomot/courseapi/pkg/logger"
	pkgmongo "github.com/dmitrymomot/courseapi/pkg/mongo"
)

type idRequest struct {
	ID string `path:"id"`
}

type updateRequest struct {
	ID string `path:"id" json:"-" form:"-"`
	Input
}

// Handlers serves the /api/courses resource on top of a Store.
type Handlers struct {
	store Store
	log   *slog.Logger
}

// NewHandlers returns course handlers. A nil log discards records.
func NewHandlers(store Store, log *slog.Logger) *Handlers {
	if log == nil {
		log = logger.Noop()
	}
	return &Handlers{store: store, log: log.With(logger.Component("course"))}
}

func (h *Handlers) List(ctx handler.Context, _ struct{}) handler.Response {
	courses, err := h.store.List(ctx)
	if err != nil {
		return h.fail(ctx, err)
	}
	return handler.JSON(courses, handler.WithJSONMeta(map[string]any{"count": len(courses)}))
}

func (h *Handlers) Get(ctx handler.Context, req idRequest) handler.Response {
	c, err := h.store.Get(ctx, req.ID)
	if err != nil {
		return h.fail(ctx, err)
	}
	return handler.JSON(c)
}

func (h *Handlers) Create(ctx handler.Context, in Input) handler.Response {
	c, err := h.store.Create(ctx, in)
	if err != nil {
		return h.fail(ctx, err)
	}
	h.log.InfoContext(ctx, "Course created", logger.CourseID(c.ID.Hex()))
	return handler.JSON(c, handler.WithJSONStatus(http.StatusCreated))
}

func (h *Handlers) Update(ctx handler.Context, req updateRequest) handler.Response {
	c, err := h.store.Update(ctx, req.ID, req.Input)
	if err != nil {
		return h.fail(ctx, err)
	}
	return handler.JSON(c)
}

func (h *Handlers) Delete(ctx handler.Context, req idRequest) handler.Response {
	if err := h.store.Delete(ctx, req.ID); err != nil {
		return h.fail(ctx, err)
	}
	h.log.InfoContext(ctx, "Course deleted", logger.CourseID(req.ID))
	return handler.JSON(map[string]string{"message": "Course deleted"})
}

func (h *Handlers) fail(ctx handler.Context, err error) handler.Response {
	httpErr := toHTTPError(err)
	if httpErr.Code >= http.StatusInternalServerError {
		h.log.ErrorContext(ctx, "Course store failed",
			logger.Error(err),
			slog.Int("status_code", httpErr.Code),
		)
	}
	return handler.JSONError(httpErr)
}

// toHTTPError maps store errors to responses. A malformed id is reported as
// 404 because no document can have it.
func toHTTPError(err error) handler.HTTPError {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrInvalidID):
		return handler.ErrNotFound
	case errors.Is(err, pkgmongo.ErrNotConnected):
		return handler.ErrServiceUnavailable
	default:
		return handler.ErrInternalServerError
	}
}
