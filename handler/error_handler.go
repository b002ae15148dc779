package handler

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/courseapi/pkg/logger"
	"github.com/dmitrymomot/courseapi/pkg/requestid"
)

// NewErrorHandler returns the default error handler. It logs client errors
// at warn and server errors at error level, then renders the JSON error
// envelope. A nil log discards records.
func NewErrorHandler(log *slog.Logger) ErrorHandler {
	if log == nil {
		log = logger.Noop()
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		httpErr := AsHTTPError(err)

		level := slog.LevelError
		if httpErr.Code < http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		log.LogAttrs(r.Context(), level, "request error",
			logger.RequestID(requestid.FromContext(r.Context())),
			logger.Error(err),
			slog.Int("status_code", httpErr.Code),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("error_handler"),
		)

		if renderErr := JSONError(err).Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.ErrorContext(r.Context(), "failed to render error response", logger.Error(renderErr))
		}
	}
}
