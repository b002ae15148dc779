package httpserver

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/courseapi/pkg/logger"
)

// HealthCheckHandler returns a handler for liveness and readiness probes.
//
//   - Liveness: with no dependency functions it returns 200 "ALIVE".
//   - Readiness: every dependency function runs with the request context
//     bounded by timeout; all must succeed for 200 "READY", otherwise the
//     handler returns 503 "NOT_READY".
func HealthCheckHandler(log *slog.Logger, timeout time.Duration, funcs ...func(context.Context) error) http.HandlerFunc {
	if log == nil {
		log = logger.Noop()
	}

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")

		if len(funcs) == 0 {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ALIVE"))
			return
		}

		ctx := r.Context()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		for _, f := range funcs {
			if err := f(ctx); err != nil {
				log.WarnContext(ctx, "Readiness check failed", logger.Error(err))
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("NOT_READY"))
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	}
}
