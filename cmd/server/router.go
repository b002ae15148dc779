package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dmitrymomot/courseapi/handler"
	"github.com/dmitrymomot/courseapi/modules/course"
	"github.com/dmitrymomot/courseapi/pkg/httpserver"
	"github.com/dmitrymomot/courseapi/pkg/metrics"
	"github.com/dmitrymomot/courseapi/pkg/requestid"
)

const rootMessage = "Course API server is running!"

const readinessTimeout = 5 * time.Second

type routerDeps struct {
	store          course.Store
	metrics        *metrics.Metrics
	readiness      []func(context.Context) error
	allowedOrigins []string
	log            *slog.Logger
}

func newRouter(deps routerDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer,
		requestid.Middleware,
		deps.metrics.Middleware,
		cors.Handler(cors.Options{
			AllowedOrigins: deps.allowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
			AllowedHeaders: []string{"*"},
			ExposedHeaders: []string{requestid.Header},
		}),
	)

	r.Get("/", handler.Wrap(handler.HandlerFunc[struct{}](func(handler.Context, struct{}) handler.Response {
		return handler.Text(rootMessage)
	})))
	r.Get("/health/live", httpserver.HealthCheckHandler(deps.log, 0))
	r.Get("/health/ready", httpserver.HealthCheckHandler(deps.log, readinessTimeout, deps.readiness...))
	r.Method(http.MethodGet, "/metrics", deps.metrics.Handler())
	r.Mount("/api/courses", course.Router(deps.store, deps.log))

	return r
}
