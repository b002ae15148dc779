// Package httpserver runs an http.Handler with configurable timeouts,
// graceful shutdown and health-check handlers.
//
// The listen address comes from Config: HTTP_HOST (default 0.0.0.0) and PORT
// (default 5000). Run binds the listener before invoking start hooks, so a
// hook that logs "Server running on port N" only fires once the port is
// actually open. Run then blocks until its context is cancelled, SIGINT or
// SIGTERM arrives, or Shutdown is called.
//
//	var cfg httpserver.Config
//	config.MustLoad(&cfg)
//
//	srv := httpserver.NewFromConfig(cfg,
//		httpserver.WithLogger(log),
//		httpserver.WithStartHook(func(l *slog.Logger, addr net.Addr) {
//			l.Info("Server running", "addr", addr.String())
//		}),
//	)
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// Bind failures are wrapped with ErrStart and shutdown failures with
// ErrShutdown; use errors.Is to tell them apart.
package httpserver
