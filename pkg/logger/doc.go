// Package logger builds *slog.Logger instances with a consistent shape across
// the service.
//
// New accepts functional options that select the output format (text or
// JSON), the minimum level, static attributes and ContextExtractor callbacks.
// Extractors run on every record so request-scoped values such as the request
// ID end up in each line logged with a request context.
//
// WithEnvironment applies the usual defaults: text at debug level in
// development, JSON at info level in staging and production.
//
//	log := logger.New(
//		logger.WithEnvironment("production", "course-api"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "Connected to MongoDB", logger.Attempt(1))
//
// Attribute helpers (Error, Attempt, Delay, Component, ...) keep key names
// stable. Error returns an empty attribute for a nil error, so it can be passed
// without a nil check.
package logger
