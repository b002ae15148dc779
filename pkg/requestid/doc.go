// Package requestid attaches a correlation ID to every HTTP request.
//
// Middleware keeps a client supplied X-Request-ID when it is made of letters,
// digits, "-" and "_" (at most 128 characters) and otherwise generates a
// UUIDv4. The ID is stored in the request context and echoed back in the
// response header.
//
// LoggerExtractor plugs the ID into the logger package so that every record
// logged with the request context carries a "request_id" attribute:
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	r.Use(requestid.Middleware)
package requestid
