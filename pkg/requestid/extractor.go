package requestid

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/courseapi/pkg/logger"
)

// LoggerExtractor adds "request_id" to every log record emitted with a
// request-scoped context.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		attr := logger.RequestID(FromContext(ctx))
		return attr, attr.Key != ""
	}
}
