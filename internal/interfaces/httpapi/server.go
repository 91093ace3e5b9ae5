package httpapi

import (
	"net/http"

	"github.com/riskibarqy/mystats/internal/platform/id"
	"github.com/riskibarqy/mystats/internal/platform/logging"
)

// RouterOptions carries the cross-cutting pieces of the HTTP surface.
// A nil MetricsHandler leaves /metrics unregistered.
type RouterOptions struct {
	CORSAllowedOrigins []string
	InternalJobToken   string
	MetricsHandler     http.Handler
	RequestIDGenerator id.Generator
}

func NewRouter(handler *Handler, logger *logging.Logger, opts RouterOptions) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, opts.MetricsHandler)
	registerTeamRoutes(mux, handler)
	registerPlayerRoutes(mux, handler)
	registerInternalJobRoutes(mux, handler, opts.InternalJobToken)

	return RequestTracing(
		RequestID(opts.RequestIDGenerator,
			RequestLogging(logger,
				CORS(opts.CORSAllowedOrigins, recoverPanic(logger, mux)))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec, "request_id", requestIDFromContext(ctx))
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
