package httpapi

import (
	"context"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const handlerSpanPrefix = "httpapi.Handler."

var (
	apiTracer = otel.Tracer("mystats/internal/interfaces/httpapi")
	noopSpan  = trace.SpanFromContext(context.Background())
)

// pathValueAttrs names the route wildcards copied onto handler spans.
var pathValueAttrs = []struct {
	wildcard string
	key      attribute.Key
}{
	{"teamID", "mystats.team_id"},
	{"playerID", "mystats.player_id"},
	{"entityID", "mystats.entity_id"},
}

// startSpan opens a child span for handlers only. Middleware and helpers get
// a noop span, as do requests that otelhttp did not trace.
func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() || !shouldCreateHTTPAPISpan(name) {
		return ctx, noopSpan
	}
	return apiTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func shouldCreateHTTPAPISpan(name string) bool {
	return strings.HasPrefix(name, handlerSpanPrefix)
}

func pathAttrs(r *http.Request) []attribute.KeyValue {
	var attrs []attribute.KeyValue
	for _, item := range pathValueAttrs {
		if value := r.PathValue(item.wildcard); value != "" {
			attrs = append(attrs, item.key.String(value))
		}
	}
	return attrs
}
