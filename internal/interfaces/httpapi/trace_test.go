package httpapi

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func TestStartSpan(t *testing.T) {
	parent := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{0x01},
		SpanID:     trace.SpanID{0x02},
		TraceFlags: trace.FlagsSampled,
	})
	traced := trace.ContextWithSpanContext(context.Background(), parent)

	tests := []struct {
		name      string
		ctx       context.Context
		span      string
		wantValid bool
	}{
		{name: "handler span under request", ctx: traced, span: "httpapi.Handler.GetTournament", wantValid: true},
		{name: "helper span under request", ctx: traced, span: "httpapi.writeError", wantValid: false},
		{name: "handler span without request span", ctx: context.Background(), span: "httpapi.Handler.Healthz", wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, span := startSpan(tt.ctx, tt.span)
			defer span.End()
			if got := span.SpanContext().IsValid(); got != tt.wantValid {
				t.Fatalf("startSpan(%q) valid=%v want=%v", tt.span, got, tt.wantValid)
			}
		})
	}
}
