package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/baggage"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Tracer starts scoped spans. Callers must Finish the returned span on every
// exit path, normally with defer.
type Tracer interface {
	StartSpan(ctx context.Context, name string) (context.Context, Span)
}

// Span is a scoped tracing handle
type Span interface {
	// Log records a timestamped message on the span
	Log(msg string)
	// SetTag records a key/value attribute on the span
	SetTag(key string, value any)
	// SetBaggageItem adds a key/value to the propagated context
	SetBaggageItem(key, value string)
	// RecordError marks the span as failed
	RecordError(err error)
	// Context returns the span context including baggage set so far
	Context() context.Context
	// Finish ends the span
	Finish()
}

type otelTracer struct {
	tracer trace.Tracer
}

// NewTracer wraps an OpenTelemetry tracer provider
func NewTracer(tp trace.TracerProvider, instrumentationName string) Tracer {
	return &otelTracer{tracer: tp.Tracer(instrumentationName)}
}

// NewNoopTracer returns a tracer that records nothing but still carries baggage
func NewNoopTracer() Tracer {
	return NewTracer(noop.NewTracerProvider(), "noop")
}

func (t *otelTracer) StartSpan(ctx context.Context, name string) (context.Context, Span) {
	ctx, span := t.tracer.Start(ctx, name)
	s := &otelSpan{ctx: ctx, span: span}
	return ctx, s
}

type otelSpan struct {
	ctx  context.Context
	span trace.Span
}

func (s *otelSpan) Log(msg string) {
	s.span.AddEvent(msg)
}

func (s *otelSpan) SetTag(key string, value any) {
	s.span.SetAttributes(toAttribute(key, value))
}

func (s *otelSpan) SetBaggageItem(key, value string) {
	member, err := baggage.NewMemberRaw(key, value)
	if err != nil {
		s.span.RecordError(fmt.Errorf("invalid baggage item %q: %w", key, err))
		return
	}

	bag, err := baggage.FromContext(s.ctx).SetMember(member)
	if err != nil {
		s.span.RecordError(fmt.Errorf("failed to set baggage item %q: %w", key, err))
		return
	}

	s.ctx = baggage.ContextWithBaggage(s.ctx, bag)
}

func (s *otelSpan) RecordError(err error) {
	if err == nil {
		return
	}
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

func (s *otelSpan) Context() context.Context {
	return s.ctx
}

func (s *otelSpan) Finish() {
	s.span.End()
}

func toAttribute(key string, value any) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case bool:
		return attribute.Bool(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case float64:
		return attribute.Float64(key, v)
	case fmt.Stringer:
		return attribute.String(key, v.String())
	default:
		return attribute.String(key, fmt.Sprint(v))
	}
}
