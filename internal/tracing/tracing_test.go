package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/baggage"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRecordingTracer() (Tracer, *tracetest.SpanRecorder) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	return NewTracer(tp, "test"), recorder
}

func TestSpanRecordsLogTagAndBaggage(t *testing.T) {
	tracer, recorder := newRecordingTracer()

	_, span := tracer.StartSpan(context.Background(), "createInvoice")
	span.Log("createInvoice")
	span.SetTag("customer", "a@b.com")
	span.SetTag("invoice_number", int64(1234567890))
	span.SetBaggageItem("taxId", "ES-B12345678")
	span.Finish()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "createInvoice", ended[0].Name())
	assert.Contains(t, ended[0].Attributes(), attribute.String("customer", "a@b.com"))
	assert.Contains(t, ended[0].Attributes(), attribute.Int64("invoice_number", 1234567890))
	require.Len(t, ended[0].Events(), 1)
	assert.Equal(t, "createInvoice", ended[0].Events()[0].Name)

	bag := baggage.FromContext(span.Context())
	assert.Equal(t, "ES-B12345678", bag.Member("taxId").Value())
}

func TestSpanRecordError(t *testing.T) {
	tracer, recorder := newRecordingTracer()

	_, span := tracer.StartSpan(context.Background(), "issueInvoice")
	span.RecordError(errors.New("boom"))
	span.RecordError(nil)
	span.Finish()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
}

func TestNoopTracerKeepsBaggage(t *testing.T) {
	_, span := NewNoopTracer().StartSpan(context.Background(), "createInvoice")
	defer span.Finish()

	span.SetBaggageItem("taxId", "X1")
	assert.Equal(t, "X1", baggage.FromContext(span.Context()).Member("taxId").Value())
}
