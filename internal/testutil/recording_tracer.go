package testutil

import (
	"context"
	"sync"

	"github.com/flexprice/invoicing/internal/tracing"
)

var _ tracing.Tracer = (*RecordingTracer)(nil)

// RecordedSpan is what a RecordingTracer captured for one span
type RecordedSpan struct {
	Name     string
	Logs     []string
	Tags     map[string]any
	Baggage  map[string]string
	Errors   []error
	Finished bool
}

// RecordingTracer keeps every span in memory so tests can assert on them
type RecordingTracer struct {
	mu    sync.Mutex
	spans []*RecordedSpan
}

func NewRecordingTracer() *RecordingTracer {
	return &RecordingTracer{}
}

func (t *RecordingTracer) StartSpan(ctx context.Context, name string) (context.Context, tracing.Span) {
	rec := &RecordedSpan{
		Name:    name,
		Tags:    make(map[string]any),
		Baggage: make(map[string]string),
	}

	t.mu.Lock()
	t.spans = append(t.spans, rec)
	t.mu.Unlock()

	return ctx, &recordingSpan{tracer: t, rec: rec, ctx: ctx}
}

// Spans returns a snapshot of the recorded spans in start order
func (t *RecordingTracer) Spans() []RecordedSpan {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]RecordedSpan, 0, len(t.spans))
	for _, s := range t.spans {
		out = append(out, *s)
	}
	return out
}

// SpansNamed returns the recorded spans with the given name
func (t *RecordingTracer) SpansNamed(name string) []RecordedSpan {
	var out []RecordedSpan
	for _, s := range t.Spans() {
		if s.Name == name {
			out = append(out, s)
		}
	}
	return out
}

func (t *RecordingTracer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.spans = nil
}

type recordingSpan struct {
	tracer *RecordingTracer
	rec    *RecordedSpan
	ctx    context.Context
}

func (s *recordingSpan) Log(msg string) {
	s.tracer.mu.Lock()
	defer s.tracer.mu.Unlock()
	s.rec.Logs = append(s.rec.Logs, msg)
}

func (s *recordingSpan) SetTag(key string, value any) {
	s.tracer.mu.Lock()
	defer s.tracer.mu.Unlock()
	s.rec.Tags[key] = value
}

func (s *recordingSpan) SetBaggageItem(key, value string) {
	s.tracer.mu.Lock()
	defer s.tracer.mu.Unlock()
	s.rec.Baggage[key] = value
}

func (s *recordingSpan) RecordError(err error) {
	s.tracer.mu.Lock()
	defer s.tracer.mu.Unlock()
	s.rec.Errors = append(s.rec.Errors, err)
}

func (s *recordingSpan) Context() context.Context {
	return s.ctx
}

func (s *recordingSpan) Finish() {
	s.tracer.mu.Lock()
	defer s.tracer.mu.Unlock()
	s.rec.Finished = true
}
