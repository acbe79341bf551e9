package observability

import (
	"context"
	"log/slog"
	"time"
)

// Span times one construction scope. It is not safe for concurrent use.
type Span interface {
	SetAttribute(key string, value any)
	AddEvent(name string)
	RecordError(err error)
	End() time.Duration
}

// LocalSpan is a lightweight span that reports through the context logger.
type LocalSpan struct {
	ctx        context.Context
	name       string
	startTime  time.Time
	attributes map[string]any
	events     []string
	err        error
	ended      bool
	duration   time.Duration
}

// SetAttribute sets an attribute on the span.
func (s *LocalSpan) SetAttribute(key string, value any) {
	if s.attributes == nil {
		s.attributes = make(map[string]any)
	}
	s.attributes[key] = value
}

// AddEvent adds an event to the span.
func (s *LocalSpan) AddEvent(name string) {
	s.events = append(s.events, name)
}

// RecordError records an error in the span.
func (s *LocalSpan) RecordError(err error) {
	if err != nil {
		s.err = err
	}
}

// Err returns the recorded error.
func (s *LocalSpan) Err() error { return s.err }

// Events returns the recorded event names.
func (s *LocalSpan) Events() []string { return append([]string(nil), s.events...) }

// Attribute returns a recorded attribute.
func (s *LocalSpan) Attribute(key string) (any, bool) {
	v, ok := s.attributes[key]
	return v, ok
}

// End ends the span once and logs its duration. Later calls return the first duration.
func (s *LocalSpan) End() time.Duration {
	if s.ended {
		return s.duration
	}
	s.ended = true
	s.duration = time.Since(s.startTime)

	attrs := []slog.Attr{
		slog.String("span", s.name),
		slog.Float64("duration_ms", float64(s.duration.Microseconds())/1000),
	}
	for k, v := range s.attributes {
		attrs = append(attrs, slog.Any(k, v))
	}
	if s.err != nil {
		attrs = append(attrs, slog.String("error", s.err.Error()))
		WarnContext(s.ctx, "Span failed", attrs...)
	} else {
		DebugContext(s.ctx, "Span ended", attrs...)
	}
	return s.duration
}

// StartSpan creates a span for a named operation and stores it in the returned context.
func StartSpan(ctx context.Context, spanName string) (context.Context, *LocalSpan) {
	span := &LocalSpan{
		name:      spanName,
		startTime: time.Now(),
	}
	ctx = context.WithValue(ctx, spanContextKey, span)
	span.ctx = ctx
	DebugContext(ctx, "Span started", slog.String("span", spanName))
	return ctx, span
}

// StartBuilderSpan creates a span for a builder scope.
func StartBuilderSpan(ctx context.Context, variant string, depth int) (context.Context, *LocalSpan) {
	ctx = WithBuilder(ctx, variant)
	ctx, span := StartSpan(ctx, "builder."+variant)
	span.SetAttribute("depth", depth)
	return ctx, span
}

// EndSpan records err, if any, and ends the span.
func EndSpan(span Span, err error) time.Duration {
	if span == nil {
		return 0
	}
	span.RecordError(err)
	return span.End()
}

// Context key for storing span context.
type contextKey string

const spanContextKey contextKey = "span"

// SpanFromContext extracts span from context.
func SpanFromContext(ctx context.Context) (Span, bool) {
	span, ok := ctx.Value(spanContextKey).(Span)
	return span, ok
}
