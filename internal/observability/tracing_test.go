package observability

import (
	"errors"
	"strings"
	"testing"
)

func TestStartSpan(t *testing.T) {
	buf, ctx := newCapture("debug")

	ctx, span := StartSpan(ctx, "combine")
	if got, ok := SpanFromContext(ctx); !ok || got != span {
		t.Fatal("expected span to be stored in the context")
	}

	span.SetAttribute("mode", "add")
	span.AddEvent("snapshot")
	span.End()

	if v, ok := span.Attribute("mode"); !ok || v != "add" {
		t.Errorf("expected mode attribute, got %v", v)
	}
	if ev := span.Events(); len(ev) != 1 || ev[0] != "snapshot" {
		t.Errorf("unexpected events %v", ev)
	}
	if !strings.Contains(buf.String(), "Span ended") {
		t.Errorf("expected end log, got %q", buf.String())
	}
}

func TestBuilderSpanFailure(t *testing.T) {
	buf, ctx := newCapture("debug")

	_, span := StartBuilderSpan(ctx, "sketch", 2)
	boom := errors.New("boom")
	first := EndSpan(span, boom)
	second := span.End()

	if !errors.Is(span.Err(), boom) {
		t.Errorf("expected recorded error, got %v", span.Err())
	}
	if first != second {
		t.Error("End must be idempotent")
	}
	out := buf.String()
	if strings.Count(out, "Span failed") != 1 {
		t.Errorf("expected exactly one failure log, got %q", out)
	}
	if !strings.Contains(out, `"builder":"sketch"`) || !strings.Contains(out, `"depth":2`) {
		t.Errorf("expected builder and depth in output, got %q", out)
	}
}

func TestEndSpanNil(t *testing.T) {
	if EndSpan(nil, nil) != 0 {
		t.Error("expected zero duration for nil span")
	}
}
