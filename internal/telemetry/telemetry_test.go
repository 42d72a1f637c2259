package telemetry

import (
	"context"
	"testing"
)

func TestResourceAttributes(t *testing.T) {
	got := make(map[string]string)
	for _, kv := range resourceAttributes() {
		got[string(kv.Key)] = kv.Value.AsString()
	}
	if got["service.name"] != "dungeondesigner" {
		t.Errorf("Unexpected service.name %q", got["service.name"])
	}
	if got["service.version"] != ServiceVersion {
		t.Errorf("Unexpected service.version %q", got["service.version"])
	}
	if got["host.name"] == "" {
		t.Error("host.name should never be empty")
	}
}

func TestDisableDropsSpans(t *testing.T) {
	Disable()
	_, span := Tracer("designer").Start(context.Background(), "designer.save")
	defer span.End()
	if span.IsRecording() {
		t.Error("Spans should not record after Disable")
	}
	if span.SpanContext().IsValid() {
		t.Error("No-op spans should carry no trace id")
	}
}
