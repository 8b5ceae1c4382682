package observability

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/rosterview/internal/platform/logging"
	otellog "go.opentelemetry.io/otel/log"
)

func TestIsHealthRequestLog(t *testing.T) {
	if !isHealthRequestLog("http_request", []any{"http_path", "/healthz"}) {
		t.Fatalf("expected health check log to be skipped")
	}
	if isHealthRequestLog("http_request", []any{"http_path", "/v1/view/heatmap"}) {
		t.Fatalf("did not expect non-health log to be skipped")
	}
	if isHealthRequestLog("roster api request failed", []any{"http_path", "/healthz"}) {
		t.Fatalf("did not expect non-request event to be skipped")
	}
}

func TestLogAttributes(t *testing.T) {
	attrs := logAttributes([]any{"team", "Team A", "attempt", 2, 7, "x", "payload"})
	if len(attrs) != 4 {
		t.Fatalf("expected 4 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "team" || attrs[0].Value.AsString() != "Team A" {
		t.Fatalf("unexpected team attribute")
	}
	if attrs[1].Key != "attempt" || attrs[1].Value.AsInt64() != 2 {
		t.Fatalf("unexpected attempt attribute")
	}
	if attrs[2].Key != "arg_2" || attrs[2].Value.AsString() != "x" {
		t.Fatalf("unexpected positional attribute: %s", attrs[2].Key)
	}
	if attrs[3].Key != "payload" || attrs[3].Value.Kind() != otellog.KindEmpty {
		t.Fatalf("unexpected payload attribute")
	}
}

func TestToOTelLogValue(t *testing.T) {
	v := toOTelLogValue(map[string]any{"week": 7, "stale": true, "days": []string{"Mon", "Tue"}}, 0)
	if v.Kind() != otellog.KindMap {
		t.Fatalf("expected map value, got %s", v.Kind())
	}
	items := v.AsMap()
	if len(items) != 3 || items[0].Key != "days" || items[0].Value.Kind() != otellog.KindSlice {
		t.Fatalf("unexpected map items: %+v", items)
	}

	if got := toOTelLogValue(errors.New("boom"), 0).AsString(); got != "boom" {
		t.Fatalf("unexpected error value: %q", got)
	}
	if got := toOTelLogValue(1500*time.Millisecond, 0).AsString(); got != "1.5s" {
		t.Fatalf("unexpected duration value: %q", got)
	}
	if got := toOTelSeverity(logging.LevelWarn); got != otellog.SeverityWarn {
		t.Fatalf("unexpected severity: %v", got)
	}
}
