package slogobs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/leofalp/jsonfit/providers/observability"
)

func newTestObserver(format Format, level slog.Level) (*Observer, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(WithOutput(&buf), WithFormat(format), WithLevel(level)), &buf
}

func jsonLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("invalid JSON log line %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestObserver_Levels(t *testing.T) {
	observer, buf := newTestObserver(FormatJSON, slog.LevelWarn)
	ctx := context.Background()

	observer.Trace(ctx, "trace")
	observer.Debug(ctx, "debug")
	observer.Info(ctx, "info")
	observer.Warn(ctx, "warn", observability.String("k", "v"))
	observer.Error(ctx, "error")

	lines := jsonLines(t, buf)
	if len(lines) != 2 {
		t.Fatalf("want 2 lines at WARN, got %d: %s", len(lines), buf.String())
	}
	if lines[0]["msg"] != "warn" || lines[0]["level"] != "WARN" || lines[0]["k"] != "v" {
		t.Errorf("warn line = %v", lines[0])
	}
	if lines[1]["level"] != "ERROR" {
		t.Errorf("error line = %v", lines[1])
	}
}

func TestObserver_TraceLevel(t *testing.T) {
	observer, buf := newTestObserver(FormatJSON, LevelTrace)
	observer.Trace(context.Background(), "deep")

	lines := jsonLines(t, buf)
	if len(lines) != 1 || lines[0]["level"] != "TRACE" {
		t.Errorf("trace output = %s", buf.String())
	}
}

func TestObserver_Span(t *testing.T) {
	observer, buf := newTestObserver(FormatJSON, slog.LevelDebug)

	ctx, span := observer.StartSpan(context.Background(), "work", observability.Int("n", 1))
	if observability.SpanFromContext(ctx) != span {
		t.Error("StartSpan() should return a context carrying the span")
	}
	span.SetAttributes(observability.String("extra", "x"))
	span.AddEvent("step")
	span.RecordError(errors.New("boom"))
	span.SetStatus(observability.StatusError, "failed")
	span.End()

	lines := jsonLines(t, buf)
	var events []any
	for _, l := range lines {
		events = append(events, l["event"])
	}
	want := []any{"span.start", "step", "error", "span.end"}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event[%d] = %v, want %v", i, events[i], want[i])
		}
	}

	end := lines[len(lines)-1]
	if end["extra"] != "x" || end[observability.AttrStatus] != "error" || end[observability.AttrStatusDescription] != "failed" {
		t.Errorf("span.end attributes = %v", end)
	}
	if _, ok := end["duration"].(string); !ok {
		t.Errorf("duration should render as a string, got %T", end["duration"])
	}
}

func TestObserver_Metrics(t *testing.T) {
	observer, _ := newTestObserver(FormatJSON, slog.LevelError)
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			observer.Counter("hits").Add(ctx, 2)
			observer.Histogram("sizes").Record(ctx, 1.5)
		}()
	}
	wg.Wait()

	if got := observer.CounterValue("hits"); got != 100 {
		t.Errorf("CounterValue() = %d, want 100", got)
	}
	if got := observer.HistogramCount("sizes"); got != 50 {
		t.Errorf("HistogramCount() = %d, want 50", got)
	}
	if observer.CounterValue("unused") != 0 || observer.HistogramCount("unused") != 0 {
		t.Error("unknown instruments should report zero")
	}
}

func TestHandler_Formats(t *testing.T) {
	record := slog.NewRecord(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), slog.LevelInfo, "hello", 0)
	record.AddAttrs(slog.String("b", "2"), slog.String("a", "1"))

	tests := []struct {
		format Format
		want   string
	}{
		{format: FormatCompact, want: "2025-01-02 03:04:05  INFO hello -> {\"a\":\"1\",\"b\":\"2\"}\n"},
		{format: FormatPretty, want: "2025-01-02 03:04:05 INFO   hello\n                   |- a: 1\n                   `- b: 2\n"},
		{format: FormatJSON, want: "{\"a\":\"1\",\"b\":\"2\",\"level\":\"INFO\",\"msg\":\"hello\",\"time\":\"2025-01-02T03:04:05\"}\n"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			handler := NewHandler(&HandlerOptions{Format: tt.format, Level: slog.LevelInfo, Output: &buf})
			if err := handler.Handle(context.Background(), record); err != nil {
				t.Fatalf("Handle() error: %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("Handle() =\n%q\nwant\n%q", buf.String(), tt.want)
			}
		})
	}
}

func TestHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&HandlerOptions{Format: FormatJSON, Output: &buf}))
	logger.With("component", "fit").WithGroup("req").Info("msg", "id", 7)

	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatal(err)
	}
	if m["component"] != "fit" || m["req.id"] != 7.0 {
		t.Errorf("attrs = %v", m)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"trace":   LevelTrace,
		"DEBUG":   slog.LevelDebug,
		" info ":  slog.LevelInfo,
		"warning": slog.LevelWarn,
		"Error":   slog.LevelError,
	}
	for input, want := range tests {
		if got := ParseLogLevel(input); got != want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestGetFromEnv(t *testing.T) {
	t.Setenv("JSONFIT_LOG_LEVEL", "")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("JSONFIT_LOG_FORMAT", "pretty")
	t.Setenv("LOG_FORMAT", "json")

	if got := GetLogLevelFromEnv(); got != slog.LevelDebug {
		t.Errorf("GetLogLevelFromEnv() = %v, want DEBUG", got)
	}
	if got := GetFormatFromEnv(); got != FormatPretty {
		t.Errorf("GetFormatFromEnv() = %v, want pretty", got)
	}

	t.Setenv("LOG_LEVEL", "")
	if got := GetLogLevelFromEnv(); got != slog.LevelWarn {
		t.Errorf("GetLogLevelFromEnv() default = %v, want WARN", got)
	}
	if ParseFormat("bogus") != FormatCompact {
		t.Error("unknown formats should fall back to compact")
	}
}
