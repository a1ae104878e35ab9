package log

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("%q: expected %v, got %v", in, want, got)
		}
	}
}

func TestLoggerAddsComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Component: ComponentRecords, Handler: slog.NewTextHandler(&buf, nil)})
	l.Info("loaded", FieldCount, 3)

	out := buf.String()
	if !strings.Contains(out, "component=records") || !strings.Contains(out, "count=3") {
		t.Fatalf("unexpected output: %s", out)
	}

	buf.Reset()
	l.WithComponent(ComponentGoals).Warn("x")
	if !strings.Contains(buf.String(), "component=goals") {
		t.Fatalf("component not replaced: %s", buf.String())
	}
}

func TestLogFields(t *testing.T) {
	f := NewFields().WithChange("invoices", "abc", 4).WithError(errors.New("boom")).WithError(nil)
	if f[FieldCollection] != "invoices" || f[FieldRevision] != int64(4) || f[FieldError] != "boom" {
		t.Fatalf("unexpected fields %v", f)
	}
	if len(f.ToSlice()) != 2*len(f) {
		t.Fatalf("slice length mismatch")
	}
}
