package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestNewFanoutHandlerFiltersNilAndNoop(t *testing.T) {
	if _, ok := newFanoutHandler(nil, NoopHandler{}).(NoopHandler); !ok {
		t.Fatal("expected NoopHandler when no real handlers remain")
	}
	var buf bytes.Buffer
	inner := slog.NewJSONHandler(&buf, nil)
	if h := newFanoutHandler(nil, inner, NoopHandler{}); h != inner {
		t.Fatal("expected single handler to be returned unwrapped")
	}
}

func TestFanoutHandlerRespectsPerHandlerLevels(t *testing.T) {
	var infoBuf, debugBuf bytes.Buffer
	h := newFanoutHandler(
		slog.NewJSONHandler(&infoBuf, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	if !h.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("expected fanout enabled for debug")
	}
	logger := slog.New(h).With("run_id", "r1")
	logger.Debug("debug only")
	logger.Info("shared")

	if strings.Contains(infoBuf.String(), "debug only") {
		t.Fatalf("info handler received debug record: %q", infoBuf.String())
	}
	if strings.Count(debugBuf.String(), "\n") != 2 {
		t.Fatalf("debug handler should have two records: %q", debugBuf.String())
	}
	if !strings.Contains(infoBuf.String(), `"run_id":"r1"`) {
		t.Fatalf("WithAttrs not propagated: %q", infoBuf.String())
	}
}

func TestPrettyHandlerHeader(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := slog.New(newPrettyHandler(&buf, lvl, false)).With(FieldComponent, "organizer", FieldStage, "place")
	logger.Warn("collision resolved", "file", "a b.pdf", FieldRunID, "r1")

	out := buf.String()
	if !strings.Contains(out, "WARN [organizer] (place) - collision resolved") {
		t.Fatalf("unexpected header: %q", out)
	}
	if !strings.Contains(out, "    - File: a b.pdf") {
		t.Fatalf("expected file field, got %q", out)
	}
	if strings.Contains(out, "r1") {
		t.Fatalf("run id should be hidden at warn level: %q", out)
	}
}
