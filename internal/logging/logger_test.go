package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"doccleaner/internal/config"
	"doccleaner/internal/logging"
)

func TestNewFromConfigConsole(t *testing.T) {
	cfg := config.Default()
	var buf bytes.Buffer

	logger, err := logging.NewFromConfig(&cfg, &buf)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Debug("debug message")
	logger.Info("scan complete", logging.Int("files", 3))

	out := buf.String()
	if strings.Contains(out, "debug message") {
		t.Fatalf("debug line leaked at info level: %q", out)
	}
	if !strings.Contains(out, "INFO - scan complete") {
		t.Fatalf("expected console header, got %q", out)
	}
	if !strings.Contains(out, "    - Files: 3") {
		t.Fatalf("expected field bullet, got %q", out)
	}
}

func TestConsoleLoggerOmitsCallerForInfo(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("message without caller")
	if strings.Contains(buf.String(), ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", buf.String())
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "debug", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("message with caller")
	if !strings.Contains(buf.String(), ".go:") {
		t.Fatalf("expected caller information in debug logs, got %q", buf.String())
	}
}

func TestNewJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("json message", logging.String("k", "v"))

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	if payload["msg"] != "json message" || payload["level"] != "info" || payload["k"] != "v" {
		t.Fatalf("unexpected json payload: %v", payload)
	}
	if _, ok := payload["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", payload)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestParseLevelDefaultsToInfo(t *testing.T) {
	if got := logging.ParseLevel("invalid"); got != slog.LevelInfo {
		t.Fatalf("expected info, got %v", got)
	}
	if got := logging.ParseLevel(" WARN "); got != slog.LevelWarn {
		t.Fatalf("expected warn, got %v", got)
	}
}

func TestWithContextAddsFields(t *testing.T) {
	ctx := logging.WithRunID(context.Background(), "run-123")
	ctx = logging.WithStage(ctx, "dedup")

	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.WithContext(ctx, logger).Info("contextual log")

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	if payload[logging.FieldRunID] != "run-123" {
		t.Fatalf("run_id = %v", payload[logging.FieldRunID])
	}
	if payload[logging.FieldStage] != "dedup" {
		t.Fatalf("stage = %v", payload[logging.FieldStage])
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.WarnWithContext(logger, "extraction failed", "extract_failed",
		logging.String(logging.FieldImpact, "classified as generic"),
		logging.Error(errors.New("boom")),
	)

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	if payload[logging.FieldEventType] != "extract_failed" {
		t.Fatalf("event_type = %v", payload[logging.FieldEventType])
	}
	if payload[logging.FieldImpact] != "classified as generic" {
		t.Fatalf("impact overwritten: %v", payload[logging.FieldImpact])
	}
	if payload[logging.FieldErrorHint] == nil {
		t.Fatal("expected default error hint")
	}
}

func TestOpenRunLogTeesRecords(t *testing.T) {
	fs := afero.NewMemMapFs()
	var console bytes.Buffer
	base, err := logging.New(logging.Options{Format: "console", Output: &console})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	handler, closer, err := logging.OpenRunLog(fs, "/run", slog.LevelDebug)
	if err != nil {
		t.Fatalf("OpenRunLog: %v", err)
	}
	logger := logging.TeeLogger(base, handler)
	logger.Debug("only in file")
	logger.Info("in both")
	if err := closer.Close(); err != nil {
		t.Fatalf("close run log: %v", err)
	}

	data, err := afero.ReadFile(fs, filepath.Join("/run", "logs", logging.RunLogName))
	if err != nil {
		t.Fatalf("read run log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 file lines, got %d: %q", len(lines), data)
	}
	if strings.Contains(console.String(), "only in file") {
		t.Fatalf("debug record reached console: %q", console.String())
	}
	if !strings.Contains(console.String(), "in both") {
		t.Fatalf("info record missing from console: %q", console.String())
	}
}

func TestTailRunLog(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := "one\ntwo\nthree\nfour\n"
	if err := afero.WriteFile(fs, logging.RunLogPath("/run"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	lines, err := logging.TailRunLog(fs, "/run", 2)
	if err != nil {
		t.Fatalf("TailRunLog: %v", err)
	}
	if len(lines) != 2 || lines[0] != "three" || lines[1] != "four" {
		t.Fatalf("unexpected tail %q", lines)
	}

	all, err := logging.TailRunLog(fs, "/run", 0)
	if err != nil {
		t.Fatalf("TailRunLog all: %v", err)
	}
	if len(all) != 4 || all[0] != "one" {
		t.Fatalf("unexpected lines %q", all)
	}

	short, err := logging.TailRunLog(fs, "/run", 10)
	if err != nil || len(short) != 4 || short[3] != "four" {
		t.Fatalf("unexpected short tail %q (err=%v)", short, err)
	}

	if _, err := logging.TailRunLog(fs, "/missing", 5); err == nil {
		t.Fatal("expected error for missing run log")
	}
}

func TestNewComponentLoggerNilBase(t *testing.T) {
	logger := logging.NewComponentLogger(nil, "scanner")
	logger.Info("discarded")
}
