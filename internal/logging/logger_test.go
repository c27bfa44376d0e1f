package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"splice/internal/services"
)

func TestConsoleHandlerPromotesComponent(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, levelVar))

	logger.With(String(FieldComponent, "assembler")).Info("timeline saved", String("path", "/tmp/out.json"), Int("entries", 4))

	line := buf.String()
	if !strings.Contains(line, " INFO assembler: timeline saved") {
		t.Fatalf("component prefix missing: %q", line)
	}
	if !strings.Contains(line, "path=/tmp/out.json") || !strings.Contains(line, "entries=4") {
		t.Fatalf("attributes missing: %q", line)
	}
	if strings.Contains(line, "component=") {
		t.Fatalf("component should not repeat as attribute: %q", line)
	}
}

func TestConsoleHandlerQuotesValues(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newConsoleHandler(&buf, new(slog.LevelVar)))

	logger.Warn("segment dropped", String("name", "scene 1"))

	if !strings.Contains(buf.String(), `name="scene 1"`) {
		t.Fatalf("expected quoted value, got %q", buf.String())
	}
}

func TestWithContextAddsRunFields(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newConsoleHandler(&buf, new(slog.LevelVar)))

	ctx := services.WithRunID(context.Background(), "run-1")
	ctx = services.WithStage(ctx, "timeline")
	WithContext(ctx, logger).Info("hello")

	line := buf.String()
	if !strings.Contains(line, "run_id=run-1") || !strings.Contains(line, "stage=timeline") {
		t.Fatalf("context fields missing: %q", line)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
