package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

type failingHandler struct{ slog.Handler }

func (failingHandler) Handle(context.Context, slog.Record) error { return errors.New("disk full") }

func TestNewTeeHandlerCollapses(t *testing.T) {
	if _, ok := newTeeHandler(nil, nil).(NoopHandler); !ok {
		t.Fatal("expected NoopHandler when every sink is nil")
	}
	inner := slog.NewJSONHandler(&bytes.Buffer{}, nil)
	if h := newTeeHandler(nil, inner); h != inner {
		t.Fatal("expected single sink returned unwrapped")
	}
}

func TestTeeHandlerRoutesByLevel(t *testing.T) {
	var console, file bytes.Buffer
	consoleH := slog.NewJSONHandler(&console, &slog.HandlerOptions{Level: slog.LevelWarn})
	fileH := slog.NewJSONHandler(&file, &slog.HandlerOptions{Level: slog.LevelDebug})

	logger := slog.New(newTeeHandler(consoleH, fileH)).With(FieldRunID, "r1")
	logger.Debug("decoding track")
	logger.Warn("encoder left output untagged")

	if strings.Contains(console.String(), "decoding track") {
		t.Error("console sink received debug record")
	}
	if !strings.Contains(console.String(), "untagged") || !strings.Contains(file.String(), "decoding track") {
		t.Fatalf("unexpected routing: console=%q file=%q", console.String(), file.String())
	}
	if !strings.Contains(file.String(), `"run_id":"r1"`) {
		t.Fatalf("expected run_id attribute in %q", file.String())
	}
}

func TestTeeHandlerKeepsWritingAfterSinkError(t *testing.T) {
	var file bytes.Buffer
	broken := failingHandler{slog.NewJSONHandler(&bytes.Buffer{}, nil)}
	h := newTeeHandler(broken, slog.NewJSONHandler(&file, nil))

	err := h.Handle(context.Background(), slog.NewRecord(time.Time{}, slog.LevelInfo, "split done", 0))
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("expected joined sink error, got %v", err)
	}
	if !strings.Contains(file.String(), "split done") {
		t.Fatal("healthy sink missed the record")
	}
}
