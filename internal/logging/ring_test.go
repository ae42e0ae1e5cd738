package logging

import (
	"os"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestRingCapturesEntriesInOrder(t *testing.T) {
	t.Parallel()

	ring := NewRing(8, zapcore.InfoLevel)
	log := zap.New(ring)

	log.Info("first")
	log.Warn("second", zap.Int64("book_id", 2))
	log.Debug("dropped by level")

	entries := ring.Entries()
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].Message != "first" || entries[1].Message != "second" {
		t.Fatalf("messages = %q %q, want oldest first", entries[0].Message, entries[1].Message)
	}
	if entries[1].Level != zapcore.WarnLevel {
		t.Fatalf("level = %v, want warn", entries[1].Level)
	}
	if !strings.Contains(entries[1].Fields, "book_id=2") {
		t.Fatalf("fields = %q, want book_id=2", entries[1].Fields)
	}
}

func TestRingWrapsAtCapacity(t *testing.T) {
	t.Parallel()

	ring := NewRing(3, zapcore.InfoLevel)
	log := zap.New(ring)

	for _, msg := range []string{"a", "b", "c", "d", "e"} {
		log.Info(msg)
	}

	entries := ring.Entries()
	if len(entries) != 3 || ring.Len() != 3 {
		t.Fatalf("entries = %d, want capacity 3", len(entries))
	}
	got := []string{entries[0].Message, entries[1].Message, entries[2].Message}
	if got[0] != "c" || got[1] != "d" || got[2] != "e" {
		t.Fatalf("messages = %v, want three newest oldest-first", got)
	}
}

func TestRingWithFieldsSharedBuffer(t *testing.T) {
	t.Parallel()

	ring := NewRing(8, zapcore.InfoLevel)
	log := zap.New(ring).Named("engine").With(zap.String("op", "update"))

	log.Info("dispatched", zap.Int64("book_id", 7))

	entries := ring.Entries()
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if !strings.Contains(entries[0].Fields, "op=update") || !strings.Contains(entries[0].Fields, "book_id=7") {
		t.Fatalf("fields = %q, want both inherited and call fields", entries[0].Fields)
	}
}

func TestNewBuildsLoggerWithoutFile(t *testing.T) {
	t.Parallel()

	log, ring, err := New(Config{Level: "debug"})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	log.Debug("visible at debug")
	if ring.Len() != 1 {
		t.Fatalf("ring entries = %d, want 1", ring.Len())
	}
}

func TestNewWritesToFile(t *testing.T) {
	t.Parallel()

	path := t.TempDir() + "/logs/app.log"
	log, _, err := New(Config{Level: "info", Path: path})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	log.Info("persisted", zap.String("k", "v"))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "persisted") || !strings.Contains(string(data), `"k":"v"`) {
		t.Fatalf("log file = %q, want JSON entry", data)
	}
}
