package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLogSinkFormat(t *testing.T) {
	var buf bytes.Buffer
	sink := newLogSink(&buf)
	sink.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.Local) }

	sink.Printf("CPU: %.1f%%", 12.34)
	sink.Printf("second")

	want := "2026-01-02 03:04:05  CPU: 12.3%\n2026-01-02 03:04:05  second\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if err := sink.Close(); err != nil {
		t.Errorf("Close on writer-backed sink: %v", err)
	}
}

func TestOpenLogSinkAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cpu_monitor.log")

	for i, msg := range []string{"first run", "second run"} {
		sink, err := openLogSink(path)
		if err != nil {
			t.Fatalf("open %d: %v", i, err)
		}
		sink.Printf("%s", msg)
		if err := sink.Close(); err != nil {
			t.Fatalf("close %d: %v", i, err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), data)
	}
	if !strings.HasSuffix(lines[0], "  first run") || !strings.HasSuffix(lines[1], "  second run") {
		t.Errorf("unexpected contents: %q", data)
	}
	if _, err := time.ParseInLocation(logTimeLayout, lines[0][:len(logTimeLayout)], time.Local); err != nil {
		t.Errorf("timestamp prefix: %v", err)
	}
}

func TestOpenLogSinkBadPath(t *testing.T) {
	_, err := openLogSink(filepath.Join(t.TempDir(), "missing", "dir", "log"))
	if err == nil {
		t.Fatal("expected error for unwritable path")
	}
}
