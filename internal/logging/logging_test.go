package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"verbose", LevelInfo},
		{"", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func fixedClock() time.Time {
	return time.Date(2025, 1, 1, 12, 30, 45, 123e6, time.UTC)
}

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithOutput(LevelWarn, &buf)
	l.now = fixedClock

	l.Debug("hidden %d", 1)
	l.Info("hidden %d", 2)
	l.Warn("shown %d", 3)
	l.Error("shown %d", 4)

	want := "12:30:45.123 [WARN] shown 3\n12:30:45.123 [ERROR] shown 4\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
	if l.Enabled(LevelInfo) || !l.Enabled(LevelError) {
		t.Error("Enabled disagrees with the level")
	}

	l.SetLevel(LevelDebug)
	buf.Reset()
	l.Debug("now shown")
	if !strings.Contains(buf.String(), "[DEBUG] now shown") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	root := NewWithOutput(LevelInfo, &buf)
	root.now = fixedClock
	child := root.With("orbit").With("trail")

	child.Info("resized to %d", 80)
	if want := "12:30:45.123 [INFO] orbit.trail: resized to 80\n"; buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}

	// Children share the parent's sink.
	root.SetLevel(LevelError)
	buf.Reset()
	child.Info("dropped")
	if buf.Len() != 0 {
		t.Errorf("child should follow parent level, got %q", buf.String())
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("nothing")
	if l.Enabled(LevelError) {
		t.Error("Discard logger should not enable any level")
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orrery.log")
	l, f, err := OpenFile(LevelInfo, path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	l.Info("hello %s", "file")
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "[INFO] hello file") {
		t.Errorf("log file = %q", data)
	}

	if _, _, err := OpenFile(LevelInfo, filepath.Join(t.TempDir(), "missing", "x.log")); err == nil {
		t.Error("expected error for missing directory")
	}
}
