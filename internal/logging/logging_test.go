package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("Level(%d).String() = '%s', expected '%s'", tt.level, got, tt.expected)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"ERROR", LevelError},
		{"unknown", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLevel('%s') = %d, expected %d", tt.input, got, tt.expected)
		}
	}

	if ValidLevel("verbose") {
		t.Error("ValidLevel(verbose) = true")
	}
	if !ValidLevel("Warn") {
		t.Error("ValidLevel(Warn) = false")
	}
}

func TestLogger_Log(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, Output: &buf, Prefix: "test"})

	logger.Debug("hidden")
	logger.Info("hello %s", "world")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug message written below level")
	}
	if !strings.Contains(out, "[INFO] test: hello world") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelDebug, Output: &buf})

	logger.WithComponent("registry").WithField("surface", "content").Warn("rejected")

	out := buf.String()
	if !strings.Contains(out, "{component=registry, surface=content}") {
		t.Errorf("fields missing or unsorted: %q", out)
	}
}

func TestLogger_SharedLevel(t *testing.T) {
	var buf bytes.Buffer
	root := New(Config{Level: LevelError, Output: &buf})
	child := root.WithComponent("chain")

	child.Info("before")
	root.SetLevel(LevelInfo)
	child.Info("after")

	out := buf.String()
	if strings.Contains(out, "before") || !strings.Contains(out, "after") {
		t.Errorf("derived logger did not follow level change: %q", out)
	}
}

func TestNullLogger(t *testing.T) {
	Null.Error("nothing")
	Null.WithField("k", "v").Error("still nothing")

	var nilLogger *Logger
	nilLogger.Info("safe")
	nilLogger.WithComponent("x").Warn("safe")
	nilLogger.SetLevel(LevelDebug)
}

func TestLogger_FieldOverride(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Output: &buf}).WithField("surface", "content")
	base.WithFields(map[string]any{"surface": "nav", "fingers": 2}).Info("moved")
	base.Info("kept")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.HasSuffix(lines[0], "moved {fingers=2, surface=nav}") {
		t.Errorf("derived line = %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "kept {surface=content}") {
		t.Errorf("base line = %q", lines[1])
	}
}
