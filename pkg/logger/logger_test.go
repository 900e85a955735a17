package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			if got := parseLevel(tt.level); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestNewWithWriter_Formats(t *testing.T) {
	tests := []struct {
		format string
		want   []string
	}{
		{"json", []string{`"msg":"jobs loaded"`, `"count":3`, `"mount_id":"m1"`}},
		{"text", []string{"msg=\"jobs loaded\"", "count=3", "mount_id=m1"}},
		{"console", []string{"INFO", "jobs loaded", `"count": 3`, `"mount_id": "m1"`}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			log := NewWithWriter("info", tt.format, &buf).With("mount_id", "m1")

			log.Info("jobs loaded", "count", 3)
			log.Debug("dropped below level")

			out := buf.String()
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output %q missing %q", out, want)
				}
			}
			if strings.Contains(out, "dropped below level") {
				t.Errorf("debug record written at info level: %q", out)
			}
		})
	}
}

func TestContext(t *testing.T) {
	if FromContext(context.Background()) != nil {
		t.Fatal("FromContext() on empty context should be nil")
	}

	log := Discard()
	ctx := NewContext(context.Background(), log)
	if FromContext(ctx) != log {
		t.Error("FromContext() did not return the stored logger")
	}
}
