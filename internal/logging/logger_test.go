package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	td := []struct {
		in   string
		want slog.Level
	}{
		{"info", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"trace", LevelTrace},
		{"TRACE", LevelTrace},
		{" Debug ", slog.LevelDebug},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, d := range td {
		if got := ParseLevel(d.in); got != d.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", d.in, got, d.want)
		}
	}
}

func TestNewLogger(t *testing.T) {
	td := []struct {
		level        string
		debug, trace bool
	}{
		{"info", false, false},
		{"debug", true, false},
		{"trace", true, true},
	}
	for _, d := range td {
		t.Run(d.level, func(t *testing.T) {
			var buf bytes.Buffer
			l := NewLogger(d.level, &buf)
			l.Info("info message")
			l.Debug("debug message")
			l.Log(context.Background(), LevelTrace, "trace message")
			out := buf.String()
			if !strings.Contains(out, "info message") {
				t.Error("info message filtered")
			}
			if strings.Contains(out, "debug message") != d.debug {
				t.Errorf("debug message logged: %v, want %v", !d.debug, d.debug)
			}
			if strings.Contains(out, "trace message") != d.trace {
				t.Errorf("trace message logged: %v, want %v", !d.trace, d.trace)
			}
			if d.trace && !strings.Contains(out, "level=TRACE") {
				t.Errorf("trace level not labeled:\n%s", out)
			}
		})
	}
}
