// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package logging builds the leveled loggers used by gatesim hosts.
//
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// LevelTrace is below Debug. At this level the engine logs every step and the
// wiring machine every applied gesture.
//
const LevelTrace = slog.LevelDebug - 4

// ParseLevel maps "info", "debug" or "trace" (any case) to a slog.Level.
// Anything else gives Info.
//
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "trace":
		return LevelTrace
	default:
		return slog.LevelInfo
	}
}

// NewLogger returns a text logger writing to w at the given level.
//
func NewLogger(level string, w io.Writer) *slog.Logger {
	lvl := ParseLevel(level)
	opts := &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if l, ok := a.Value.Any().(slog.Level); ok && l == LevelTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
			return a
		},
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
