// Copyright (c) 2026 The Poderosa Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package util

import (
	"context"
	"io"
	"os"

	"log/slog"
)

const (
	LevelTrace = slog.Level(-8)
	LevelFatal = slog.Level(12)
)

var Logger *emuLogger

var levelNames = map[slog.Leveler]string{
	LevelTrace: "TRACE",
	LevelFatal: "FATAL",
}

// emuLogger wraps slog with a mutable level and a TRACE level used by the
// terminal core to report unsupported or malformed control sequences.
type emuLogger struct {
	*slog.Logger
	addSource bool
	logLevel  *slog.LevelVar
}

func init() {
	Logger = new(emuLogger)
	Logger.logLevel = new(slog.LevelVar)
	Logger.SetLevel(slog.LevelInfo)
	Logger.SetOutput(os.Stderr)
}

func (l *emuLogger) SetLevel(v slog.Level) {
	l.logLevel.Set(v)
}

func (l *emuLogger) AddSource(add bool) {
	l.addSource = add
}

// SetOutput rebuilds the underlying handler to write to w. Tests redirect the
// output into a strings.Builder to assert on diagnostics.
func (l *emuLogger) SetOutput(w io.Writer) {
	ho := &slog.HandlerOptions{
		AddSource: l.addSource,
		Level:     l.logLevel,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				level := a.Value.Any().(slog.Level)
				label, exists := levelNames[level]
				if !exists {
					label = level.String()
				}
				a.Value = slog.StringValue(label)
			}
			return a
		},
	}
	l.Logger = slog.New(slog.NewTextHandler(w, ho))
}

func (l *emuLogger) Trace(msg string, args ...any) {
	l.Logger.Log(context.Background(), LevelTrace, msg, args...)
}

func (l *emuLogger) Fatal(msg string, args ...any) {
	l.Logger.Log(context.Background(), LevelFatal, msg, args...)
	os.Exit(1)
}
