// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package logger defines a type for writing to logs and provides [log/slog]
// plumbing with a runtime-adjustable level.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
)

// Logf is the basic logger type: a printf-like func. Like [log.Printf], the
// format need not end in a newline. Logf functions must be safe for concurrent
// use.
type Logf func(format string, args ...any)

// Write implements the [io.Writer] interface.
func (f Logf) Write(p []byte) (n int, err error) {
	f("%s", p)
	return len(p), nil
}

// Logger bundles a structured logger with the level variable that controls
// it.
type Logger struct {
	Logger *slog.Logger
	Level  *slog.LevelVar
}

// New returns a Logger writing human-readable output to w at [slog.LevelInfo].
// The level can be changed at any time through the Level field.
func New(w io.Writer) *Logger {
	level := new(slog.LevelVar)
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})),
		Level:  level,
	}
}

type ctxKey struct{}

// With returns a copy of ctx carrying l.
func With(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

var defaultLogger = sync.OnceValue(func() *Logger {
	return New(os.Stderr)
})

// Get returns the Logger carried by ctx, or a default stderr-backed one if
// ctx doesn't carry any.
func Get(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return defaultLogger()
}
