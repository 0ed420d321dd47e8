// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package logger

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

func TestLogfWrite(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logf := Logf(func(format string, args ...any) {
		fmt.Fprintf(&buf, format, args...)
	})

	n, err := logf.Write([]byte("hello\n"))
	if err != nil {
		t.Fatal(err)
	}
	if n != len("hello\n") {
		t.Fatalf("want %d bytes written, got %d", len("hello\n"), n)
	}
	if buf.String() != "hello\n" {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(&buf)

	l.Logger.Debug("invisible")
	if buf.Len() != 0 {
		t.Fatalf("debug message logged at default level: %q", buf.String())
	}

	l.Level.Set(slog.LevelDebug)
	l.Logger.Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Fatalf("debug message not logged after lowering level: %q", buf.String())
	}
}

func TestContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(&buf)

	ctx := With(context.Background(), l)
	if Get(ctx) != l {
		t.Fatal("Get returned a different logger than the one carried by context")
	}

	// Context without a logger falls back to the default one.
	if Get(context.Background()) == nil {
		t.Fatal("Get returned nil for empty context")
	}
}
