// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package systemd_test

import (
	"fmt"
	"net"
	"path/filepath"
	"testing"

	"go.astrophena.name/xmon/internal/systemd"
)

type testLogger struct {
	messages []string
}

func (tl *testLogger) logf(format string, args ...any) {
	tl.messages = append(tl.messages, fmt.Sprintf(format, args...))
}

func TestNotify(t *testing.T) {
	tl := &testLogger{}
	socketPath := filepath.Join(t.TempDir(), "notify.sock")

	l, err := net.ListenUnixgram("unixgram", &net.UnixAddr{Name: socketPath, Net: "unixgram"})
	if err != nil {
		t.Fatalf("Failed to listen on unixgram socket: %v", err)
	}
	defer l.Close()

	t.Setenv("NOTIFY_SOCKET", socketPath)

	systemd.Notify(tl.logf, systemd.Ready)

	buf := make([]byte, 512)
	n, _, err := l.ReadFromUnix(buf)
	if err != nil {
		t.Fatalf("Failed to read from unixgram socket: %v", err)
	}
	if got := string(buf[:n]); got != "READY=1" {
		t.Fatalf("want READY=1, got %q", got)
	}
	if len(tl.messages) != 0 {
		t.Fatalf("unexpected log messages: %v", tl.messages)
	}
}

func TestNotifyStatus(t *testing.T) {
	tl := &testLogger{}
	socketPath := filepath.Join(t.TempDir(), "notify.sock")

	l, err := net.ListenUnixgram("unixgram", &net.UnixAddr{Name: socketPath, Net: "unixgram"})
	if err != nil {
		t.Fatalf("Failed to listen on unixgram socket: %v", err)
	}
	defer l.Close()

	t.Setenv("NOTIFY_SOCKET", socketPath)

	systemd.Notify(tl.logf, systemd.Status("checking 3 accounts"))

	buf := make([]byte, 512)
	n, _, err := l.ReadFromUnix(buf)
	if err != nil {
		t.Fatalf("Failed to read from unixgram socket: %v", err)
	}
	if got := string(buf[:n]); got != "STATUS=checking 3 accounts" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestNotifyWithoutSocket(t *testing.T) {
	tl := &testLogger{}
	t.Setenv("NOTIFY_SOCKET", "")

	systemd.Notify(tl.logf, systemd.Ready)

	if len(tl.messages) != 0 {
		t.Fatalf("unexpected log messages: %v", tl.messages)
	}
}
