// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package systemd enables applications to signal readiness and report status
// to systemd.
package systemd

import (
	"net"
	"os"

	"go.astrophena.name/xmon/internal/logger"
)

// State defines a sd-notify protocol state.
// See https://www.freedesktop.org/software/systemd/man/sd_notify.html.
type State string

const (
	// Ready tells the service manager that service startup is
	// finished, or the service finished loading its configuration.
	// See https://www.freedesktop.org/software/systemd/man/sd_notify.html#READY=1.
	Ready State = "READY=1"

	// Stopping tells the service manager that the service is beginning its
	// shutdown.
	// See https://www.freedesktop.org/software/systemd/man/sd_notify.html#STOPPING=1.
	Stopping State = "STOPPING=1"
)

// Status returns a [State] that passes a single-line status string to the
// service manager, visible in "systemctl status" output.
// See https://www.freedesktop.org/software/systemd/man/sd_notify.html#STATUS=%E2%80%A6.
func Status(msg string) State { return State("STATUS=" + msg) }

// Notify sends a message to systemd using the sd_notify protocol. If there is
// an error, it will be logged to logf. It is a no-op when the process is not
// running under systemd (NOTIFY_SOCKET is not set).
func Notify(logf logger.Logf, state State) {
	addr := &net.UnixAddr{
		Net:  "unixgram",
		Name: os.Getenv("NOTIFY_SOCKET"),
	}

	if addr.Name == "" {
		// We're not running under systemd (NOTIFY_SOCKET is not set).
		return
	}

	conn, err := net.DialUnix(addr.Net, nil, addr)
	if err != nil {
		logf("systemd: failed when notifying: %v", err)
		return
	}
	defer conn.Close()

	if _, err = conn.Write([]byte(state)); err != nil {
		logf("systemd: failed when notifying: %v", err)
		return
	}
}
