// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"unicode/utf8"

	"go.astrophena.name/xmon/cmd/xmon/internal/track"
)

// Notification dispatch.
//
// Notifications are best-effort: a failure to display one is logged and
// never aborts the remaining posts or prevents the account's position from
// advancing. The post was legitimately seen even if the user wasn't told.

const messageLimit = 200 // runes; matches what notification centers display

// notifyFunc displays a single desktop notification. It is a field on
// monitor so tests can capture notifications instead of showing them.
type notifyFunc func(ctx context.Context, title, message, sound string) error

func (m *monitor) notifyPost(ctx context.Context, handle string, p track.Post, sound string) {
	title := "@" + handle + " posted"
	message := p.Text
	if message == "" {
		message = "New post"
	}
	m.notifyRaw(ctx, title, truncate(message, messageLimit), sound)
}

func (m *monitor) notifyRaw(ctx context.Context, title, message, sound string) {
	m.slog.Debug("showing notification", "title", title, "message", message)
	if m.dry {
		return
	}
	if err := m.notify(ctx, title, message, sound); err != nil {
		m.logf("Showing notification failed: %v", err)
	}
}

// displayNotification shows a desktop notification using whatever the
// current platform provides: osascript on macOS, notify-send elsewhere.
// Without either, the notification is printed to standard error so running
// on a headless machine still surfaces the post.
func displayNotification(ctx context.Context, title, message, sound string) error {
	switch runtime.GOOS {
	case "darwin":
		script := fmt.Sprintf("display notification %s with title %s",
			appleScriptString(message), appleScriptString(title))
		if sound != "" && sound != "none" {
			script += " sound name " + appleScriptString(sound)
		}
		return runNotifyCommand(ctx, title, message, "osascript", "-e", script)
	default:
		return runNotifyCommand(ctx, title, message, "notify-send", title, message)
	}
}

func runNotifyCommand(ctx context.Context, title, message, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	if err := cmd.Run(); err != nil {
		if _, lookErr := exec.LookPath(name); lookErr != nil {
			// No notification helper on this machine.
			fmt.Fprintf(os.Stderr, "[Notification] %s: %s\n", title, message)
			return nil
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// appleScriptString quotes s as an AppleScript string literal.
func appleScriptString(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"', '\\':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	sb.WriteByte('"')
	return sb.String()
}

// truncate shortens s to at most limit runes, marking the cut with an
// ellipsis.
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit-3]) + "..."
}
