// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"crawshaw.dev/jsonfile"
)

// Configuration store.
//
// The whole state of xmon lives in one JSON document: the monitored accounts
// with their per-account positions, and the global settings. Every mutation
// is written to disk immediately and atomically, so a crash mid-cycle loses
// at most the in-flight account's update.

const (
	defaultInterval = 5 // minutes
	defaultCap      = 5
	defaultInstance = "https://nitter.poast.org"
	defaultSound    = "default"
)

// Public Nitter instances tried when the configured one fails and the user
// hasn't set fallback_instances. Check https://status.d420.de/ for current
// instance status.
var defaultFallbackInstances = []string{
	"https://xcancel.com",
	"https://nitter.privacyredirect.com",
	"https://lightbrd.com",
}

type config struct {
	Accounts                 []*account `json:"accounts"`
	CheckIntervalMinutes     int        `json:"check_interval_minutes"`
	MaxNotificationsPerCheck int        `json:"max_notifications_per_check"`
	NitterInstance           string     `json:"nitter_instance"`
	// FallbackInstances distinguishes nil (unset, use the built-in list)
	// from an explicitly empty list (no fallbacks), so no omitempty.
	FallbackInstances []string `json:"fallback_instances"`
	NotificationSound string   `json:"notification_sound"`
}

type account struct {
	Handle string `json:"handle"`
	// LastSeenID is the ID of the newest post already reported for this
	// account; empty until the first check establishes a baseline.
	LastSeenID  string    `json:"last_seen_id,omitempty"`
	LastChecked time.Time `json:"last_checked,omitempty"`
	ErrorCount  int       `json:"error_count,omitempty"`
	LastError   string    `json:"last_error,omitempty"`
}

type configFile = jsonfile.JSONFile[config]

// normalizeHandle makes account handles comparable: "@Example" and "example"
// refer to the same account.
func normalizeHandle(handle string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(handle), "@"))
}

// find returns the account with the given normalized handle, or nil.
func (c *config) find(handle string) *account {
	i := slices.IndexFunc(c.Accounts, func(a *account) bool {
		return a.Handle == handle
	})
	if i < 0 {
		return nil
	}
	return c.Accounts[i]
}

func (c *config) setDefaults() {
	c.CheckIntervalMinutes = defaultInterval
	c.MaxNotificationsPerCheck = defaultCap
	c.NitterInstance = defaultInstance
	c.FallbackInstances = slices.Clone(defaultFallbackInstances)
	c.NotificationSound = defaultSound
}

// loadConfig opens the configuration file, creating it with defaults if it
// doesn't exist yet. A corrupt file is a fatal error and is left untouched.
func (m *monitor) loadConfig() error {
	f, err := jsonfile.Load[config](m.configPath)
	if errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(m.configPath), 0o700); err != nil {
			return err
		}
		f, err = jsonfile.New[config](m.configPath)
		if err == nil {
			err = f.Write(func(c *config) error {
				c.setDefaults()
				return nil
			})
		}
	}
	if err != nil {
		return fmt.Errorf("loading config %q failed: %w", m.configPath, err)
	}
	m.config = f
	return nil
}

// settings is the effective, validated view of the global settings.
type settings struct {
	interval  int
	maxPerRun int
	instances []string // primary first, then fallbacks
	sound     string
}

// settings reads the stored settings, substituting defaults for missing or
// nonsensical values. The stored file is not rewritten: invalid values are
// only masked, never destroyed.
func (m *monitor) settings() settings {
	var st settings
	m.config.Read(func(c *config) {
		st.interval = c.CheckIntervalMinutes
		st.maxPerRun = c.MaxNotificationsPerCheck
		st.sound = c.NotificationSound

		primary := c.NitterInstance
		if primary == "" {
			primary = defaultInstance
		}
		fallbacks := c.FallbackInstances
		if fallbacks == nil {
			fallbacks = defaultFallbackInstances
		}
		st.instances = append(st.instances, primary)
		for _, instance := range fallbacks {
			if instance != primary {
				st.instances = append(st.instances, instance)
			}
		}
	})
	if st.interval <= 0 {
		st.interval = defaultInterval
	}
	if st.maxPerRun < 0 {
		st.maxPerRun = 0
	}
	if st.sound == "" {
		st.sound = defaultSound
	}
	return st
}
