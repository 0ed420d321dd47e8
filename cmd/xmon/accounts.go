// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"go.astrophena.name/xmon/internal/cli"
	"go.astrophena.name/xmon/internal/filelock"
)

// Account management and settings commands.

func (m *monitor) addAccount(handle string) error {
	h := normalizeHandle(handle)
	if h == "" {
		return fmt.Errorf("%w: empty account handle", cli.ErrInvalidArgs)
	}

	if err := m.config.Write(func(c *config) error {
		if c.find(h) != nil {
			return fmt.Errorf("@%s: %w", h, errDuplicateAccount)
		}
		c.Accounts = append(c.Accounts, &account{Handle: h})
		return nil
	}); err != nil {
		return err
	}

	m.logf("Added @%s to monitored accounts.", h)
	return nil
}

func (m *monitor) removeAccount(handle string) error {
	h := normalizeHandle(handle)
	if h == "" {
		return fmt.Errorf("%w: empty account handle", cli.ErrInvalidArgs)
	}

	if err := m.config.Write(func(c *config) error {
		i := slices.IndexFunc(c.Accounts, func(a *account) bool {
			return a.Handle == h
		})
		if i < 0 {
			return fmt.Errorf("@%s: %w", h, errUnknownAccount)
		}
		c.Accounts = slices.Delete(c.Accounts, i, i+1)
		return nil
	}); err != nil {
		return err
	}

	m.logf("Removed @%s from monitored accounts.", h)
	return nil
}

func (m *monitor) listAccounts(w io.Writer) error {
	var (
		accounts []*account
		st       = m.settings()
	)
	m.config.Read(func(c *config) {
		for _, a := range c.Accounts {
			copied := *a
			accounts = append(accounts, &copied)
		}
	})

	if m.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(accounts)
	}

	if len(accounts) == 0 {
		m.logf("No accounts are monitored. Use 'xmon add <handle>' to monitor one.")
		return nil
	}

	for _, a := range accounts {
		fmt.Fprintf(w, "@%s\n", a.Handle)
	}

	if !m.quiet {
		m.logf("")
		m.logf("Total: %d account(s)", len(accounts))
		m.logf("Check interval: %d minutes", st.interval)
		m.logf("Nitter instance: %s", st.instances[0])
		if filelock.IsLocked(m.runLockPath()) {
			m.logf("A check is running right now.")
		}
	}
	return nil
}

func (m *monitor) setInterval(arg string) error {
	minutes, err := strconv.Atoi(arg)
	if err != nil || minutes <= 0 {
		return fmt.Errorf("%w: interval must be a positive number of minutes", cli.ErrInvalidArgs)
	}

	if err := m.config.Write(func(c *config) error {
		c.CheckIntervalMinutes = minutes
		return nil
	}); err != nil {
		return err
	}

	m.logf("Check interval set to %d minutes.", minutes)
	return nil
}

func (m *monitor) setInstance(arg string) error {
	instance := strings.TrimSuffix(strings.TrimSpace(arg), "/")
	u, err := url.Parse(instance)
	if instance == "" || err != nil || !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("%w: instance must be an absolute URL, like https://nitter.poast.org", cli.ErrInvalidArgs)
	}

	if err := m.config.Write(func(c *config) error {
		c.NitterInstance = instance
		return nil
	}); err != nil {
		return err
	}

	m.logf("Nitter instance set to %s.", instance)
	return nil
}
