// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"fmt"

	"go.astrophena.name/xmon/cmd/xmon/internal/track"
	"go.astrophena.name/xmon/internal/systemd"
)

// Check cycle: fetch, diff, notify, persist.

// runAll performs one check cycle over all monitored accounts.
//
// A single account's failure is reported and doesn't abort the cycle; that
// account's position stays where it was, so the next run retries from the
// same place. The cycle exits successfully even when individual accounts
// failed.
func (m *monitor) runAll(ctx context.Context) error {
	if err := m.acquireRunLock(); err != nil {
		return err
	}
	defer m.releaseRunLock()

	var handles []string
	m.config.Read(func(c *config) {
		for _, a := range c.Accounts {
			handles = append(handles, a.Handle)
		}
	})

	if len(handles) == 0 {
		m.logf("No accounts are monitored. Use 'xmon add <handle>' to monitor one.")
		return nil
	}

	systemd.Notify(m.logf, systemd.Ready)
	systemd.Notify(m.logf, systemd.Status(fmt.Sprintf("checking %d accounts", len(handles))))
	defer systemd.Notify(m.logf, systemd.Stopping)

	if !m.quiet {
		m.logf("Checking %d account(s)...", len(handles))
	}

	var totalNew, failed int
	for _, handle := range handles {
		newPosts, err := m.checkAccount(ctx, handle)
		if err != nil {
			failed++
			m.logf("Checking @%s failed: %v", handle, err)
			continue
		}
		totalNew += len(newPosts)
	}

	if !m.quiet {
		switch {
		case totalNew > 0:
			m.logf("Found %d new post(s) total.", totalNew)
		case failed == 0:
			m.logf("No new posts found.")
		}
	}
	systemd.Notify(m.logf, systemd.Status(fmt.Sprintf("done: %d new posts, %d of %d accounts failed", totalNew, failed, len(handles))))

	return nil
}

// checkOne performs the check-and-notify flow for a single account. Unlike
// runAll, a fetch failure here is the whole operation failing and is
// returned to the caller.
func (m *monitor) checkOne(ctx context.Context, handle string) error {
	h := normalizeHandle(handle)

	var known bool
	m.config.Read(func(c *config) {
		known = c.find(h) != nil
	})
	if !known {
		return fmt.Errorf("@%s: %w", h, errUnknownAccount)
	}

	if err := m.acquireRunLock(); err != nil {
		return err
	}
	defer m.releaseRunLock()

	if !m.quiet {
		m.logf("Checking @%s...", h)
	}

	newPosts, err := m.checkAccount(ctx, h)
	if err != nil {
		return err
	}

	if len(newPosts) == 0 {
		if !m.quiet {
			m.logf("No new posts.")
		}
		return nil
	}

	m.logf("Found %d new post(s):", len(newPosts))
	for _, p := range newPosts {
		m.logf("  - %s", truncate(p.Text, 80))
		if p.Link != "" {
			m.logf("    %s", p.Link)
		}
	}
	return nil
}

// checkAccount fetches handle's feed, notifies about new posts and advances
// the account's position. It returns all new posts, including ones the
// notification cap left out.
//
// The position is written after notification dispatch for the whole batch:
// a failed notification never causes a post to be reported again, and a
// failed fetch never advances the position.
func (m *monitor) checkAccount(ctx context.Context, handle string) ([]track.Post, error) {
	st := m.settings()

	var priorMark string
	m.config.Read(func(c *config) {
		if a := c.find(handle); a != nil {
			priorMark = a.LastSeenID
		}
	})

	posts, err := m.fetcher.FetchAny(ctx, st.instances, handle)
	if err != nil {
		m.recordFailure(handle, err)
		return nil, err
	}

	newPosts, updatedMark := track.Diff(priorMark, posts)
	m.slog.Debug("checked feed",
		"account", handle,
		"fetched", len(posts),
		"new", len(newPosts),
		"prior_mark", priorMark,
		"updated_mark", updatedMark,
	)

	notified := track.Latest(newPosts, st.maxPerRun)
	for _, p := range notified {
		m.notifyPost(ctx, handle, p, st.sound)
	}
	if remaining := len(newPosts) - len(notified); remaining > 0 && len(notified) > 0 {
		m.notifyRaw(ctx, "@"+handle, fmt.Sprintf("And %d more new posts...", remaining), st.sound)
	}

	if m.dry {
		return newPosts, nil
	}

	if err := m.config.Write(func(c *config) error {
		a := c.find(handle)
		if a == nil {
			return fmt.Errorf("@%s: %w", handle, errUnknownAccount)
		}
		a.LastSeenID = updatedMark
		a.LastChecked = m.now()
		a.ErrorCount = 0
		a.LastError = ""
		return nil
	}); err != nil {
		return newPosts, err
	}

	return newPosts, nil
}

// recordFailure persists the failure details for an account, leaving its
// position untouched.
func (m *monitor) recordFailure(handle string, err error) {
	if m.dry {
		return
	}
	if werr := m.config.Write(func(c *config) error {
		a := c.find(handle)
		if a == nil {
			return nil
		}
		a.ErrorCount++
		a.LastError = err.Error()
		return nil
	}); werr != nil {
		m.slog.Warn("failed to record fetch failure", "account", handle, "error", werr)
	}
}
