// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Xmon monitors X (Twitter) accounts through a Nitter instance's RSS feeds and
raises a desktop notification for each new post.

# Usage

	$ xmon [flags...] [command] [args...]

Without a command, xmon performs one check cycle over all monitored accounts:
for each account it fetches the feed, detects posts that appeared since the
last check, shows a notification per new post (up to the configured cap) and
records the newest seen post so the same post is never reported twice.
A failure checking one account doesn't abort the cycle; the account is
retried from the same position on the next run.

Available commands:

  - add <handle>: start monitoring an account.
  - remove <handle>: stop monitoring an account.
  - list: print monitored accounts, one per line.
  - check <handle>: check a single account and print its new posts.
  - set-interval <minutes>: set the check interval.
  - set-instance <url>: set the Nitter instance base URL.

# Configuration

xmon keeps its state in a single JSON file, by default
$XDG_CONFIG_HOME/xmon/config.json (the -config flag overrides the location):

	{
	  "accounts": [
	    {"handle": "example", "last_seen_id": "..."}
	  ],
	  "check_interval_minutes": 5,
	  "max_notifications_per_check": 5,
	  "nitter_instance": "https://nitter.poast.org",
	  "fallback_instances": ["https://xcancel.com"],
	  "notification_sound": "default"
	}

When a check produces more new posts than max_notifications_per_check, the
most recent ones are shown and a single extra notification reports how many
were left out. Setting the cap to 0 suppresses notifications entirely while
still advancing the per-account position. Fallback instances are tried in
order when the primary instance is unreachable. Set notification_sound to
"none" to show silent notifications.

The first check after adding an account establishes a baseline silently:
no notifications are shown for the existing backlog.

# Scheduling

xmon performs a single check per invocation and exits; run it from a systemd
timer, launchd agent or cron to poll periodically. check_interval_minutes
records the intended cadence for whatever scheduler invokes xmon. When
running under systemd, xmon reports its status via sd_notify.
*/
package main

import (
	_ "embed"

	"go.astrophena.name/xmon/internal/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
