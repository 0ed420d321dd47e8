// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package track implements new-post detection for monitored accounts.
//
// Each account carries a high-water mark: the ID of the newest post already
// reported for it. Given the mark and a freshly fetched feed, [Diff] computes
// which posts are new and where the mark should move. It is pure logic with
// no I/O, so the whole policy is testable without touching the network.
package track

import (
	"slices"
	"time"
)

// Post is a single post from an account's feed.
type Post struct {
	// ID uniquely identifies the post within the account's feed and is
	// stable across fetches.
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Link      string    `json:"link,omitempty"`
	Published time.Time `json:"published"`
}

// Diff reports which of the fetched posts are new relative to priorMark and
// returns the updated mark.
//
// fetched must be in feed order, newest first. The returned posts are ordered
// oldest first, so notifications can be raised in publication order.
//
// An empty priorMark means the account has never been checked: nothing is
// reported as new and the mark is set to the newest fetched post, silently
// establishing a baseline instead of flooding the user with the feed's
// backlog.
//
// If priorMark is set but no fetched post carries it (it scrolled off the
// feed window), every fetched post is considered new. Over-notifying beats
// silently skipping posts.
//
// When fetched is empty, the mark stays where it was.
func Diff(priorMark string, fetched []Post) (newPosts []Post, updatedMark string) {
	if len(fetched) == 0 {
		return nil, priorMark
	}
	updatedMark = fetched[0].ID

	if priorMark == "" {
		return nil, updatedMark
	}

	for _, p := range fetched {
		if p.ID == priorMark {
			// This post and everything older has already been reported.
			break
		}
		newPosts = append(newPosts, p)
	}
	slices.Reverse(newPosts)

	return newPosts, updatedMark
}

// Latest returns at most n posts from the tail of the oldest-first newPosts
// list, so that when a burst exceeds the notification cap the user sees the
// most recent posts rather than stale ones. n <= 0 yields nothing.
func Latest(newPosts []Post, n int) []Post {
	if n <= 0 || len(newPosts) == 0 {
		return nil
	}
	if len(newPosts) <= n {
		return newPosts
	}
	return newPosts[len(newPosts)-n:]
}
