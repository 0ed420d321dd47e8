// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package feed fetches an account's posts from a Nitter instance's RSS feed.
package feed

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"time"

	"go.astrophena.name/xmon/cmd/xmon/internal/track"
	"go.astrophena.name/xmon/internal/version"

	"github.com/mmcdole/gofeed"
)

// DefaultClient is a [http.Client] with nice defaults. Nitter instances can
// be slow, so the timeout is generous.
var DefaultClient = &http.Client{
	Timeout: 30 * time.Second,
}

// Fetcher retrieves and parses Nitter RSS feeds.
type Fetcher struct {
	httpc *http.Client
	fp    *gofeed.Parser
}

// NewFetcher returns a Fetcher that makes requests with httpc, or
// [DefaultClient] if httpc is nil.
func NewFetcher(httpc *http.Client) *Fetcher {
	if httpc == nil {
		httpc = DefaultClient
	}
	return &Fetcher{
		httpc: httpc,
		fp:    gofeed.NewParser(),
	}
}

// Fetch retrieves the posts of handle from instance, newest first.
//
// A non-200 response or unparseable feed surfaces as an error; the caller
// decides how to recover.
func (f *Fetcher) Fetch(ctx context.Context, instance, handle string) ([]track.Post, error) {
	url := strings.TrimSuffix(instance, "/") + "/" + handle + "/rss"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", version.UserAgent())
	req.Header.Set("Accept", "application/rss+xml, application/xml, text/xml, */*")

	res, err := f.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		const readLimit = 16384 // 16 KB is enough for error messages (probably)
		body, err := io.ReadAll(io.LimitReader(res.Body, readLimit))
		if err != nil {
			body = []byte("unable to read body")
		}
		return nil, fmt.Errorf("%s: want 200, got %d: %s", url, res.StatusCode, strings.TrimSpace(string(body)))
	}

	parsed, err := f.fp.Parse(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: parsing feed: %w", url, err)
	}

	var posts []track.Post
	for _, item := range parsed.Items {
		id := item.GUID
		if id == "" {
			id = item.Link
		}
		if id == "" {
			continue
		}

		text := CleanText(item.Title)
		if text == "" {
			text = CleanText(item.Description)
		}

		var published time.Time
		if item.PublishedParsed != nil {
			published = *item.PublishedParsed
		}

		posts = append(posts, track.Post{
			ID:        id,
			Text:      text,
			Link:      item.Link,
			Published: published,
		})
	}
	// Feeds are conventionally newest-first, but don't trust the instance:
	// normalize the order, keeping the feed's own order for equal or missing
	// timestamps.
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Published.After(posts[j].Published)
	})

	return posts, nil
}

// FetchAny tries each instance in order and returns the posts from the first
// one that succeeds. When all of them fail, it returns the last error.
func (f *Fetcher) FetchAny(ctx context.Context, instances []string, handle string) ([]track.Post, error) {
	if len(instances) == 0 {
		return nil, errors.New("no instances to fetch from")
	}

	var lastErr error
	for _, instance := range instances {
		posts, err := f.Fetch(ctx, instance, handle)
		if err == nil {
			return posts, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

var (
	tagRe        = regexp.MustCompile(`<[^>]+>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// CleanText strips HTML tags from s, decodes HTML entities and collapses
// whitespace runs into single spaces.
func CleanText(s string) string {
	s = tagRe.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
