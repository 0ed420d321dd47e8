// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package httplogger

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestLogsRequestAndResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "hello")
	}))
	defer ts.Close()

	var lines []string
	httpc := &http.Client{Transport: New(nil, func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	})}

	res, err := httpc.Get(ts.URL + "/feed/rss")
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()

	if len(lines) != 2 {
		t.Fatalf("want 2 log lines per request, got %d: %q", len(lines), lines)
	}
	if !strings.Contains(lines[0], "GET") || !strings.Contains(lines[0], "/feed/rss") {
		t.Errorf("first line must mention the request, got: %q", lines[0])
	}
	if !strings.Contains(lines[1], "200 OK") {
		t.Errorf("second line must mention the status, got: %q", lines[1])
	}
}
