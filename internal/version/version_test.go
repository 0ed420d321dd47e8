// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package version

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	i := Info{
		Version: "v1.2.3",
		Go:      "go1.24",
		OS:      "linux",
		Arch:    "amd64",
	}

	s := i.String()
	if !strings.Contains(s, "v1.2.3") {
		t.Fatalf("version string %q doesn't contain version", s)
	}
	if !strings.Contains(s, "linux/amd64") {
		t.Fatalf("version string %q doesn't contain OS/arch", s)
	}
}

func TestStringWithCommit(t *testing.T) {
	i := Info{
		Version: "devel",
		Commit:  "deadbeef",
		BuiltAt: "2026-01-02T15:04:05Z",
		Go:      "go1.24",
		OS:      "darwin",
		Arch:    "arm64",
	}

	s := i.String()
	for _, want := range []string{"commit deadbeef", "built at 2026-01-02T15:04:05Z"} {
		if !strings.Contains(s, want) {
			t.Fatalf("version string %q doesn't contain %q", s, want)
		}
	}
}

func TestUserAgent(t *testing.T) {
	ua := UserAgent()
	if !strings.Contains(ua, "/") {
		t.Fatalf("user agent %q has no name/version separator", ua)
	}
	if !strings.Contains(ua, "+https://") {
		t.Fatalf("user agent %q has no information URL", ua)
	}
}
