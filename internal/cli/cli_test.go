// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package cli

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"strings"
	"testing"
)

type testApp struct {
	ran     bool
	args    []string
	verbose bool
	err     error
}

func (a *testApp) Flags(fs *flag.FlagSet) {
	fs.BoolVar(&a.verbose, "verbose", false, "Be more verbose.")
}

func (a *testApp) Run(ctx context.Context) error {
	a.ran = true
	a.args = GetEnv(ctx).Args
	return a.err
}

func testEnv(args ...string) (*Env, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &Env{
		Args:   args,
		Getenv: func(string) string { return "" },
		Stdin:  strings.NewReader(""),
		Stdout: &stdout,
		Stderr: &stderr,
	}, &stdout, &stderr
}

func TestRun(t *testing.T) {
	t.Parallel()

	env, _, _ := testEnv("-verbose", "hello")
	app := new(testApp)

	if err := Run(WithEnv(context.Background(), env), app); err != nil {
		t.Fatal(err)
	}

	if !app.ran {
		t.Fatal("app didn't run")
	}
	if !app.verbose {
		t.Fatal("flag wasn't parsed")
	}
	if len(app.args) != 1 || app.args[0] != "hello" {
		t.Fatalf("remaining args: %v", app.args)
	}
}

func TestRunPropagatesError(t *testing.T) {
	t.Parallel()

	env, _, _ := testEnv()
	wantErr := errors.New("app failed")
	app := &testApp{err: wantErr}

	err := Run(WithEnv(context.Background(), env), app)
	if !errors.Is(err, wantErr) {
		t.Fatalf("want %v, got %v", wantErr, err)
	}
}

func TestRunVersion(t *testing.T) {
	t.Parallel()

	env, _, stderr := testEnv("-version")
	app := new(testApp)

	err := Run(WithEnv(context.Background(), env), app)
	if !errors.Is(err, ErrExitVersion) {
		t.Fatalf("want %v, got %v", ErrExitVersion, err)
	}
	if app.ran {
		t.Fatal("app ran despite -version")
	}
	if stderr.Len() == 0 {
		t.Fatal("version wasn't printed")
	}
}

func TestRunInvalidFlag(t *testing.T) {
	t.Parallel()

	env, _, stderr := testEnv("-nonexistent")
	app := new(testApp)

	err := Run(WithEnv(context.Background(), env), app)
	if err == nil {
		t.Fatal("expected an error")
	}
	if isPrintableError(err) {
		t.Fatalf("flag parse error must be unprintable, got %v", err)
	}
	if !strings.Contains(stderr.String(), "nonexistent") {
		t.Fatalf("flag package didn't report unknown flag: %q", stderr.String())
	}
}

func TestGetEnvFallback(t *testing.T) {
	t.Parallel()

	if GetEnv(context.Background()) == nil {
		t.Fatal("GetEnv returned nil for empty context")
	}
}
