// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"cmp"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.astrophena.name/xmon/cmd/xmon/internal/feed"
	"go.astrophena.name/xmon/internal/cli"
	"go.astrophena.name/xmon/internal/filelock"
	"go.astrophena.name/xmon/internal/httplogger"
	"go.astrophena.name/xmon/internal/logger"
)

// Some types of errors that can happen during xmon execution.
var (
	errAlreadyRunning   = errors.New("already running")
	errDuplicateAccount = errors.New("account is already monitored")
	errUnknownAccount   = errors.New("no such account")
)

func main() { cli.Main(new(monitor)) }

func (m *monitor) Flags(fs *flag.FlagSet) {
	fs.StringVar(&m.configPath, "config", "", "Path to the configuration `file`. Defaults to $XDG_CONFIG_HOME/xmon/config.json.")
	fs.BoolVar(&m.dry, "dry", false, "Enable dry-run mode: log actions, but don't show notifications or save state.")
	fs.BoolVar(&m.json, "json", false, "Output in JSON format (honored in supported commands).")
	fs.BoolVar(&m.quiet, "quiet", false, "Suppress progress output, report only errors.")
}

type monitor struct {
	init    sync.Once
	runLock filelock.Lock

	// configuration
	configPath string
	dry        bool
	json       bool
	quiet      bool
	// now acts as time.Now, but can be mocked for testing.
	now func() time.Time

	// initialized by doInit
	httpc     *http.Client
	fetcher   *feed.Fetcher
	notify    notifyFunc
	logf      logger.Logf
	slog      *slog.Logger
	slogLevel *slog.LevelVar

	// loaded by loadConfig
	config *configFile
}

func (m *monitor) doInit(ctx context.Context) {
	env := cli.GetEnv(ctx)
	m.logf = log.New(env.Stderr, "", 0).Printf
	if m.now == nil {
		m.now = time.Now
	}

	if m.httpc == nil {
		m.httpc = feed.DefaultClient
	}
	// In dry-run mode, log every feed request to aid instance debugging.
	if m.dry {
		m.httpc = &http.Client{
			Transport: httplogger.New(m.httpc.Transport, m.logf),
			Timeout:   m.httpc.Timeout,
		}
	}
	m.fetcher = feed.NewFetcher(m.httpc)
	if m.notify == nil {
		m.notify = displayNotification
	}

	l := logger.Get(ctx)
	m.slog = l.Logger
	m.slogLevel = l.Level
}

func (m *monitor) Run(ctx context.Context) error {
	env := cli.GetEnv(ctx)

	m.configPath = cmp.Or(m.configPath, env.Getenv("XMON_CONFIG"))
	if m.configPath == "" {
		configHome := env.Getenv("XDG_CONFIG_HOME")
		if configHome == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return err
			}
			configHome = filepath.Join(home, ".config")
		}
		m.configPath = filepath.Join(configHome, "xmon", "config.json")
	}

	// Initialize internal state.
	m.init.Do(func() {
		m.doInit(ctx)
	})

	// Enable debug logging in dry-run mode.
	if m.dry {
		m.slogLevel.Set(slog.LevelDebug)
	}

	if err := m.loadConfig(); err != nil {
		return err
	}

	if len(env.Args) == 0 {
		return m.runAll(ctx)
	}
	command := env.Args[0]

	switch command {
	case "add":
		if len(env.Args) != 2 {
			return fmt.Errorf("%w: add command expects an account handle", cli.ErrInvalidArgs)
		}
		return m.addAccount(env.Args[1])
	case "remove":
		if len(env.Args) != 2 {
			return fmt.Errorf("%w: remove command expects an account handle", cli.ErrInvalidArgs)
		}
		return m.removeAccount(env.Args[1])
	case "list":
		return m.listAccounts(env.Stdout)
	case "check":
		if len(env.Args) != 2 {
			return fmt.Errorf("%w: check command expects an account handle", cli.ErrInvalidArgs)
		}
		return m.checkOne(ctx, env.Args[1])
	case "set-interval":
		if len(env.Args) != 2 {
			return fmt.Errorf("%w: set-interval command expects a number of minutes", cli.ErrInvalidArgs)
		}
		return m.setInterval(env.Args[1])
	case "set-instance":
		if len(env.Args) != 2 {
			return fmt.Errorf("%w: set-instance command expects an URL", cli.ErrInvalidArgs)
		}
		return m.setInstance(env.Args[1])
	default:
		return fmt.Errorf("%w: no such command %q", cli.ErrInvalidArgs, command)
	}
}

func (m *monitor) runLockPath() string {
	return filepath.Join(filepath.Dir(m.configPath), ".run.lock")
}

func (m *monitor) acquireRunLock() error {
	lock, err := filelock.Acquire(m.runLockPath(), fmt.Sprintf("pid=%d\n", os.Getpid()))
	if err != nil {
		if errors.Is(err, filelock.ErrAlreadyLocked) {
			return errAlreadyRunning
		}
		return err
	}
	m.runLock = lock
	return nil
}

func (m *monitor) releaseRunLock() {
	if m.runLock == nil {
		return
	}
	if err := m.runLock.Release(); err != nil {
		m.slog.Warn("failed to release run lock", "error", err)
	}
	m.runLock = nil
}
