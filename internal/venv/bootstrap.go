// Package venv bootstraps the uv toolchain and the project virtual
// environment: detect uv, install it when missing, detect .venv, create it
// exactly once across overlapping invocations, poll for readiness, and
// activate it in the terminal session.
package venv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/blackwell-systems/uvpick/internal/platform"
	"github.com/blackwell-systems/uvpick/internal/uv"
)

// Dir is the authoritative virtual environment directory name, relative to
// the workspace root.
const Dir = ".venv"

// Polling budget for venv readiness after the creation command is
// dispatched. Creation happens in an external process whose exit status is
// never observed, so readiness is inferred from the filesystem.
const (
	DefaultPollAttempts = 15
	DefaultPollInterval = time.Second
)

// Errors a command layer is expected to branch on. Each represents a
// user-visible terminal state, not a crash.
var (
	// ErrCancelled: the user declined the uv install prompt.
	ErrCancelled = errors.New("bootstrap cancelled")
	// ErrFallback: the user chose plain pip over installing uv.
	ErrFallback = errors.New("pip fallback selected")
	// ErrToolUnavailable: uv still unreachable after an install attempt.
	ErrToolUnavailable = errors.New("uv unavailable")
)

// Decision is the user's answer when uv is missing.
type Decision int

const (
	DecideInstall Decision = iota
	DecideFallback
	DecideCancel
)

// Locator resolves an invocable uv command.
type Locator interface {
	Resolve(ctx context.Context) (string, bool)
}

// Installer installs uv for the given platform.
type Installer interface {
	Install(ctx context.Context, info platform.OsInfo) error
}

// Terminal is the session commands are dispatched into.
type Terminal interface {
	Send(line string) error
	SetupEnvironment(toolPath string) error
	Recreate() error
}

// Notifier surfaces terminal bootstrap states to the user.
type Notifier interface {
	Info(msg string)
	Warn(msg string)
	Error(msg string)
}

// Bootstrapper drives the toolchain and environment bootstrap. The zero
// value is not usable; populate the collaborator fields.
type Bootstrapper struct {
	Workspace string
	OS        platform.OsInfo
	Locator   Locator
	Installer Installer
	Terminal  Terminal
	Notify    Notifier

	// Confirm is consulted when uv is missing. Nil means DecideInstall.
	Confirm func() Decision

	// Exists is the filesystem oracle. It is re-queried at every use and
	// never cached: external tools create and remove .venv concurrently.
	// Nil means os.Stat.
	Exists func(path string) bool

	// Sleep suspends between readiness polls. Nil means a timer that can be
	// woken early by Wake.
	Sleep func(d time.Duration)

	// Wake optionally short-circuits a poll sleep, fed by the fsnotify
	// watcher. The poll budget is authoritative either way.
	Wake <-chan struct{}

	Attempts int           // poll attempts, 0 means DefaultPollAttempts
	Interval time.Duration // poll interval, 0 means DefaultPollInterval

	// creating guards the create-and-poll critical section only. A failed
	// TryLock means another invocation is already creating the environment
	// and the duplicate call is silently absorbed.
	creating sync.Mutex
}

// EnsureTool resolves uv, installing it when absent. When an install was
// needed the terminal session is recreated first so the fresh session's
// inherited PATH can already include the new binary, then the locator runs
// again; an install that leaves uv unreachable is a warning, not a retry.
func (b *Bootstrapper) EnsureTool(ctx context.Context) (string, error) {
	tool, ok := b.Locator.Resolve(ctx)
	if ok {
		return tool, nil
	}

	switch b.decide() {
	case DecideCancel:
		return "", ErrCancelled
	case DecideFallback:
		return "", ErrFallback
	}

	if err := b.Installer.Install(ctx, b.OS); err != nil {
		return "", err
	}

	// Dispose-and-recreate tolerates the session already being gone.
	if err := b.Terminal.Recreate(); err != nil {
		b.Notify.Warn(fmt.Sprintf("could not refresh terminal session: %v", err))
	}

	tool, ok = b.Locator.Resolve(ctx)
	if !ok {
		b.Notify.Warn("uv was installed but is not reachable yet; open a new shell and retry")
		return "", ErrToolUnavailable
	}
	b.Notify.Info("uv installed: " + tool)
	return tool, nil
}

// Ensure runs the full bootstrap: tool, PATH setup, virtual environment.
// It returns the resolved uv command for subsequent dispatches.
func (b *Bootstrapper) Ensure(ctx context.Context) (string, error) {
	tool, err := b.EnsureTool(ctx)
	if err != nil {
		return "", err
	}

	// Advisory PATH augmentation for the session; never verified.
	if err := b.Terminal.SetupEnvironment(tool); err != nil {
		b.Notify.Warn(fmt.Sprintf("could not set up terminal PATH: %v", err))
	}

	if err := b.EnsureVenv(tool); err != nil {
		return "", err
	}
	return tool, nil
}

// EnsureVenv makes sure <workspace>/.venv exists and is activated in the
// terminal session. Overlapping calls collapse to a single creation: the
// loser of the lock returns immediately with no error.
func (b *Bootstrapper) EnsureVenv(tool string) error {
	dir := filepath.Join(b.Workspace, Dir)
	if b.exists(dir) {
		return b.activate()
	}

	if !b.creating.TryLock() {
		return nil
	}
	defer b.creating.Unlock()

	// Another process may have created it between the check above and the
	// lock acquisition.
	if b.exists(dir) {
		return b.activate()
	}

	if err := b.Terminal.Send(uv.CreateVenv(tool)); err != nil {
		return err
	}

	ready, dirSeen := b.poll(dir)
	switch {
	case ready:
		b.Notify.Info("virtual environment ready")
		return b.activate()
	case dirSeen:
		b.Notify.Warn(Dir + " was created but no interpreter appeared inside it")
	default:
		b.Notify.Error(fmt.Sprintf("virtual environment was not ready after %d attempts; run %q manually", b.attempts(), uv.CreateVenv(tool)))
	}
	return nil
}

// poll re-reads the filesystem once per interval, up to the attempt budget,
// looking first for the environment directory and then for the interpreter
// inside it. It stops as soon as both are observed.
func (b *Bootstrapper) poll(dir string) (ready, dirSeen bool) {
	interpreter := filepath.Join(dir, b.OS.VenvPython())

	for attempt := 0; attempt < b.attempts(); attempt++ {
		if attempt > 0 {
			b.sleep(b.interval())
		}
		if b.exists(dir) {
			dirSeen = true
			if b.exists(interpreter) {
				return true, true
			}
		}
	}
	return false, dirSeen
}

func (b *Bootstrapper) activate() error {
	return b.Terminal.Send(b.OS.ActivationLine())
}

func (b *Bootstrapper) decide() Decision {
	if b.Confirm == nil {
		return DecideInstall
	}
	return b.Confirm()
}

func (b *Bootstrapper) exists(path string) bool {
	if b.Exists != nil {
		return b.Exists(path)
	}
	_, err := os.Stat(path)
	return err == nil
}

func (b *Bootstrapper) sleep(d time.Duration) {
	if b.Sleep != nil {
		b.Sleep(d)
		return
	}

	if b.Wake == nil {
		time.Sleep(d)
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-b.Wake:
	}
}

func (b *Bootstrapper) attempts() int {
	if b.Attempts > 0 {
		return b.Attempts
	}
	return DefaultPollAttempts
}

func (b *Bootstrapper) interval() time.Duration {
	if b.Interval > 0 {
		return b.Interval
	}
	return DefaultPollInterval
}
