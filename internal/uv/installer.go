package uv

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/blackwell-systems/uvpick/internal/platform"
)

// Install commands per platform, each a one-shot invocation of the official
// standalone installer.
const (
	windowsInstall = "irm https://astral.sh/uv/install.ps1 | iex"
	unixInstall    = "curl -LsSf https://astral.sh/uv/install.sh | sh"
)

// Installer installs uv via the platform-appropriate one-liner.
type Installer struct {
	// run executes the installer process and returns its combined output.
	// Swappable for tests.
	run func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewInstaller returns an Installer backed by real process execution.
func NewInstaller() *Installer {
	return &Installer{run: runCombined}
}

func runCombined(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Install runs the uv installer for the given platform and waits for it to
// finish. Success means only that the process exited cleanly; verifying that
// uv is now reachable is the caller's job.
func (i *Installer) Install(ctx context.Context, info platform.OsInfo) error {
	var name string
	var args []string

	switch {
	case info.IsWindows:
		name = "powershell"
		args = []string{"-ExecutionPolicy", "ByPass", "-c", windowsInstall}
	case info.IsMacOS, info.IsLinux:
		name = "sh"
		args = []string{"-c", unixInstall}
	default:
		return fmt.Errorf("no uv installer for platform %s; see https://docs.astral.sh/uv/getting-started/installation/", info.Readable)
	}

	output, err := i.run(ctx, name, args...)
	if err != nil {
		return fmt.Errorf("uv install failed: %w (output: %s)", err, string(output))
	}
	return nil
}
