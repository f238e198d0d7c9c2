package uv

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
)

// WellKnownDirs returns the ordered list of directories uv installers are
// known to drop the binary into. The shell PATH may not include them yet in
// the session that triggered the install.
func WellKnownDirs() []string {
	var dirs []string
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs,
			filepath.Join(home, ".cargo", "bin"),
			filepath.Join(home, ".local", "bin"),
		)
	}
	return append(dirs, "/usr/local/bin", "/opt/homebrew/bin")
}

// Locator discovers an invocable uv command, first via the shell PATH and
// then through the well-known install directories.
type Locator struct {
	// probe runs a candidate with a version flag and reports whether it
	// responded. Swappable for tests.
	probe func(ctx context.Context, candidate string) bool
}

// NewLocator returns a Locator backed by real process probes.
func NewLocator() *Locator {
	return &Locator{probe: runVersionProbe}
}

func runVersionProbe(ctx context.Context, candidate string) bool {
	cmd := exec.CommandContext(ctx, candidate, "--version")
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}

// Resolve returns an invocable uv command and whether any probe responded.
//
// All candidates are probed concurrently. The winner is deterministic: the
// highest-priority candidate that responded, regardless of completion order.
// "Not found" is reported only once every probe has finished, and the bare
// command name is returned as a last resort so callers always get something
// invocable.
func (l *Locator) Resolve(ctx context.Context) (string, bool) {
	candidates := []string{DefaultCommand}
	for _, dir := range WellKnownDirs() {
		candidates = append(candidates, filepath.Join(dir, DefaultCommand))
	}

	results := make([]bool, len(candidates))
	done := make([]chan struct{}, len(candidates))
	for i := range candidates {
		done[i] = make(chan struct{})
		go func(i int) {
			defer close(done[i])
			results[i] = l.probe(ctx, candidates[i])
		}(i)
	}

	// Await candidates in priority order; a success short-circuits the wait
	// on lower-priority probes without racing them.
	for i := range candidates {
		<-done[i]
		if results[i] {
			return candidates[i], true
		}
	}
	return DefaultCommand, false
}

// Available reports whether any uv probe responded.
func (l *Locator) Available(ctx context.Context) bool {
	_, ok := l.Resolve(ctx)
	return ok
}
