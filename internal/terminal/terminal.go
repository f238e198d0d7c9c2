// Package terminal manages the reusable named tmux session that uvpick
// dispatches shell commands into. Sends are fire-and-forget: uvpick never
// observes the exit status of a dispatched command.
package terminal

import (
	"bytes"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/blackwell-systems/uvpick/internal/uv"
)

// DefaultSession is the fixed session name commands are reused across.
const DefaultSession = "uvpick"

// Runner executes a tmux command and returns its stdout. Swappable for tests.
type Runner func(args ...string) (string, error)

func runTmux(args ...string) (string, error) {
	cmd := exec.Command("tmux", args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("tmux %s: %w: %s", strings.Join(args, " "), err, stderr.String())
	}
	return strings.TrimSpace(stdout.String()), nil
}

// Available reports whether tmux is installed.
func Available() bool {
	_, err := exec.LookPath("tmux")
	return err == nil
}

// Manager owns the lookup-or-create contract for the named session. It does
// not own the session lifecycle beyond that: the user may kill or detach it
// at any time, so liveness is re-probed on every use.
type Manager struct {
	name    string
	workdir string
	run     Runner
	now     func() time.Time

	// current is the session name resolved by the last GetOrCreate. It may
	// differ from name after a fallback to a uniquely-named session.
	current string
}

// NewManager returns a Manager for the given session name and working
// directory. An empty name selects DefaultSession.
func NewManager(name, workdir string) *Manager {
	if name == "" {
		name = DefaultSession
	}
	return &Manager{name: name, workdir: workdir, run: runTmux, now: time.Now}
}

// alive probes whether the named session exists and still answers.
func (m *Manager) alive(name string) bool {
	_, err := m.run("has-session", "-t", name)
	return err == nil
}

func (m *Manager) create(name string) error {
	args := []string{"new-session", "-d", "-s", name}
	if m.workdir != "" {
		args = append(args, "-c", m.workdir)
	}
	_, err := m.run(args...)
	return err
}

// GetOrCreate resolves the current session, reusing the named one only when
// it answers a liveness probe and creating it otherwise. If creation fails
// unexpectedly it falls back to a timestamp-suffixed unique name so the
// calling command never aborts here.
func (m *Manager) GetOrCreate() string {
	if m.alive(m.name) {
		m.current = m.name
		return m.current
	}

	if err := m.create(m.name); err == nil {
		m.current = m.name
		return m.current
	}

	unique := fmt.Sprintf("%s-%d", m.name, m.now().Unix())
	// Best effort: if even this fails the next Send reports the error.
	_ = m.create(unique)
	m.current = unique
	return m.current
}

// Send dispatches one shell line into the session for side effect. No
// structured result comes back.
func (m *Manager) Send(line string) error {
	target := m.current
	if target == "" || !m.alive(target) {
		target = m.GetOrCreate()
	}

	if _, err := m.run("send-keys", "-t", target, line, "Enter"); err != nil {
		return fmt.Errorf("failed to dispatch %q: %w", line, err)
	}
	return nil
}

// Recreate disposes the current session and creates a fresh one so that a
// just-installed tool is reachable through the new session's inherited PATH.
// Disposal errors are tolerated: the session may already be gone.
func (m *Manager) Recreate() error {
	target := m.current
	if target == "" {
		target = m.name
	}
	_, _ = m.run("kill-session", "-t", target)

	m.current = ""
	if err := m.create(m.name); err != nil {
		return fmt.Errorf("failed to recreate terminal session: %w", err)
	}
	m.current = m.name
	return nil
}

// SetupEnvironment prepends the well-known uv install directories to the
// session's PATH via an export line. The resolved tool's own directory gets
// priority when the tool was located by path rather than bare name. This is
// advisory: the line is sent as text and never verified.
func (m *Manager) SetupEnvironment(toolPath string) error {
	var dirs []string
	if strings.ContainsRune(toolPath, filepath.Separator) {
		dirs = append(dirs, filepath.Dir(toolPath))
	}
	dirs = append(dirs, uv.WellKnownDirs()...)

	seen := make(map[string]bool, len(dirs))
	deduped := dirs[:0]
	for _, d := range dirs {
		if !seen[d] {
			seen[d] = true
			deduped = append(deduped, d)
		}
	}

	line := fmt.Sprintf(`export PATH="%s:$PATH"`, strings.Join(deduped, ":"))
	return m.Send(line)
}
