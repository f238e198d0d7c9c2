package terminal

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/blackwell-systems/uvpick/internal/uv"
)

// fakeTmux records tmux invocations and scripts their results.
type fakeTmux struct {
	calls    [][]string
	sessions map[string]bool
	failNew  bool
}

func newFakeTmux() *fakeTmux {
	return &fakeTmux{sessions: make(map[string]bool)}
}

func (f *fakeTmux) run(args ...string) (string, error) {
	f.calls = append(f.calls, args)

	switch args[0] {
	case "has-session":
		if f.sessions[args[2]] {
			return "", nil
		}
		return "", errors.New("no such session")
	case "new-session":
		if f.failNew {
			return "", errors.New("server exited unexpectedly")
		}
		f.sessions[sessionArg(args)] = true
		return "", nil
	case "kill-session":
		delete(f.sessions, args[2])
		return "", nil
	case "send-keys":
		if !f.sessions[args[2]] {
			return "", errors.New("no such session")
		}
		return "", nil
	}
	return "", nil
}

func sessionArg(args []string) string {
	for i, a := range args {
		if a == "-s" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func (f *fakeTmux) sent() []string {
	var lines []string
	for _, call := range f.calls {
		if call[0] == "send-keys" {
			lines = append(lines, call[3])
		}
	}
	return lines
}

func newTestManager(f *fakeTmux) *Manager {
	m := NewManager("uvpick", "/tmp/project")
	m.run = f.run
	m.now = func() time.Time { return time.Unix(1700000000, 0) }
	return m
}

func TestGetOrCreate_ReusesLiveSession(t *testing.T) {
	f := newFakeTmux()
	f.sessions["uvpick"] = true
	m := newTestManager(f)

	if got := m.GetOrCreate(); got != "uvpick" {
		t.Errorf("expected reuse of live session, got %q", got)
	}
	for _, call := range f.calls {
		if call[0] == "new-session" {
			t.Error("live session should not be recreated")
		}
	}
}

func TestGetOrCreate_CreatesWhenMissing(t *testing.T) {
	f := newFakeTmux()
	m := newTestManager(f)

	if got := m.GetOrCreate(); got != "uvpick" {
		t.Errorf("expected named session, got %q", got)
	}
	if !f.sessions["uvpick"] {
		t.Error("expected session to be created")
	}
}

func TestGetOrCreate_FallsBackToUniqueName(t *testing.T) {
	f := newFakeTmux()
	f.failNew = true
	m := newTestManager(f)

	got := m.GetOrCreate()
	if got == "uvpick" {
		t.Error("expected timestamp-suffixed fallback name")
	}
	if !strings.HasPrefix(got, "uvpick-") {
		t.Errorf("fallback name should carry the base name prefix, got %q", got)
	}
}

func TestSend_CreatesSessionOnDemand(t *testing.T) {
	f := newFakeTmux()
	m := newTestManager(f)

	if err := m.Send("uv venv"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sent := f.sent()
	if len(sent) != 1 || sent[0] != "uv venv" {
		t.Errorf("expected dispatched line, got %v", sent)
	}
}

func TestRecreate_DisposesThenCreates(t *testing.T) {
	f := newFakeTmux()
	f.sessions["uvpick"] = true
	m := newTestManager(f)
	m.GetOrCreate()

	if err := m.Recreate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var killed, created bool
	for _, call := range f.calls {
		switch call[0] {
		case "kill-session":
			killed = true
		case "new-session":
			created = true
		}
	}
	if !killed || !created {
		t.Errorf("expected kill then create, killed=%v created=%v", killed, created)
	}
}

func TestRecreate_ToleratesMissingSession(t *testing.T) {
	f := newFakeTmux()
	m := newTestManager(f)

	// No session exists: kill fails internally, create must still succeed.
	if err := m.Recreate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !f.sessions["uvpick"] {
		t.Error("expected session after recreate")
	}
}

func TestSetupEnvironment_DedupesAndPrioritizesToolDir(t *testing.T) {
	f := newFakeTmux()
	m := newTestManager(f)

	toolDir := uv.WellKnownDirs()[len(uv.WellKnownDirs())-1]
	tool := filepath.Join(toolDir, "uv")
	if err := m.SetupEnvironment(tool); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sent := f.sent()
	if len(sent) != 1 {
		t.Fatalf("expected one export line, got %v", sent)
	}
	line := sent[0]
	if !strings.HasPrefix(line, `export PATH="`+toolDir) {
		t.Errorf("tool dir should lead the PATH export, got %q", line)
	}
	if strings.Count(line, toolDir+":") > 1 {
		t.Errorf("tool dir should appear once, got %q", line)
	}
	if !strings.HasSuffix(line, `:$PATH"`) {
		t.Errorf("export should append to existing PATH, got %q", line)
	}
}

func TestSetupEnvironment_BareNameSkipsToolDir(t *testing.T) {
	f := newFakeTmux()
	m := newTestManager(f)

	if err := m.SetupEnvironment("uv"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	line := f.sent()[0]
	if !strings.HasPrefix(line, `export PATH="`+uv.WellKnownDirs()[0]) {
		t.Errorf("expected well-known dirs only, got %q", line)
	}
}
