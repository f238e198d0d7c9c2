package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/blackwell-systems/uvpick/internal/search"
)

func TestRenderSearchTable(t *testing.T) {
	cands := search.Rank([]search.Record{
		{Project: "requests", DownloadCount: 900000000},
		{Project: "a-very-long-package-name-that-keeps-going-and-going", DownloadCount: 1},
	}, "", search.DefaultOptions())

	got := RenderSearchTable(cands)

	if !strings.Contains(got, "requests") {
		t.Errorf("table should contain package name, got:\n%s", got)
	}
	if !strings.Contains(got, "900,000,000") {
		t.Errorf("table should humanize download counts, got:\n%s", got)
	}
	if !strings.Contains(got, "...") {
		t.Errorf("long names should be truncated, got:\n%s", got)
	}
}

func TestRenderSearchTable_Empty(t *testing.T) {
	if got := RenderSearchTable(nil); got != "No packages found.\n" {
		t.Errorf("unexpected empty rendering: %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 20); got != "short" {
		t.Errorf("truncate should not modify short strings, got %q", got)
	}
	if got := truncate("exactly-twenty-chars", 20); got != "exactly-twenty-chars" {
		t.Errorf("boundary length should pass through, got %q", got)
	}
	if got := truncate("a-much-longer-package-name", 10); got != "a-much-..." {
		t.Errorf("truncate = %q", got)
	}
}

func TestUI_Notifications(t *testing.T) {
	var buf bytes.Buffer
	u := &UI{Writer: &buf}

	u.Info("environment ready")
	u.Warn("interpreter missing")
	u.Error("index unavailable")

	out := buf.String()
	for _, want := range []string{"✓", "environment ready", "⚠", "interpreter missing", "✗", "index unavailable"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestSpinner_NonTTYPrintsOnce(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner("Waiting for .venv")
	s.SetWriter(&buf)

	s.Start()
	s.StopWithMessage("✓ done")

	out := buf.String()
	if !strings.Contains(out, "Waiting for .venv...") {
		t.Errorf("expected single message on non-TTY, got %q", out)
	}
	if !strings.Contains(out, "✓ done") {
		t.Errorf("expected final message, got %q", out)
	}
}
