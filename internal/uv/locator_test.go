package uv

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
)

func TestResolve_AllProbesFail(t *testing.T) {
	var completed atomic.Int32
	l := &Locator{probe: func(ctx context.Context, candidate string) bool {
		completed.Add(1)
		return false
	}}

	path, ok := l.Resolve(context.Background())

	if ok {
		t.Error("expected not found when every probe fails")
	}
	if path != DefaultCommand {
		t.Errorf("expected bare-name fallback, got %q", path)
	}
	// "Not found" may only be reported after every probe has finished: the
	// bare command plus each well-known directory.
	want := int32(1 + len(WellKnownDirs()))
	if got := completed.Load(); got != want {
		t.Errorf("expected %d completed probes before reporting not found, got %d", want, got)
	}
}

func TestResolve_BareCommandWins(t *testing.T) {
	l := &Locator{probe: func(ctx context.Context, candidate string) bool {
		return candidate == DefaultCommand
	}}

	path, ok := l.Resolve(context.Background())
	if !ok || path != DefaultCommand {
		t.Errorf("expected bare command to win, got %q, %v", path, ok)
	}
}

// A lower-priority probe finishing first must not beat a higher-priority
// success: the result has to be deterministic despite concurrent completion.
func TestResolve_DeterministicPriority(t *testing.T) {
	var mu sync.Mutex
	var probed []string

	l := &Locator{probe: func(ctx context.Context, candidate string) bool {
		mu.Lock()
		probed = append(probed, candidate)
		mu.Unlock()
		// Everything except the bare command responds.
		return candidate != DefaultCommand
	}}

	for i := 0; i < 20; i++ {
		path, ok := l.Resolve(context.Background())
		if !ok {
			t.Fatal("expected a responding candidate")
		}
		want := filepath.Join(WellKnownDirs()[0], DefaultCommand)
		if path != want {
			t.Fatalf("expected highest-priority responding path %q, got %q", want, path)
		}
	}
}

func TestAvailable(t *testing.T) {
	l := &Locator{probe: func(ctx context.Context, candidate string) bool { return false }}
	if l.Available(context.Background()) {
		t.Error("expected unavailable")
	}

	l = &Locator{probe: func(ctx context.Context, candidate string) bool { return true }}
	if !l.Available(context.Background()) {
		t.Error("expected available")
	}
}
