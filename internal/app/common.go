package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/blackwell-systems/uvpick/internal/config"
	"github.com/blackwell-systems/uvpick/internal/index"
	"github.com/blackwell-systems/uvpick/internal/output"
	"github.com/blackwell-systems/uvpick/internal/picker"
	"github.com/blackwell-systems/uvpick/internal/platform"
	"github.com/blackwell-systems/uvpick/internal/search"
	"github.com/blackwell-systems/uvpick/internal/shell"
	"github.com/blackwell-systems/uvpick/internal/store"
	"github.com/blackwell-systems/uvpick/internal/terminal"
	"github.com/blackwell-systems/uvpick/internal/uv"
	"github.com/blackwell-systems/uvpick/internal/venv"
)

// errDismissed ends a command silently: prompt dismissal is the only
// cancellation path and is not an error condition.
var errDismissed = errors.New("selection dismissed")

// loadConfig resolves the config file, honoring the --config flag.
func loadConfig() (config.Config, error) {
	path := cfgPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return config.Default(), err
		}
	}
	return config.Load(path)
}

// workspaceRoot returns the directory commands operate in. No usable working
// directory means the single command aborts; nothing retries.
func workspaceRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("no workspace available: %w", err)
	}
	return wd, nil
}

// openCache opens the index cache database. Cache failures are not fatal:
// the index client works without one.
func openCache() *store.Store {
	path, err := store.DefaultPath()
	if err != nil {
		return nil
	}
	s, err := store.New(path)
	if err != nil {
		return nil
	}
	if err := s.CreateSchema(); err != nil {
		s.Close()
		return nil
	}
	return s
}

// loadRecords fetches the package index, degrading to the cache.
func loadRecords(ctx context.Context, cfg config.Config) ([]search.Record, error) {
	cache := openCache()
	if cache != nil {
		defer cache.Close()
	}
	return index.NewClient(cfg.IndexURL, cache).Load(ctx)
}

// selectPackage resolves the package to operate on: a validated argument
// when given, otherwise an interactive pick over the index. Dismissing the
// picker yields errDismissed.
func selectPackage(ctx context.Context, cfg config.Config, args []string) (string, error) {
	if len(args) > 0 {
		name := strings.TrimSpace(args[0])
		if !uv.ValidName(name) {
			return "", fmt.Errorf("invalid package name %q", name)
		}
		return name, nil
	}

	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return "", errors.New("no interactive terminal; pass the package name as an argument")
	}

	records, err := loadRecords(ctx, cfg)
	if err != nil {
		if errors.Is(err, index.ErrUnavailable) {
			return "", fmt.Errorf("package list unavailable; pass the package name as an argument (%v)", err)
		}
		return "", err
	}

	pkg, ok, err := picker.Pick(records, cfg.SearchOptions())
	if err != nil {
		return "", err
	}
	if !ok {
		return "", errDismissed
	}
	if !uv.ValidName(pkg) {
		return "", fmt.Errorf("index returned unusable package name %q", pkg)
	}
	return pkg, nil
}

// newBootstrapper wires the environment bootstrapper for a workspace. The
// returned cleanup stops the venv readiness watcher.
func newBootstrapper(cfg config.Config, ws string, term *terminal.Manager, ui *output.UI) (*venv.Bootstrapper, func()) {
	b := &venv.Bootstrapper{
		Workspace: ws,
		OS:        platform.Detect(),
		Locator:   uv.NewLocator(),
		Installer: uv.NewInstaller(),
		Terminal:  term,
		Notify:    ui,
		Confirm:   promptInstallDecision,
		Attempts:  cfg.PollAttempts,
		Interval:  cfg.PollInterval(),
	}

	cleanup := func() {}
	if wake, stop, err := venv.Watch(ws); err == nil {
		b.Wake = wake
		cleanup = stop
	}
	return b, cleanup
}

// promptInstallDecision asks what to do when uv is missing. Without an
// interactive terminal the answer defaults to cancel: auto-installing on a
// non-TTY invocation would be a surprise.
func promptInstallDecision() venv.Decision {
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		fmt.Println("uv is not installed. Run 'uvpick doctor' for details, or install it manually.")
		return venv.DecideCancel
	}

	reader := bufio.NewReader(os.Stdin)
	fmt.Print("uv is not installed. [i]nstall it now, use [p]ip instead, or [c]ancel? ")

	response, err := reader.ReadString('\n')
	if err != nil {
		return venv.DecideCancel
	}

	switch strings.ToLower(strings.TrimSpace(response)) {
	case "i", "install":
		return venv.DecideInstall
	case "p", "pip":
		return venv.DecideFallback
	default:
		return venv.DecideCancel
	}
}

// persistToolPath records a freshly resolved tool directory in the user's
// shell profile so future shells find uv without the session PATH export.
func persistToolPath(ui *output.UI, tool string) {
	if !strings.ContainsRune(tool, filepath.Separator) {
		return
	}
	added, configFile, err := shell.EnsurePathEntry(filepath.Dir(tool))
	if err != nil || !added {
		return
	}
	ui.Info("added " + filepath.Dir(tool) + " to PATH in " + configFile)
}

// handleBootstrapErr maps bootstrap outcomes that are not command errors.
// It returns (fallbackToPip, err): fallback means dispatch plain pip, a nil
// err with no fallback means the command already surfaced its outcome.
func handleBootstrapErr(err error) (bool, error) {
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, venv.ErrFallback):
		return true, nil
	case errors.Is(err, venv.ErrCancelled), errors.Is(err, venv.ErrToolUnavailable):
		return false, errDismissed
	default:
		return false, err
	}
}
