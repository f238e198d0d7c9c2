package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/uvpick/internal/output"
	"github.com/blackwell-systems/uvpick/internal/terminal"
	"github.com/blackwell-systems/uvpick/internal/uv"
	"github.com/blackwell-systems/uvpick/internal/venv"
)

var installCmd = &cobra.Command{
	Use:   "install [package]",
	Short: "Install a package into the workspace virtual environment",
	Long: `Installs a package with 'uv pip install' inside the workspace .venv.

Without an argument an interactive picker opens over the top PyPI packages.
Missing pieces are bootstrapped on the way: uv is located or installed, and
.venv is created and activated in the terminal session if absent.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInstall,
}

func init() {
	RootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ws, err := workspaceRoot()
	if err != nil {
		return err
	}
	ui := output.NewUI()

	pkg, err := selectPackage(ctx, cfg, args)
	if errors.Is(err, errDismissed) {
		return nil
	}
	if err != nil {
		return err
	}

	term := terminal.NewManager(cfg.TerminalSession, ws)
	b, stopWatch := newBootstrapper(cfg, ws, term, ui)
	defer stopWatch()

	tool, err := b.EnsureTool(ctx)
	fallback, err := handleBootstrapErr(err)
	if err != nil {
		if errors.Is(err, errDismissed) {
			return nil
		}
		return err
	}
	if fallback {
		if err := term.Send(uv.GlobalPipInstall(pkg)); err != nil {
			return err
		}
		ui.Info(fmt.Sprintf("dispatched 'pip install %s' to terminal session %q", pkg, term.GetOrCreate()))
		return nil
	}

	persistToolPath(ui, tool)
	if err := term.SetupEnvironment(tool); err != nil {
		ui.Warn(fmt.Sprintf("could not set up terminal PATH: %v", err))
	}

	// The readiness poll can take the full budget when .venv is created from
	// scratch; show the wait only in that case.
	if _, statErr := os.Stat(filepath.Join(ws, venv.Dir)); os.IsNotExist(statErr) {
		spinner := output.NewSpinner("Waiting for virtual environment").
			WithTimeout(time.Duration(cfg.PollAttempts) * cfg.PollInterval())
		spinner.Start()
		err = b.EnsureVenv(tool)
		spinner.Stop()
	} else {
		err = b.EnsureVenv(tool)
	}
	if err != nil {
		return err
	}

	if err := term.Send(uv.PipInstall(tool, pkg)); err != nil {
		return err
	}
	ui.Info(fmt.Sprintf("dispatched install of %s to terminal session %q", pkg, term.GetOrCreate()))
	return nil
}
