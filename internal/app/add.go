package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/uvpick/internal/output"
	"github.com/blackwell-systems/uvpick/internal/terminal"
	"github.com/blackwell-systems/uvpick/internal/uv"
)

var addDev bool

var addCmd = &cobra.Command{
	Use:   "add [package]",
	Short: "Add a package to pyproject.toml with uv add",
	Long: `Adds a package as a project dependency via 'uv add'. If the workspace
has no pyproject.toml yet, 'uv init' runs first to create one.

Unlike install, this records the dependency in the project manifest; uv
manages the environment itself.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().BoolVar(&addDev, "dev", false, "add as a development dependency")
	RootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
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
		// pip has no notion of project dependencies.
		ui.Warn("'add' manages pyproject.toml and needs uv; nothing was dispatched")
		return nil
	}
	persistToolPath(ui, tool)

	if _, statErr := os.Stat(filepath.Join(ws, "pyproject.toml")); os.IsNotExist(statErr) {
		ui.Info("no pyproject.toml found; initializing the project first")
		if err := term.Send(uv.Init(tool)); err != nil {
			return err
		}
	}

	if err := term.Send(uv.Add(tool, pkg, addDev)); err != nil {
		return err
	}
	ui.Info(fmt.Sprintf("dispatched add of %s to terminal session %q", pkg, term.GetOrCreate()))
	return nil
}
