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

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a uv project in the workspace",
	Long:  `Runs 'uv init' in the terminal session to create pyproject.toml.`,
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

func init() {
	RootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
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

	if _, statErr := os.Stat(filepath.Join(ws, "pyproject.toml")); statErr == nil {
		ui.Warn("pyproject.toml already exists; nothing to do")
		return nil
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
		ui.Warn("'init' needs uv; nothing was dispatched")
		return nil
	}
	persistToolPath(ui, tool)

	if err := term.Send(uv.Init(tool)); err != nil {
		return err
	}
	ui.Info(fmt.Sprintf("dispatched 'uv init' to terminal session %q", term.GetOrCreate()))
	return nil
}
