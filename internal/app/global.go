package app

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/uvpick/internal/output"
	"github.com/blackwell-systems/uvpick/internal/terminal"
	"github.com/blackwell-systems/uvpick/internal/uv"
)

var globalCmd = &cobra.Command{
	Use:   "global [package]",
	Short: "Install a package with pip outside any virtual environment",
	Long: `Installs a package with plain 'pip install', skipping uv and the
workspace .venv entirely. Without an argument the interactive picker opens.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGlobal,
}

func init() {
	RootCmd.AddCommand(globalCmd)
}

func runGlobal(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ws, err := workspaceRoot()
	if err != nil {
		return err
	}

	pkg, err := selectPackage(cmd.Context(), cfg, args)
	if errors.Is(err, errDismissed) {
		return nil
	}
	if err != nil {
		return err
	}

	term := terminal.NewManager(cfg.TerminalSession, ws)
	if err := term.Send(uv.GlobalPipInstall(pkg)); err != nil {
		return err
	}

	output.NewUI().Info(fmt.Sprintf("dispatched 'pip install %s' to terminal session %q", pkg, term.GetOrCreate()))
	return nil
}
