package app

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/uvpick/internal/output"
	"github.com/blackwell-systems/uvpick/internal/terminal"
	"github.com/blackwell-systems/uvpick/internal/uv"
)

var requirementsCmd = &cobra.Command{
	Use:   "requirements",
	Short: "Write requirements.txt from the active environment",
	Long: `Runs 'uv pip freeze > requirements.txt' in the terminal session,
bootstrapping uv and the workspace .venv first if needed. The file content
is whatever uv emits; uvpick only redirects it.`,
	Args: cobra.NoArgs,
	RunE: runRequirements,
}

func init() {
	RootCmd.AddCommand(requirementsCmd)
}

func runRequirements(cmd *cobra.Command, args []string) error {
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

	term := terminal.NewManager(cfg.TerminalSession, ws)
	b, stopWatch := newBootstrapper(cfg, ws, term, ui)
	defer stopWatch()

	tool, err := b.Ensure(ctx)
	fallback, err := handleBootstrapErr(err)
	if err != nil {
		if errors.Is(err, errDismissed) {
			return nil
		}
		return err
	}
	if fallback {
		ui.Warn("'requirements' needs uv; nothing was dispatched")
		return nil
	}
	persistToolPath(ui, tool)

	if err := term.Send(uv.Freeze(tool)); err != nil {
		return err
	}
	ui.Info(fmt.Sprintf("dispatched freeze to terminal session %q; requirements.txt will appear in %s", term.GetOrCreate(), ws))
	return nil
}
