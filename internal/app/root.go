package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	cfgPath string

	// RootCmd is the root command for uvpick
	RootCmd = &cobra.Command{
		Use:   "uvpick",
		Short: "Search PyPI and install Python packages with uv",
		Long: `uvpick wraps the uv package manager with a ranked package picker,
automatic virtual environment setup, and a reusable terminal session.

Commands that need a package name accept it as an argument or, on an
interactive terminal, open a quick-pick over the top PyPI packages ranked
by download count and name similarity.

The first install in a workspace bootstraps everything: uv is located (or
installed after confirmation), .venv is created and activated, and the
install command runs inside a persistent tmux session named 'uvpick'.

Examples:
  # Pick a package interactively and install it into .venv
  uvpick install

  # Install a known package without the picker
  uvpick install requests

  # Install with pip outside any virtual environment
  uvpick global requests

  # Add a dev dependency to pyproject.toml
  uvpick add --dev pytest

  # Write requirements.txt from the current environment
  uvpick requirements

  # Rank packages matching a query
  uvpick search numpy

  # Check tool, terminal, and cache health
  uvpick doctor`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("uvpick: Python package management with uv")
			fmt.Println()
			fmt.Println("Tip: Run 'uvpick install' to pick and install a package.")
			fmt.Println("     Run 'uvpick doctor' to check your setup.")
			fmt.Println("     Run 'uvpick --help' for all commands.")
			return nil
		},
	}
)

func init() {
	// Global flags
	RootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file path (default: ~/.uvpick/config.yaml)")

	// Enable cobra's built-in suggestion feature for unknown subcommands
	RootCmd.SuggestionsMinimumDistance = 2
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}
