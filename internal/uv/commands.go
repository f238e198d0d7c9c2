// Package uv wraps the uv and pip command-line Python package managers:
// locating the uv binary, installing it when absent, and building the exact
// shell lines uvpick dispatches into the terminal session.
package uv

import (
	"fmt"
	"regexp"
)

// DefaultCommand is the bare tool name, resolved through the shell PATH.
const DefaultCommand = "uv"

// namePattern is the PEP 508 project name shape. Package names are validated
// before being interpolated into a shell line; anything else is rejected
// rather than escaped.
var namePattern = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9._-]*[A-Za-z0-9])?$`)

// ValidName reports whether name is a well-formed package name safe to place
// into a shell command line.
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

// PipInstall returns the venv-scoped install line.
func PipInstall(tool, pkg string) string {
	return fmt.Sprintf("%s pip install %s", tool, pkg)
}

// GlobalPipInstall returns the plain pip install line used for global
// installs and for the pip fallback when uv is unavailable.
func GlobalPipInstall(pkg string) string {
	return "pip install " + pkg
}

// CreateVenv returns the virtual environment creation line.
func CreateVenv(tool string) string {
	return tool + " venv"
}

// Freeze returns the requirements.txt generation line. The file format is
// owned by uv; uvpick only redirects the output.
func Freeze(tool string) string {
	return tool + " pip freeze > requirements.txt"
}

// Init returns the project initialization line.
func Init(tool string) string {
	return tool + " init"
}

// Add returns the project dependency line, optionally as a dev dependency.
func Add(tool, pkg string, dev bool) string {
	if dev {
		return fmt.Sprintf("%s add --dev %s", tool, pkg)
	}
	return fmt.Sprintf("%s add %s", tool, pkg)
}
