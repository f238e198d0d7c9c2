// Package output provides terminal output utilities for uvpick:
// ✓/⚠/✗ notification lines, a spinner for the venv readiness poll, and the
// search result table. ANSI color is gated on stdout being a TTY.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// ANSI color codes for notification display
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorGray   = "\033[90m"
)

// IsColorEnabled returns true if ANSI color codes should be emitted.
// It checks that os.Stdout is a TTY and that the NO_COLOR env var is not set.
func IsColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// colorize wraps text in the given ANSI color code if color is enabled,
// otherwise returns the plain text.
func colorize(color, text string) string {
	if IsColorEnabled() {
		return color + text + colorReset
	}
	return text
}

// UI writes user-facing notification lines. It satisfies venv.Notifier.
type UI struct {
	Writer io.Writer
}

// NewUI returns a UI writing to stdout.
func NewUI() *UI {
	return &UI{Writer: os.Stdout}
}

// Info prints a success/progress notification.
func (u *UI) Info(msg string) {
	fmt.Fprintln(u.Writer, colorize(colorGreen, "✓")+" "+msg)
}

// Warn prints a non-fatal warning notification.
func (u *UI) Warn(msg string) {
	fmt.Fprintln(u.Writer, colorize(colorYellow, "⚠")+" "+msg)
}

// Error prints a failure notification. The failure is terminal for the
// current command only, never for the process.
func (u *UI) Error(msg string) {
	fmt.Fprintln(u.Writer, colorize(colorRed, "✗")+" "+msg)
}
