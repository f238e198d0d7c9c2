// Package platform identifies the host operating system and provides the
// platform-specific paths and shell lines the rest of uvpick depends on.
package platform

import (
	"path/filepath"
	"runtime"
)

// OsInfo describes the host operating system.
type OsInfo struct {
	Platform  string // raw GOOS value
	IsWindows bool
	IsMacOS   bool
	IsLinux   bool
	Readable  string // human-readable name for messages
}

// Detect returns the OsInfo for the current process.
func Detect() OsInfo {
	return detect(runtime.GOOS)
}

// detect maps a GOOS value to an OsInfo. Unknown platforms yield all-false
// flags with the raw platform string as the readable name.
func detect(goos string) OsInfo {
	info := OsInfo{Platform: goos}

	switch goos {
	case "windows":
		info.IsWindows = true
		info.Readable = "Windows"
	case "darwin":
		info.IsMacOS = true
		info.Readable = "macOS"
	case "linux":
		info.IsLinux = true
		info.Readable = "Linux"
	default:
		info.Readable = goos
	}

	return info
}

// Supported reports whether uvpick knows how to install uv on this platform.
func (o OsInfo) Supported() bool {
	return o.IsWindows || o.IsMacOS || o.IsLinux
}

// VenvPython returns the interpreter path inside a virtual environment
// directory, relative to the environment root.
func (o OsInfo) VenvPython() string {
	if o.IsWindows {
		return filepath.Join("Scripts", "python.exe")
	}
	return filepath.Join("bin", "python")
}

// ActivationLine returns the shell line that activates the .venv virtual
// environment in the current shell session.
func (o OsInfo) ActivationLine() string {
	if o.IsWindows {
		return `.venv\Scripts\activate`
	}
	return "source .venv/bin/activate"
}
