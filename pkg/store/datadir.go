package store

import (
	"os"
	"path/filepath"
	"runtime"
)

// DefaultDataDir returns the OS-appropriate default data directory for glint.
//
//   - macOS:   ~/Library/Application Support/glint
//   - Linux:   $XDG_DATA_HOME/glint (fallback ~/.local/share/glint)
//   - Windows: %LOCALAPPDATA%\glint (fallback %APPDATA%\glint)
func DefaultDataDir() string {
	return defaultDataDirForOS(runtime.GOOS)
}

func defaultDataDirForOS(goos string) string {
	home, _ := os.UserHomeDir()

	switch goos {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "glint")
	case "windows":
		if dir := os.Getenv("LOCALAPPDATA"); dir != "" {
			return filepath.Join(dir, "glint")
		}
		if dir := os.Getenv("APPDATA"); dir != "" {
			return filepath.Join(dir, "glint")
		}
		return filepath.Join(home, "glint")
	default: // linux, freebsd, etc.
		if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
			return filepath.Join(dir, "glint")
		}
		return filepath.Join(home, ".local", "share", "glint")
	}
}
