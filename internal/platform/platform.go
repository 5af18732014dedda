package platform

import (
	"path/filepath"
	"strings"
)

const (
	windows = "windows"
	darwin  = "darwin"
)

// GameDirectory returns the per-user game data directory for goos under home.
// Existence is not checked.
func GameDirectory(goos, home string) string {
	switch normalize(goos) {
	case windows:
		return filepath.Join(home, "AppData", "Roaming", ".minecraft")
	case darwin:
		return filepath.Join(home, "Library", "Application Support", "minecraft")
	default:
		return filepath.Join(home, ".minecraft")
	}
}

// ExecutableName appends ".exe" to base on Windows.
func ExecutableName(goos, base string) string {
	if normalize(goos) == windows {
		return base + ".exe"
	}

	return base
}

func normalize(goos string) string {
	return strings.ToLower(strings.TrimSpace(goos))
}
