package platform

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestGameDirectory covers the three path shapes and unknown systems.
func TestGameDirectory(t *testing.T) {
	t.Parallel()

	// The home directory does not exist: the resolver must not care.
	home := filepath.Join(t.TempDir(), "no-such-user")

	cases := map[string]string{
		"windows": filepath.Join(home, "AppData", "Roaming", ".minecraft"),
		"Windows": filepath.Join(home, "AppData", "Roaming", ".minecraft"),
		"darwin":  filepath.Join(home, "Library", "Application Support", "minecraft"),
		"linux":   filepath.Join(home, ".minecraft"),
		"freebsd": filepath.Join(home, ".minecraft"),
		"":        filepath.Join(home, ".minecraft"),
	}

	for goos, want := range cases {
		require.Equal(t, want, GameDirectory(goos, home), goos)
	}

	require.NoDirExists(t, home)
}

// TestExecutableName checks the platform executable suffix.
func TestExecutableName(t *testing.T) {
	t.Parallel()

	require.Equal(t, "java.exe", ExecutableName("windows", "java"))
	require.Equal(t, "java", ExecutableName("darwin", "java"))
	require.Equal(t, "java", ExecutableName("linux", "java"))
}
