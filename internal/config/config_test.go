package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestDefaultIsValid checks the shipped pack description passes validation.
func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, Validate(cfg))
	require.Equal(t, []string{"mods", "resourcepacks", "shaderpacks", "config"}, cfg.ContentFolders)
	require.Contains(t, cfg.RuntimeArgList(), "-XX:+UseG1GC")
	require.Len(t, cfg.RuntimeArgList(), 8)
}

// TestValidate checks required fields and format validations.
func TestValidate(t *testing.T) {
	t.Parallel()

	require.Error(t, Validate(nil))

	// Missing loader version.
	cfg := Default()
	cfg.LoaderVersion = " "
	require.Error(t, Validate(cfg))

	// Folder with a separator.
	cfg = Default()
	cfg.ContentFolders = []string{"mods", "../escape"}
	require.Error(t, Validate(cfg))

	// Explicitly empty folder list.
	cfg = Default()
	cfg.ContentFolders = []string{}
	require.Error(t, Validate(cfg))

	// Unterminated quote.
	cfg = Default()
	cfg.RuntimeArgs = `-Xmx4G "-Dfoo=bar`
	require.Error(t, Validate(cfg))

	// Nil lists fall back to defaults.
	cfg = Default()
	cfg.ContentFolders = nil
	cfg.LauncherProcesses = nil
	require.NoError(t, Validate(cfg))
	require.Equal(t, DefaultContentFolders(), cfg.ContentFolders)
	require.Equal(t, DefaultLauncherProcesses(runtime.GOOS), cfg.LauncherProcesses)
}

// TestLoadOverridesDefaults ensures a partial YAML file only changes the keys it sets.
func TestLoadOverridesDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), DefaultConfigFilename)
	contents := "pack_type: quality\nloader_version: 0.19.0\ncontent_folders: [mods, config]\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "quality", cfg.PackType)
	require.Equal(t, "0.19.0", cfg.LoaderVersion)
	require.Equal(t, []string{"mods", "config"}, cfg.ContentFolders)
	require.Equal(t, Default().BaseVersion, cfg.BaseVersion)
}

// TestLoadOrDefault returns defaults for a missing file but fails for a broken one.
func TestLoadOrDefault(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	cfg, err := LoadOrDefault(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("pack_type: [unclosed"), 0o600))

	_, err = LoadOrDefault(broken)
	require.Error(t, err)
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")

	cfg := Default()
	cfg.ProductName = "Acme"
	cfg.IconFile = ""

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}

// TestDefaultLauncherProcesses keeps the generic macOS name off other platforms.
func TestDefaultLauncherProcesses(t *testing.T) {
	t.Parallel()

	require.Contains(t, DefaultLauncherProcesses("darwin"), "launcher")

	for _, goos := range []string{"linux", "windows"} {
		names := DefaultLauncherProcesses(goos)
		require.NotContains(t, names, "launcher", goos)
		require.Contains(t, names, "MinecraftLauncher.exe", goos)
		require.Contains(t, names, "minecraft-launcher", goos)
	}
}
