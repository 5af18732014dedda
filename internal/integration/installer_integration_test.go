package integration

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mitchellh/go-ps"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/modpack-installer/internal/config"
	"github.com/oshokin/modpack-installer/internal/payload"
	"github.com/oshokin/modpack-installer/internal/service/installer"
	"github.com/oshokin/modpack-installer/internal/service/loader"
	"github.com/oshokin/modpack-installer/internal/testutil"
)

// These tests execute freshly written shell scripts. They do not run in
// parallel: a script being written while another test forks fails with ETXTBSY.

const versionID = "fabric-loader-0.18.3-1.21.10"

func noProcesses() ([]ps.Process, error) {
	return nil, nil
}

// environment is a payload on disk plus an empty game directory.
type environment struct {
	base       string
	target     string
	configPath string
	runtime    string
}

// newEnvironment lays out the payload with a script standing in for Java.
func newEnvironment(t *testing.T, script string) *environment {
	t.Helper()

	base := t.TempDir()
	env := &environment{
		base:       base,
		target:     t.TempDir(),
		configPath: filepath.Join(base, config.DefaultConfigFilename),
		runtime:    filepath.Join(base, "java", "jdk-25.0.1+8", "bin", "java"),
	}

	testutil.ScriptRuntime(t, env.runtime, script)
	testutil.WriteFile(t, filepath.Join(base, "fabric", "fabric-installer-1.1.0.jar"), "PK")
	testutil.WriteFile(t, filepath.Join(base, "minecraftfiles", "mods", "lithium.jar"), "lithium")
	testutil.WriteFile(t, filepath.Join(base, "minecraftfiles", "shaderpacks", "complementary.zip"), "shader")
	testutil.WriteFile(t, filepath.Join(base, "minecraftfiles", "options.txt"), "graphicsMode:1\n")

	cfg := config.Default()
	cfg.ProductName = "Blocky"
	cfg.PackType = "quality"
	require.NoError(t, config.Save(env.configPath, cfg))

	return env
}

func (e *environment) run(t *testing.T) (*installer.Result, []installer.Event, error) {
	t.Helper()

	cfg, err := config.Load(e.configPath)
	require.NoError(t, err)

	var events []installer.Event

	opts := &installer.Options{
		Config:    cfg,
		Payload:   payload.New(e.base, payload.ModeExplicit, cfg),
		TargetDir: e.target,
		Observer:  func(event installer.Event) { events = append(events, event) },
	}

	result, err := installer.Run(context.Background(), opts, installer.WithProcessLister(noProcesses))

	return result, events, err
}

func (e *environment) argsFile() string {
	return filepath.Join(filepath.Dir(e.runtime), "args.txt")
}

// TestInstall_EndToEnd runs the real loader adapter and merges the profile.
func TestInstall_EndToEnd(t *testing.T) {
	env := newEnvironment(t, testutil.FabricRuntimeScript)
	store := filepath.Join(env.target, "launcher_profiles.json")
	testutil.WriteFile(t, store, `{
  "profiles": {"abc": {"name": "Latest", "type": "latest-release"}},
  "settings": {"keepLauncherOpen": true},
  "version": 3
}`)

	result, events, err := env.run(t)
	require.NoError(t, err)
	require.Equal(t, installer.EventSucceeded, events[len(events)-1].Kind)

	versionDir := filepath.Join(env.target, "versions", versionID)
	require.Equal(t, versionDir, result.VersionDir)
	require.Equal(t,
		"-jar "+filepath.Join(env.base, "fabric", "fabric-installer-1.1.0.jar")+
			" client -dir "+env.target+" -mcversion 1.21.10 -loader 0.18.3",
		strings.TrimSpace(testutil.ReadFile(t, env.argsFile())))

	require.Equal(t, "lithium", testutil.ReadFile(t, filepath.Join(versionDir, "mods", "lithium.jar")))
	require.Equal(t, "shader", testutil.ReadFile(t, filepath.Join(versionDir, "shaderpacks", "complementary.zip")))
	require.NoDirExists(t, filepath.Join(versionDir, "resourcepacks"))
	require.Equal(t, "graphicsMode:1\n", testutil.ReadFile(t, filepath.Join(versionDir, "options.txt")))

	var document struct {
		Profiles map[string]map[string]any `json:"profiles"`
		Settings map[string]any            `json:"settings"`
		Version  int                       `json:"version"`
	}

	require.NoError(t, json.Unmarshal([]byte(testutil.ReadFile(t, store)), &document))
	require.Equal(t, 3, document.Version)
	require.Equal(t, true, document.Settings["keepLauncherOpen"])
	require.Equal(t, "latest-release", document.Profiles["abc"]["type"])

	profile := document.Profiles["Blocky 1.21.10 Quality"]
	require.Equal(t, "Blocky 1.21.10 Quality", profile["name"])
	require.Equal(t, versionID, profile["lastVersionId"])
	require.Equal(t, versionDir, profile["gameDir"])

	// A second run overwrites the same profile and content.
	_, _, err = env.run(t)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(testutil.ReadFile(t, store)), &document))
	require.Len(t, document.Profiles, 2)
}

// TestInstall_WithoutProfileStore succeeds and leaves no store behind.
func TestInstall_WithoutProfileStore(t *testing.T) {
	env := newEnvironment(t, testutil.FabricRuntimeScript)

	result, _, err := env.run(t)
	require.NoError(t, err)
	require.False(t, result.ProfileMerged)
	require.NoFileExists(t, filepath.Join(env.target, "launcher_profiles.json"))
}

// TestInstall_MissingJarNeverSpawns fails before the runtime is executed.
func TestInstall_MissingJarNeverSpawns(t *testing.T) {
	env := newEnvironment(t, testutil.FabricRuntimeScript)
	require.NoError(t, os.Remove(filepath.Join(env.base, "fabric", "fabric-installer-1.1.0.jar")))

	_, events, err := env.run(t)
	require.ErrorIs(t, err, loader.ErrArtifactNotFound)
	require.NoFileExists(t, env.argsFile())
	require.Equal(t, installer.StatusFailed, events[len(events)-1].Status)
}

// TestInstall_LoaderExitsNonZero surfaces the captured stderr.
func TestInstall_LoaderExitsNonZero(t *testing.T) {
	env := newEnvironment(t, "echo 'Could not find loader version 0.18.3' >&2\nexit 3\n")

	_, _, err := env.run(t)
	require.ErrorIs(t, err, loader.ErrLoaderFailed)
	require.Contains(t, err.Error(), "Could not find loader version 0.18.3")
	require.NoDirExists(t, filepath.Join(env.target, "versions"))
}

// TestInstall_VersionNotCreated fails when the loader exits cleanly without output.
func TestInstall_VersionNotCreated(t *testing.T) {
	env := newEnvironment(t, "exit 0\n")

	_, _, err := env.run(t)
	require.ErrorIs(t, err, loader.ErrVersionNotCreated)
}

// TestInstall_MissingOverlay succeeds with a warning.
func TestInstall_MissingOverlay(t *testing.T) {
	env := newEnvironment(t, testutil.FabricRuntimeScript)
	require.NoError(t, os.Remove(filepath.Join(env.base, "minecraftfiles", "options.txt")))

	result, events, err := env.run(t)
	require.NoError(t, err)
	require.False(t, result.SettingsApplied)
	require.Equal(t, []string{installer.StatusOverlayMissing}, result.Warnings)
	require.Equal(t, installer.StatusSucceeded, events[len(events)-1].Status)
	require.NoFileExists(t, filepath.Join(result.VersionDir, "options.txt"))
}
