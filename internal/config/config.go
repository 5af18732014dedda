package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/kballard/go-shellquote"
	"gopkg.in/yaml.v3"
)

// Config describes the content pack and the layout of the bundled payload.
type Config struct {
	// ProductName prefixes the launcher profile name.
	ProductName string `yaml:"product_name"`
	// BaseVersion is the game version the loader is installed for.
	BaseVersion string `yaml:"minecraft_version"`
	// LoaderVersion is the Fabric loader version passed to the loader installer.
	LoaderVersion string `yaml:"loader_version"`
	// PackType labels the edition, e.g. performance or quality.
	PackType string `yaml:"pack_type"`
	// RuntimeDir is the bundled Java runtime directory, relative to the payload base.
	RuntimeDir string `yaml:"runtime_dir"`
	// LoaderInstaller is the loader installer artifact, relative to the payload base.
	LoaderInstaller string `yaml:"loader_installer"`
	// ContentDir is the content root, relative to the payload base.
	ContentDir string `yaml:"content_dir"`
	// ContentFolders are copied from the content root in this order.
	ContentFolders []string `yaml:"content_folders"`
	// SettingsFile is the settings overlay, relative to the content root.
	SettingsFile string `yaml:"settings_file"`
	// IconFile is the profile icon, relative to the payload base. Empty selects the built-in icon.
	IconFile string `yaml:"icon_file"`
	// RuntimeArgs are the JVM arguments stored in the launcher profile.
	RuntimeArgs string `yaml:"runtime_args"`
	// ProfilesFile is the launcher profile store, relative to the game directory.
	ProfilesFile string `yaml:"profiles_file"`
	// LauncherProcesses are executable names of the launcher, used to warn
	// when it is running while the profile store is rewritten.
	LauncherProcesses []string `yaml:"launcher_processes"`
}

const (
	// DefaultConfigFilename is looked up next to the payload when no path is given.
	DefaultConfigFilename = "modpack-installer.yaml"

	// DefaultFilePermissions is used when saving the configuration.
	DefaultFilePermissions = 0o600

	// DefaultRuntimeArgs size the heap and tune G1 for modded clients.
	DefaultRuntimeArgs = "-Xmx6G -Xms2G -XX:+UnlockExperimentalVMOptions -XX:+UseG1GC " +
		"-XX:G1NewSizePercent=20 -XX:G1ReservePercent=20 -XX:MaxGCPauseMillis=50 -XX:G1HeapRegionSize=32M"
)

var (
	errConfigIsNotSet  = errors.New("configuration is not set")
	errFieldRequired   = errors.New("field must be provided")
	errBadFolderName   = errors.New("content folder must be a plain directory name")
	errBadRuntimeArgs  = errors.New("runtime arguments cannot be parsed")
	errNoContentFolder = errors.New("at least one content folder must be listed")
)

// Default returns the configuration of the shipped pack.
func Default() *Config {
	return &Config{
		ProductName:       "GGStudios",
		BaseVersion:       "1.21.10",
		LoaderVersion:     "0.18.3",
		PackType:          "performance",
		RuntimeDir:        "java/jdk-25.0.1+8",
		LoaderInstaller:   "fabric/fabric-installer-1.1.0.jar",
		ContentDir:        "minecraftfiles",
		ContentFolders:    DefaultContentFolders(),
		SettingsFile:      "options.txt",
		IconFile:          "icon.png",
		RuntimeArgs:       DefaultRuntimeArgs,
		ProfilesFile:      "launcher_profiles.json",
		LauncherProcesses: DefaultLauncherProcesses(runtime.GOOS),
	}
}

// DefaultContentFolders returns the content subdirectories in copy order.
func DefaultContentFolders() []string {
	return []string{"mods", "resourcepacks", "shaderpacks", "config"}
}

// DefaultLauncherProcesses returns executable names used by the official
// launcher on goos.
func DefaultLauncherProcesses(goos string) []string {
	names := []string{
		"MinecraftLauncher.exe",
		"Minecraft.exe",
		"minecraft-launcher",
	}

	// The macOS bundle binary has a generic name; elsewhere it would match
	// unrelated processes.
	if goos == "darwin" {
		names = append(names, "launcher")
	}

	return names
}

// Load reads configuration from path on top of Default and validates it.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	cfg := Default()
	if err = yaml.Unmarshal(contents, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err = Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault behaves like Load but returns Default when the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	return cfg, err
}

// Save writes the configuration to path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err = os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks required fields, fills list defaults and verifies that the
// runtime arguments split into shell words.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	required := []struct {
		name  string
		value string
	}{
		{"product_name", cfg.ProductName},
		{"minecraft_version", cfg.BaseVersion},
		{"loader_version", cfg.LoaderVersion},
		{"pack_type", cfg.PackType},
		{"runtime_dir", cfg.RuntimeDir},
		{"loader_installer", cfg.LoaderInstaller},
		{"content_dir", cfg.ContentDir},
		{"profiles_file", cfg.ProfilesFile},
	}

	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return fmt.Errorf("%s: %w", field.name, errFieldRequired)
		}
	}

	if cfg.ContentFolders == nil {
		cfg.ContentFolders = DefaultContentFolders()
	}

	if len(cfg.ContentFolders) == 0 {
		return errNoContentFolder
	}

	for _, folder := range cfg.ContentFolders {
		if folder == "" || folder == "." || folder == ".." || strings.ContainsAny(folder, `/\`) {
			return fmt.Errorf("%q: %w", folder, errBadFolderName)
		}
	}

	if cfg.LauncherProcesses == nil {
		cfg.LauncherProcesses = DefaultLauncherProcesses(runtime.GOOS)
	}

	if _, err := shellquote.Split(cfg.RuntimeArgs); err != nil {
		return fmt.Errorf("%w: %w", errBadRuntimeArgs, err)
	}

	return nil
}

// RuntimeArgList returns RuntimeArgs split into shell words.
func (c *Config) RuntimeArgList() []string {
	words, err := shellquote.Split(c.RuntimeArgs)
	if err != nil {
		return nil
	}

	return words
}
