package payload

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/oshokin/modpack-installer/internal/config"
	"github.com/oshokin/modpack-installer/internal/platform"
)

// Mode tells how the payload base directory was chosen.
type Mode int

const (
	// ModePackaged means the base is the directory of the running executable.
	ModePackaged Mode = iota
	// ModeUnpacked means the binary runs from a build cache and the base is the working directory.
	ModeUnpacked
	// ModeExplicit means the base was given by the caller.
	ModeExplicit
)

// String returns a readable name of the mode.
func (m Mode) String() string {
	switch m {
	case ModePackaged:
		return "packaged"
	case ModeUnpacked:
		return "unpacked"
	case ModeExplicit:
		return "explicit"
	default:
		return "unknown"
	}
}

// runtimeExecutable is the Java launcher inside <runtime>/bin.
const runtimeExecutable = "java"

// buildCacheMarker appears in the path of binaries produced by go run and go test.
const buildCacheMarker = "go-build"

// Payload resolves asset paths against a base directory.
type Payload struct {
	base string
	mode Mode
	cfg  *config.Config
}

// New returns a payload rooted at base.
func New(base string, mode Mode, cfg *config.Config) *Payload {
	return &Payload{
		base: filepath.Clean(base),
		mode: mode,
		cfg:  cfg,
	}
}

// ResolveBase returns the payload base directory and how it was chosen.
func ResolveBase(explicit string) (string, Mode, error) {
	if explicit != "" {
		abs, err := filepath.Abs(explicit)
		if err != nil {
			return "", ModeExplicit, fmt.Errorf("resolve payload path: %w", err)
		}

		return abs, ModeExplicit, nil
	}

	exe, err := os.Executable()
	if err != nil {
		return "", ModePackaged, fmt.Errorf("locate executable: %w", err)
	}

	if resolved, evalErr := filepath.EvalSymlinks(exe); evalErr == nil {
		exe = resolved
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", ModePackaged, fmt.Errorf("get working directory: %w", err)
	}

	base, mode := baseFromExecutable(exe, wd)

	return base, mode, nil
}

// baseFromExecutable decides between the executable directory and wd.
func baseFromExecutable(exe, wd string) (string, Mode) {
	dir := filepath.Dir(exe)
	if strings.Contains(filepath.ToSlash(dir), "/"+buildCacheMarker) {
		return wd, ModeUnpacked
	}

	return dir, ModePackaged
}

// Base returns the base directory.
func (p *Payload) Base() string {
	return p.base
}

// Mode returns how the base directory was chosen.
func (p *Payload) Mode() Mode {
	return p.mode
}

// ConfigFile returns the default configuration path inside the payload base.
func ConfigFile(base string) string {
	return filepath.Join(base, config.DefaultConfigFilename)
}

// Runtime returns the bundled Java executable for goos. The second value is
// false unless both the runtime directory and the executable exist.
func (p *Payload) Runtime(goos string) (string, bool) {
	dir := p.path(p.cfg.RuntimeDir)
	if !isDir(dir) {
		return "", false
	}

	exe := filepath.Join(dir, "bin", platform.ExecutableName(goos, runtimeExecutable))
	if !isFile(exe) {
		return "", false
	}

	return exe, true
}

// LoaderInstaller returns the loader installer artifact path. Existence is not checked.
func (p *Payload) LoaderInstaller() string {
	return p.path(p.cfg.LoaderInstaller)
}

// ContentRoot returns the directory holding the content folders.
func (p *Payload) ContentRoot() string {
	return p.path(p.cfg.ContentDir)
}

// SettingsFile returns the settings overlay path, or "" when none is configured.
func (p *Payload) SettingsFile() string {
	if p.cfg.SettingsFile == "" {
		return ""
	}

	return filepath.Join(p.ContentRoot(), filepath.FromSlash(p.cfg.SettingsFile))
}

// IconFile returns the profile icon path, or "" when none is configured.
func (p *Payload) IconFile() string {
	if p.cfg.IconFile == "" {
		return ""
	}

	return p.path(p.cfg.IconFile)
}

func (p *Payload) path(rel string) string {
	return filepath.Join(p.base, filepath.FromSlash(rel))
}

func isDir(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)

	return err == nil && !info.IsDir()
}
