package install

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// VersionsDir is the directory of the game installation holding versions.
	VersionsDir = "versions"

	// ProfileTypeCustom marks a user-created launcher profile.
	ProfileTypeCustom = "custom"
)

// TargetInstallation is the user's existing game data directory.
type TargetInstallation struct {
	// Path is the absolute path of the directory.
	Path string
}

// VersionDir returns the directory of versionID inside the installation.
func (t TargetInstallation) VersionDir(versionID string) string {
	return filepath.Join(t.Path, VersionsDir, versionID)
}

// VersionRecord identifies the loader version created by the loader installer.
type VersionRecord struct {
	// ID is the composite version string, e.g. fabric-loader-0.18.3-1.21.10.
	ID string
	// Dir is the absolute path of versions/<ID>.
	Dir string
}

// VersionID composes the version directory name the Fabric installer creates.
func VersionID(loaderVersion, baseVersion string) string {
	return fmt.Sprintf("fabric-loader-%s-%s", loaderVersion, baseVersion)
}

// LaunchProfile is one entry of the launcher's profiles collection.
type LaunchProfile struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	LastVersionID string `json:"lastVersionId"`
	Icon          string `json:"icon"`
	JavaArgs      string `json:"javaArgs"`
	GameDir       string `json:"gameDir"`
}

// NewLaunchProfile builds the custom profile pointing at record.
func NewLaunchProfile(name string, record *VersionRecord, icon, javaArgs string) *LaunchProfile {
	return &LaunchProfile{
		Name:          name,
		Type:          ProfileTypeCustom,
		LastVersionID: record.ID,
		Icon:          icon,
		JavaArgs:      javaArgs,
		GameDir:       record.Dir,
	}
}

// ProfileName composes the display name, e.g. "GGStudios 1.21.10 Performance".
func ProfileName(product, baseVersion, packType string) string {
	return fmt.Sprintf("%s %s %s", product, baseVersion, Capitalize(packType))
}

// Capitalize upper-cases the first letter and lower-cases the rest.
func Capitalize(s string) string {
	if s == "" {
		return s
	}

	first, size := utf8.DecodeRuneInString(s)

	return string(unicode.ToUpper(first)) + strings.ToLower(s[size:])
}
