package settings

import (
	"bytes"
	"context"
	"crypto"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	goupdate "github.com/doitdistributed/go-update"

	"github.com/oshokin/modpack-installer/internal/logger"
)

// TargetFilename is the settings file the game reads from its game directory.
const TargetFilename = "options.txt"

// defaultFileMode is used for the written settings file.
const defaultFileMode os.FileMode = 0o644

// ErrOverlayNotFound is returned when the payload carries no settings overlay.
// Callers treat it as a warning.
var ErrOverlayNotFound = errors.New("options.txt not found")

// Apply replaces <versionDir>/options.txt with the contents of source and
// returns the written path. The replacement goes through a sibling temporary
// file, so readers see either the old or the new settings.
func Apply(ctx context.Context, source, versionDir string) (string, error) {
	if source == "" {
		return "", ErrOverlayNotFound
	}

	data, err := os.ReadFile(filepath.Clean(source))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", source, ErrOverlayNotFound)
		}

		return "", fmt.Errorf("read settings overlay: %w", err)
	}

	target := filepath.Join(versionDir, TargetFilename)

	// go-update moves the current file aside first, so it has to exist.
	if _, err = os.Stat(target); errors.Is(err, os.ErrNotExist) {
		if err = os.WriteFile(target, nil, defaultFileMode); err != nil {
			return "", fmt.Errorf("create settings file: %w", err)
		}
	}

	checksum := sha256.Sum256(data)

	options := goupdate.Options{
		TargetPath: target,
		TargetMode: defaultFileMode,
		Checksum:   checksum[:],
		Hash:       crypto.SHA256,
	}

	if err = goupdate.Apply(bytes.NewReader(data), options); err != nil {
		return "", fmt.Errorf("apply settings overlay: %w", err)
	}

	// Windows keeps the hidden .old file when it cannot be removed in place.
	oldFile := filepath.Join(versionDir, "."+TargetFilename+".old")
	if _, err = os.Stat(oldFile); err == nil {
		_ = os.Remove(oldFile)
	}

	logger.InfoKV(ctx, "Settings overlay applied", "path", target, "bytes", len(data))

	return target, nil
}
