package stager

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	cp "github.com/otiai10/copy"

	"github.com/oshokin/modpack-installer/internal/logger"
)

// ErrContentRootNotFound is returned when the payload content root is missing.
var ErrContentRootNotFound = errors.New("minecraftfiles folder missing")

// Report describes what happened to one content folder.
type Report struct {
	// Folder is the content folder name, e.g. mods.
	Folder string
	// Files is the number of regular files copied.
	Files int
	// Bytes is the total size of the copied files.
	Bytes int64
	// Skipped is true when the payload does not carry the folder.
	Skipped bool
}

// Stage copies folders from contentRoot into versionDir in order.
// Folders absent from contentRoot are skipped.
func Stage(ctx context.Context, contentRoot, versionDir string, folders []string) ([]Report, error) {
	if !isDir(contentRoot) {
		return nil, fmt.Errorf("%s: %w", contentRoot, ErrContentRootNotFound)
	}

	reports := make([]Report, 0, len(folders))

	for _, folder := range folders {
		src := filepath.Join(contentRoot, folder)
		if !isDir(src) {
			logger.DebugKV(ctx, "Content folder not bundled, skipping", "folder", folder)

			reports = append(reports, Report{Folder: folder, Skipped: true})

			continue
		}

		report, err := stageFolder(src, filepath.Join(versionDir, folder))
		if err != nil {
			return reports, fmt.Errorf("copy %s: %w", folder, err)
		}

		report.Folder = folder
		reports = append(reports, report)

		logger.InfoKV(ctx, "Staged content folder",
			"folder", folder,
			"files", report.Files,
			"size", humanize.Bytes(uint64(report.Bytes))) //nolint:gosec // Sizes are never negative.
	}

	return reports, nil
}

func stageFolder(src, dst string) (Report, error) {
	var report Report

	if err := survey(src, dst, &report); err != nil {
		return report, err
	}

	options := cp.Options{
		OnDirExists: func(string, string) cp.DirExistsAction {
			return cp.Merge
		},
		OnSymlink: func(string) cp.SymlinkAction {
			return cp.Deep
		},
		// Read-only payload files must stay overwritable on the next run.
		PermissionControl: cp.AddPermission(ownerWrite),
		PreserveTimes:     true,
	}

	return report, cp.Copy(src, dst, options)
}

// ownerWrite is added to every staged file and directory.
const ownerWrite os.FileMode = 0o200

// survey counts the regular files under src following symlinks, as the deep
// copy does, and makes existing read-only counterparts under dst writable.
func survey(src, dst string, report *Report) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		info, err := os.Stat(srcPath)
		if err != nil {
			return err
		}

		if info.IsDir() {
			if err = survey(srcPath, dstPath, report); err != nil {
				return err
			}

			continue
		}

		if !info.Mode().IsRegular() {
			continue
		}

		report.Files++
		report.Bytes += info.Size()

		if err = ensureWritable(dstPath); err != nil {
			return err
		}
	}

	return nil
}

// ensureWritable adds owner write permission to an existing regular file.
func ensureWritable(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}

		return err
	}

	if !info.Mode().IsRegular() || info.Mode().Perm()&ownerWrite != 0 {
		return nil
	}

	return os.Chmod(path, info.Mode().Perm()|ownerWrite)
}

func isDir(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.IsDir()
}
