package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/kballard/go-shellquote"

	"github.com/oshokin/modpack-installer/internal/domain/install"
	"github.com/oshokin/modpack-installer/internal/logger"
)

var (
	// ErrArtifactNotFound is returned before spawning when the installer artifact is missing.
	ErrArtifactNotFound = errors.New("fabric-installer.jar missing")
	// ErrLoaderFailed is returned when the loader installer exits with a non-zero code.
	ErrLoaderFailed = errors.New("fabric install failed")
	// ErrVersionNotCreated is returned when the installer succeeded but the version directory is absent.
	ErrVersionNotCreated = errors.New("fabric version folder not created")
)

// Installer materializes a loader version inside a game directory.
type Installer interface {
	Install(ctx context.Context, targetDir, baseVersion, loaderVersion string) (*install.VersionRecord, error)
}

// External runs the bundled loader installer artifact with a Java runtime.
type External struct {
	// runtime is the Java executable.
	runtime string
	// artifact is the loader installer jar.
	artifact string
}

// NewExternal returns an Installer running artifact with runtime.
func NewExternal(runtime, artifact string) *External {
	return &External{
		runtime:  runtime,
		artifact: artifact,
	}
}

// Args returns the arguments passed to the runtime.
func Args(artifact, targetDir, baseVersion, loaderVersion string) []string {
	return []string{
		"-jar", artifact,
		"client",
		"-dir", targetDir,
		"-mcversion", baseVersion,
		"-loader", loaderVersion,
	}
}

// Install runs the loader installer and waits for it without a timeout.
// The process is not bound to ctx: once started it cannot be canceled.
func (e *External) Install(ctx context.Context, targetDir, baseVersion, loaderVersion string) (*install.VersionRecord, error) {
	if _, err := os.Stat(e.artifact); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", e.artifact, ErrArtifactNotFound)
		}

		return nil, fmt.Errorf("stat loader installer: %w", err)
	}

	args := Args(e.artifact, targetDir, baseVersion, loaderVersion)

	//nolint:gosec,noctx // Both paths come from the bundled payload; the run is deliberately not cancelable.
	cmd := exec.Command(e.runtime, args...)
	hideWindow(cmd)

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.DebugKV(ctx, "Running loader installer",
		"command", shellquote.Join(append([]string{e.runtime}, args...)...))

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			logger.WarnKV(ctx, "Loader installer exited with an error",
				"exit_code", exitErr.ExitCode(), "stdout", stdout.String())

			return nil, fmt.Errorf("%w:\n%s", ErrLoaderFailed, stderr.String())
		}

		return nil, fmt.Errorf("start loader installer: %w", err)
	}

	logger.DebugKV(ctx, "Loader installer finished", "stdout", stdout.String())

	return LocateVersion(targetDir, baseVersion, loaderVersion)
}

// LocateVersion returns the version record if versions/<id> exists in targetDir.
func LocateVersion(targetDir, baseVersion, loaderVersion string) (*install.VersionRecord, error) {
	target := install.TargetInstallation{Path: targetDir}
	id := install.VersionID(loaderVersion, baseVersion)
	dir := target.VersionDir(id)

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", id, ErrVersionNotCreated)
	}

	return &install.VersionRecord{
		ID:  id,
		Dir: dir,
	}, nil
}
