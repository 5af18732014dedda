// Package testutil holds helpers shared by tests that need a fake payload on disk.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// FabricRuntimeScript imitates `java -jar fabric-installer.jar client -dir D
// -mcversion B -loader L`: it records its arguments next to itself and creates
// D/versions/fabric-loader-L-B.
const FabricRuntimeScript = `echo "$@" > "$(dirname "$0")/args.txt"
mkdir -p "$5/versions/fabric-loader-$9-$7"
echo "Installing fabric loader $9"
`

// WriteFile creates path with its parent directories and writes contents.
func WriteFile(t *testing.T, path, contents string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

// ScriptRuntime writes an executable shell script at path to stand in for the
// Java runtime. Tests using it are skipped on Windows.
func ScriptRuntime(t *testing.T, path, body string) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("shell script runtimes are not executable on windows")
	}

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755)) //nolint:gosec // Test script must be executable.
}

// ReadFile returns the contents of path.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(data)
}
