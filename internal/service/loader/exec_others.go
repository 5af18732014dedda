//go:build !windows

package loader

import "os/exec"

// hideWindow is a no-op outside Windows: no console is created for children.
func hideWindow(*exec.Cmd) {}
