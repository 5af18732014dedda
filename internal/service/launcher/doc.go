// Package launcher detects a running game launcher. The launcher rewrites its
// profile store on exit, which would drop a profile merged while it runs.
package launcher
