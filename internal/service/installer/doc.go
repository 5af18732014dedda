// Package installer runs the six install steps in order: locate the game
// directory, resolve the bundled Java runtime, install the Fabric loader,
// stage content folders, merge the launcher profile and apply the settings
// overlay. The first failing step stops the run.
//
// Progress is reported through an Observer called synchronously on the
// goroutine executing Run.
package installer
