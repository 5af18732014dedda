// Package settings applies the bundled game settings overlay (options.txt)
// to the installed version directory.
package settings
