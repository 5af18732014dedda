// Package stager copies the bundled content folders (mods, resource packs,
// shader packs, configuration) into the installed loader version directory.
//
// Copies merge into existing folders: files with the same relative path are
// overwritten, files only present in the destination are kept. Running the
// stager twice leaves the same tree as running it once.
package stager
