// Package profiles merges launch profiles into the launcher's profile store
// (launcher_profiles.json).
//
// The store belongs to the launcher: it is never created here, unrelated keys
// are carried through untouched, and every rewrite replaces the file
// atomically so a crash cannot leave a truncated store behind.
package profiles
