// Package payload locates the read-only assets shipped with the installer:
// the Java runtime, the loader installer artifact, the content root, the
// settings overlay and the profile icon.
//
// Assets live relative to a base directory. A packaged installer uses the
// directory of its own executable; an unpacked run (go run, go test) uses the
// working directory; an explicit --payload path overrides both.
package payload
