// Package loader installs the Fabric loader by running the bundled loader
// installer with the bundled Java runtime, then checks that the expected
// version directory was produced.
package loader
