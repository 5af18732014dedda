// Package install contains the core types shared by the installation steps.
//
// It defines the target game directory, the loader version record produced by
// the loader installer and the launch profile merged into the launcher store.
package install
