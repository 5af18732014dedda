// Package platform maps an operating system identifier to the game data
// directory and executable naming conventions. Nothing here touches the
// filesystem.
package platform
