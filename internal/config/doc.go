// Package config defines the pack description consumed by the installer and
// helpers to load, validate and save it in YAML format.
//
// Every field has a default matching the shipped pack, so the YAML file is
// optional and only needs the keys a pack build wants to change.
package config
