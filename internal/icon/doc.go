// Package icon turns the bundled profile icon into the inline
// data:image/png;base64 URI stored in the launcher profile.
//
// The launcher only renders PNG, so JPEG, BMP and ICO (PNG-compressed entries)
// are decoded and re-encoded. Without a bundled icon the Fabric logo is used.
package icon
