// Package platform wraps the small set of OS-dependent filesystem
// operations the player and updater rely on: permission bits, resolving
// the running executable through symlinks, and the user's home directory.
package platform
