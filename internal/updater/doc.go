// Package updater implements the self-update mechanism for the hookplayer
// binary. It checks GitHub Releases for a newer tag, downloads the raw
// executable published for the current OS and architecture, and swaps it
// in with a single rename next to the running binary.
package updater
