package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Executable returns the path of the running binary with symlinks resolved,
// so a self-update replaces the real file rather than a link to it
// (e.g. a Homebrew shim in /usr/local/bin).
func Executable() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating executable: %w", err)
	}
	return ResolveLink(exe)
}

// ResolveLink follows symlinks at path. A path that is not a link is
// returned cleaned and unchanged.
func ResolveLink(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	return resolved, nil
}

// HomeDir returns the current user's home directory, preferring $HOME.
func HomeDir() (string, error) {
	if home := os.Getenv("HOME"); home != "" {
		return home, nil
	}
	return os.UserHomeDir()
}

// ExpandHome replaces a leading "~" or "~/" in path with home.
func ExpandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
