// Package config handles global configuration and on-disk locations.
package config

import (
	"os"
	"path/filepath"
)

const (
	// AppDir is the directory name under the XDG config and data homes.
	AppDir = "sgraph"

	StateFile   = "state.db"
	ArchiveFile = "snapshots.jsonl"
)

// DataDir returns the directory holding persisted state.
// Respects XDG_DATA_HOME, defaults to ~/.local/share/sgraph.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return AppDir
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, AppDir)
}

// DefaultStatePath returns the default SQLite state database path.
func DefaultStatePath() string {
	return filepath.Join(DataDir(), StateFile)
}

// ArchivePath returns the snapshot archive stored next to the state database.
func ArchivePath(statePath string) string {
	return filepath.Join(filepath.Dir(statePath), ArchiveFile)
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[1:])
}
