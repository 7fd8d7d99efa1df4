// Package storage persists game sessions and statistics in BadgerDB.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const appName = "chessplay"

// GetDataDir picks the per-user directory sessions are kept under: the
// Application Support folder on macOS, %APPDATA% on Windows and the XDG data
// home elsewhere, each with a "chessplay" subdirectory. Nothing is created.
func GetDataDir() (string, error) {
	base, err := userDataHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appName), nil
}

func userDataHome() (string, error) {
	env, fallback := "XDG_DATA_HOME", []string{".local", "share"}
	switch runtime.GOOS {
	case "darwin":
		env, fallback = "", []string{"Library", "Application Support"}
	case "windows":
		env, fallback = "APPDATA", []string{"AppData", "Roaming"}
	}

	if env != "" {
		if dir := os.Getenv(env); dir != "" {
			return dir, nil
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	return filepath.Join(append([]string{home}, fallback...)...), nil
}

// DatabaseDir returns the directory holding the BadgerDB files under dataDir,
// creating it if needed.
func DatabaseDir(dataDir string) (string, error) {
	dbDir := filepath.Join(dataDir, "db")
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return "", err
	}
	return dbDir, nil
}
